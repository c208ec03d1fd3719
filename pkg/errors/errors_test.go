package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeRangeDraft, "draft %.1fm outside range", 15.0)

	if err.Code != ErrCodeRangeDraft {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRangeDraft)
	}

	if err.Message != "draft 15.0m outside range" {
		t.Errorf("Message = %v, want %v", err.Message, "draft 15.0m outside range")
	}

	expected := "RANGE_DRAFT: draft 15.0m outside range"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeSchemaBadValue, cause, "sheet %q", "KN Curves")

	if err.Code != ErrCodeSchemaBadValue {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSchemaBadValue)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeValidation, "kg must be positive")

	if !Is(err, ErrCodeValidation) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeRangeDraft) {
		t.Error("Is should not match a different code")
	}

	// Wrapped deeper in a chain
	wrapped := fmt.Errorf("handling request: %w", err)
	if !Is(wrapped, ErrCodeValidation) {
		t.Error("Is should unwrap standard wrapping")
	}

	if Is(errors.New("plain"), ErrCodeValidation) {
		t.Error("Is should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRangeAngle, "x")); got != ErrCodeRangeAngle {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeRangeAngle)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %v, want empty", got)
	}
}

func TestCategoryHelpers(t *testing.T) {
	tests := []struct {
		code       Code
		schema     bool
		rangeErr   bool
		validation bool
	}{
		{ErrCodeSchemaMissingSheet, true, false, false},
		{ErrCodeSchemaBadLabel, true, false, false},
		{ErrCodeRangeDraft, false, true, false},
		{ErrCodeRangeDisplacement, false, true, false},
		{ErrCodeRangeAngle, false, true, false},
		{ErrCodeValidation, false, false, true},
		{ErrCodeInternal, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New(tt.code, "msg")
			if got := IsSchema(err); got != tt.schema {
				t.Errorf("IsSchema = %v, want %v", got, tt.schema)
			}
			if got := IsRange(err); got != tt.rangeErr {
				t.Errorf("IsRange = %v, want %v", got, tt.rangeErr)
			}
			if got := IsValidation(err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
		})
	}
}

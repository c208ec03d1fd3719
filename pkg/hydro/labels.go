package hydro

import (
	"strconv"
	"strings"

	"github.com/marinetools/loadicator/pkg/errors"
)

// Heel-angle column labels appear in ship data workbooks in two conventions:
// a prefixed form ("KN at 10°") and a bare form ("10°"). Both resolve to the
// same numeric angle. Labels are parsed exactly once at load time into the
// angle-indexed columns of a CrossCurveTable; lookups never touch them again.

const (
	anglePrefix = "KN at"
	degreeSign  = "°"
)

// IsAngleLabel reports whether a KN sheet column label denotes a heel-angle
// column in either convention. Displacement columns are excluded by the
// caller before this check.
func IsAngleLabel(label string) bool {
	return strings.Contains(label, anglePrefix) || strings.Contains(label, degreeSign)
}

// ParseAngleLabel extracts the numeric heel angle in degrees from a column
// label. Labels that match neither convention, or whose angle is not
// numeric, fail with a SCHEMA_BAD_LABEL error.
func ParseAngleLabel(label string) (float64, error) {
	s := strings.TrimSpace(label)

	switch {
	case strings.Contains(s, anglePrefix):
		// Prefixed form: the angle sits between "at" and the degree sign.
		head, _, _ := strings.Cut(s, degreeSign)
		_, after, found := strings.Cut(head, "at")
		if !found {
			return 0, errors.New(errors.ErrCodeSchemaBadLabel,
				"column label %q has no angle after %q", label, anglePrefix)
		}
		s = strings.TrimSpace(after)
	case strings.Contains(s, degreeSign):
		s = strings.TrimSpace(strings.ReplaceAll(s, degreeSign, ""))
	default:
		return 0, errors.New(errors.ErrCodeSchemaBadLabel,
			"column label %q matches neither %q nor %q convention", label, anglePrefix+" {n}"+degreeSign, "{n}"+degreeSign)
	}

	angle, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeSchemaBadLabel,
			"column label %q has no numeric heel angle", label)
	}
	return angle, nil
}

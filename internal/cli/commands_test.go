package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// execute runs the CLI with args in a temp working directory.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestSampleCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	path := "ship_data.xlsx"
	if err := execute(t, "sample", "-o", path); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sample workbook not written: %v", err)
	}

	// Without --force a second run refuses to overwrite.
	if err := execute(t, "sample", "-o", path); err == nil {
		t.Error("sample overwrote an existing file without --force")
	}
	if err := execute(t, "sample", "-o", path, "--force"); err != nil {
		t.Errorf("sample --force: %v", err)
	}
}

func TestInspectCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := execute(t, "sample"); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if err := execute(t, "inspect", defaultSamplePath); err != nil {
		t.Errorf("inspect: %v", err)
	}

	if err := execute(t, "inspect", "missing.xlsx"); err == nil {
		t.Error("inspect of a missing workbook succeeded")
	}
}

func TestCalcCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := execute(t, "sample"); err != nil {
		t.Fatalf("sample: %v", err)
	}

	out := filepath.Join(t.TempDir(), "report.json")
	err := execute(t, "calc", "5.5",
		"--data", defaultSamplePath,
		"--load", "250000",
		"--format", "json",
		"--output", out,
		"--no-cache")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report struct {
		ShipName string `json:"ship_name"`
		Curve    []any  `json:"curve"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report does not parse: %v", err)
	}
	if len(report.Curve) == 0 {
		t.Error("report curve is empty")
	}
}

func TestCalcCommandRejectsBadDraft(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := execute(t, "sample"); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if err := execute(t, "calc", "seven", "--data", defaultSamplePath); err == nil {
		t.Error("calc with non-numeric draft succeeded")
	}
	if err := execute(t, "calc", "99", "--data", defaultSamplePath, "--no-cache", "-f", "json"); err == nil {
		t.Error("calc with out-of-range draft succeeded")
	}
}

func TestCalcCommandNoWorkbook(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := execute(t, "calc", "5.5", "-f", "json"); err == nil {
		t.Error("calc without a workbook succeeded")
	}
}

func TestConfigFileProvidesData(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := execute(t, "sample"); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if err := os.WriteFile(configFileName, []byte(`data = "`+defaultSamplePath+`"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out := filepath.Join(t.TempDir(), "report.json")
	if err := execute(t, "calc", "5.5", "-f", "json", "-o", out, "--no-cache"); err != nil {
		t.Errorf("calc with config-provided data: %v", err)
	}
}

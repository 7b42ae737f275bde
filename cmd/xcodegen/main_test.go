package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Koagonzalo/XcodeGen/pkg/report"
	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const invalidSpec = `name: App
targets:
  App:
    type: tool
    platform: macOS
    sources: [Missing]
    dependencies:
      - sdk: Contacts
`

func TestValidateSpec_Valid(t *testing.T) {
	path := writeSpec(t, "name: App\n")
	var buf bytes.Buffer
	n, err := validateSpec(&buf, path, validateRequest{Format: report.FormatText})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("errors = %d, want 0:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "App is valid") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestValidateSpec_Violations(t *testing.T) {
	path := writeSpec(t, invalidSpec)
	var buf bytes.Buffer
	n, err := validateSpec(&buf, path, validateRequest{Format: report.FormatText})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("errors = %d, want 2:\n%s", n, buf.String())
	}
	for _, want := range []string{"invalidTargetSource", "invalidSDKDependency"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %s:\n%s", want, buf.String())
		}
	}
}

func TestValidateSpec_Filter(t *testing.T) {
	path := writeSpec(t, invalidSpec)
	var buf bytes.Buffer
	n, err := validateSpec(&buf, path, validateRequest{Format: report.FormatJSON, Where: `Kind == "invalidSDKDependency"`})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || strings.Contains(buf.String(), "invalidTargetSource") {
		t.Errorf("filter not applied (n=%d):\n%s", n, buf.String())
	}

	if _, err := validateSpec(&buf, path, validateRequest{Format: report.FormatJSON, Where: "Kind =="}); err == nil {
		t.Error("expected error for invalid filter")
	}
}

func TestValidateSpec_ToolVersion(t *testing.T) {
	path := writeSpec(t, "name: App\noptions:\n  minimumXcodeGenVersion: 2.40.0\n")

	var buf bytes.Buffer
	n, err := validateSpec(&buf, path, validateRequest{Format: report.FormatText, ToolVersion: "2.39.0"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || !strings.Contains(buf.String(), "invalidXcodeGenVersion") {
		t.Errorf("expected version violation (n=%d):\n%s", n, buf.String())
	}

	if _, err := validateSpec(&buf, path, validateRequest{Format: report.FormatText, ToolVersion: "nightly"}); err == nil {
		t.Error("expected error for unparseable tool version")
	}
}

func TestValidateSpec_LoadFailure(t *testing.T) {
	path := writeSpec(t, "name: App\nextra: true\n")
	var buf bytes.Buffer
	n, err := validateSpec(&buf, path, validateRequest{Format: report.FormatText})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || !strings.Contains(buf.String(), "loadFailure") {
		t.Errorf("expected load failure (n=%d):\n%s", n, buf.String())
	}
}

func TestSchemaExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "project.schema.json")
	rootCmd.SetArgs([]string{"schema", "export", "--out", out})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), spec.SchemaID) {
		t.Error("exported schema missing $id")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "xcodegen dev") {
		t.Errorf("version output = %q", buf.String())
	}
}

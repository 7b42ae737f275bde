package validate

import (
	"errors"
	"testing"

	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

func TestMinimumVersion(t *testing.T) {
	tests := []struct {
		name    string
		minimum string
		running string
		fails   bool
	}{
		{"no minimum", "", "1.0.0", false},
		{"equal", "2.38.0", "2.38.0", false},
		{"newer", "2.38.0", "2.40.1", false},
		{"older", "2.38.0", "2.37.9", true},
		{"major only", "3", "2.99.0", true},
		{"v prefix", "v2.1.0", "2.1.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProject()
			p.Options.MinimumXcodeGenVersion = tt.minimum
			err := MinimumVersion(p, tt.running)
			if !tt.fails {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var se *SpecError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SpecError, got %v", err)
			}
			if len(se.Errors) != 1 || se.Errors[0].Kind != KindInvalidXcodeGenVersion || se.Errors[0].Phase != PhaseVersion {
				t.Errorf("errors = %v", se.Errors)
			}
		})
	}
}

func TestMinimumVersion_Invalid(t *testing.T) {
	p := &spec.Project{Options: spec.Options{MinimumXcodeGenVersion: "2.38.0"}}
	err := MinimumVersion(p, "dev")
	if err == nil {
		t.Fatal("expected error for unparseable tool version")
	}
	var se *SpecError
	if errors.As(err, &se) {
		t.Error("unparseable version should not be reported as a violation")
	}

	p.Options.MinimumXcodeGenVersion = "latest"
	if err := MinimumVersion(p, "2.38.0"); err == nil {
		t.Error("expected error for unparseable minimum")
	}
}

func TestRun_VersionViolationComesFirst(t *testing.T) {
	path := writeSpec(t, t.TempDir(), "name: App\noptions:\n  minimumXcodeGenVersion: 2.40.0\nfileGroups: [Docs]\n")

	p, errs, err := Run(path, "2.39.0", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.Name != "App" {
		t.Fatalf("project = %+v", p)
	}
	if got := kinds(errs); got != "invalidXcodeGenVersion,invalidFileGroup" {
		t.Errorf("kinds = %s", got)
	}

	_, errs, err = Run(path, "", Options{})
	if err != nil || kinds(errs) != "invalidFileGroup" {
		t.Errorf("without a tool version: %s, %v", kinds(errs), err)
	}

	if _, _, err := Run(path, "nightly", Options{}); err == nil {
		t.Error("expected error for unparseable tool version")
	}
}

func TestRun_LoadFailureSkipsVersionCheck(t *testing.T) {
	path := writeSpec(t, t.TempDir(), "name: App\nbogus: true\n")
	p, errs, err := Run(path, "nightly", Options{})
	if err != nil || p != nil {
		t.Fatalf("p = %v, err = %v", p, err)
	}
	expectCount(t, errs, KindLoadFailure, 1)
}

package validate

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

// MinimumVersion compares the running tool version against the project's
// minimumXcodeGenVersion option. It is independent of the aggregated pass
// and fails on its own with a single violation.
func MinimumVersion(p *spec.Project, version string) error {
	minimum := p.Options.MinimumXcodeGenVersion
	if minimum == "" {
		return nil
	}
	cur, ok := canonicalVersion(version)
	if !ok {
		return fmt.Errorf("invalid tool version %q", version)
	}
	want, ok := canonicalVersion(minimum)
	if !ok {
		return fmt.Errorf("invalid minimumXcodeGenVersion %q", minimum)
	}
	if semver.Compare(cur, want) >= 0 {
		return nil
	}
	return &SpecError{Errors: []*ValidationError{{
		Kind:     KindInvalidXcodeGenVersion,
		Phase:    PhaseVersion,
		Path:     "options.minimumXcodeGenVersion",
		Message:  fmt.Sprintf("project requires version %s or later, running %s", minimum, version),
		Severity: "error",
	}}}
}

// canonicalVersion accepts versions with or without a leading "v".
func canonicalVersion(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v, semver.IsValid(v)
}

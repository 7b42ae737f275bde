// Package validate checks a loaded project spec for internal consistency
// before it is used to generate anything. Every check runs; the result is
// the full list of violations.
package validate

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

// Spec validates p and returns nil or a *SpecError listing every violation.
func Spec(p *spec.Project, opts Options) error {
	errs := Collect(p, opts)
	if len(errs) == 0 {
		return nil
	}
	return &SpecError{Errors: errs}
}

// Collect runs every domain check over p and returns the violations in a
// stable order. The project is never modified.
func Collect(p *spec.Project, opts Options) []*ValidationError {
	v := newValidator(p, opts)
	v.run()
	return v.errs
}

// ValidateFile runs the full pipeline on a spec file:
// structural (strict YAML decode), semantic (JSON Schema) and domain.
// Domain checks only run when the earlier phases pass.
func ValidateFile(path string, opts Options) (*spec.Project, []*ValidationError) {
	log := opts.logger().With("spec", path)

	log.Debug("loading project spec")
	p, err := spec.LoadFile(path)
	if err != nil {
		return nil, []*ValidationError{{
			Kind:     KindLoadFailure,
			Phase:    PhaseStructural,
			File:     path,
			Message:  err.Error(),
			Severity: "error",
		}}
	}

	log.Debug("checking project against schema")
	errs := validateSemantic(p)
	if HasErrors(errs) {
		return p, errs
	}

	log.Debug("running domain checks", "targets", len(p.Targets), "schemes", len(p.Schemes))
	return p, append(errs, Collect(p, opts)...)
}

// Run validates the spec file at path. When toolVersion is set, the
// project's minimumXcodeGenVersion is checked too and a version violation
// is listed ahead of the pipeline's. The error is non-nil only when a
// version cannot be parsed.
func Run(path, toolVersion string, opts Options) (*spec.Project, []*ValidationError, error) {
	p, errs := ValidateFile(path, opts)
	if p == nil || toolVersion == "" {
		return p, errs, nil
	}
	if err := MinimumVersion(p, toolVersion); err != nil {
		var se *SpecError
		if !errors.As(err, &se) {
			return p, nil, err
		}
		errs = append(se.Errors, errs...)
	}
	return p, errs, nil
}

type validator struct {
	p    *spec.Project
	opts Options
	fs   FileSystem
	log  *slog.Logger
	errs []*ValidationError

	// settings group resolution state
	resolved      map[string]bool
	stack         []string
	unknownGroups map[string]bool
}

func newValidator(p *spec.Project, opts Options) *validator {
	return &validator{
		p:             p,
		opts:          opts,
		fs:            opts.fileSystem(),
		log:           opts.logger(),
		resolved:      map[string]bool{},
		unknownGroups: map[string]bool{},
	}
}

func (v *validator) add(e *ValidationError) {
	v.errs = append(v.errs, e)
}

func (v *validator) disabled(c spec.ValidationCategory) bool {
	return v.opts.isDisabled(v.p, c)
}

// resolve joins a spec-relative path onto the project's base path.
func (v *validator) resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(v.p.BasePath, rel)
}

func (v *validator) exists(rel string) bool {
	return v.fs.Exists(v.resolve(rel))
}

// run drives every checker in a fixed order. Nothing short-circuits.
func (v *validator) run() {
	v.log.Debug("validating settings")
	v.checkSettings(v.p.Settings, "settings")

	v.log.Debug("validating project references")
	v.checkFileGroups()
	v.checkLocalPackages()
	v.checkConfigFiles()
	v.checkDefaultConfig()

	for _, name := range spec.SortedKeys(v.p.SettingGroups) {
		v.resolveGroup(name, "settingGroups")
	}

	v.log.Debug("validating targets", "count", len(v.p.Targets), "aggregates", len(v.p.AggregateTargets))
	for _, pt := range v.projectTargets() {
		v.checkProjectTarget(pt)
	}
	v.checkAggregateMembers()
	for i := range v.p.Targets {
		t := &v.p.Targets[i]
		v.checkDependencies(t)
		v.checkSources(t)
		v.checkDestinations(t)
	}

	v.checkProjectReferencePaths()

	v.log.Debug("validating schemes", "count", len(v.p.Schemes))
	for i := range v.p.Schemes {
		v.checkScheme(&v.p.Schemes[i])
	}

	v.log.Debug("validation finished", "violations", len(v.errs))
}

package validate

import (
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

// ---------------------------------------------------------------------------
// Project level
// ---------------------------------------------------------------------------

func (v *validator) checkFileGroups() {
	for i, group := range v.p.FileGroups {
		if !v.exists(group) {
			e := errorf(KindInvalidFileGroup, fmt.Sprintf("fileGroups[%d]", i), "file group %q does not exist", group)
			e.File = v.resolve(group)
			v.add(e)
		}
	}
}

func (v *validator) checkLocalPackages() {
	for _, name := range spec.SortedKeys(v.p.Packages) {
		pkg := v.p.Packages[name]
		if pkg.IsLocal() && !v.exists(filepath.Clean(pkg.Path)) {
			e := errorf(KindInvalidLocalPackage, "packages."+name, "local package %q does not exist at %q", name, pkg.Path)
			e.Reference = name
			e.File = v.resolve(pkg.Path)
			v.add(e)
		}
	}
}

func (v *validator) checkConfigFiles() {
	for _, config := range spec.SortedKeys(v.p.ConfigFiles) {
		file := v.p.ConfigFiles[config]
		path := "configFiles." + config
		if !v.disabled(spec.MissingConfigFiles) && !v.exists(file) {
			e := errorf(KindInvalidConfigFile, path, "config file %q for config %q does not exist", file, config)
			e.Config = config
			e.File = v.resolve(file)
			v.add(e)
		}
		v.checkConfigFileConfig(config, path)
	}
}

func (v *validator) checkConfigFileConfig(config, path string) {
	if v.disabled(spec.MissingConfigs) {
		return
	}
	if _, ok := v.p.Config(config); !ok {
		e := errorf(KindInvalidConfigFileConfig, path, "config file references undeclared config %q", config)
		e.Config = config
		v.add(e)
	}
}

func (v *validator) checkDefaultConfig() {
	name := v.p.Options.DefaultConfig
	if name == "" {
		return
	}
	if _, ok := v.p.Config(name); !ok {
		e := errorf(KindMissingDefaultConfig, "options.defaultConfig", "default config %q is not declared", name)
		e.Config = name
		v.add(e)
	}
}

func (v *validator) checkProjectReferencePaths() {
	for _, ref := range v.p.ProjectReferences {
		if !v.exists(ref.Path) {
			e := errorf(KindInvalidProjectReferencePath, "projectReferences."+ref.Name,
				"project reference %q points at missing path %q", ref.Name, ref.Path)
			e.Reference = ref.Name
			e.File = v.resolve(ref.Path)
			v.add(e)
		}
	}
}

// ---------------------------------------------------------------------------
// Project targets (targets and aggregate targets)
// ---------------------------------------------------------------------------

type projectTarget struct {
	name        string
	path        string
	settings    spec.Settings
	configFiles map[string]string
	scripts     []spec.BuildScript
	scheme      *spec.TargetScheme
	plugins     []spec.BuildToolPlugin
}

func (v *validator) projectTargets() []projectTarget {
	out := make([]projectTarget, 0, len(v.p.Targets)+len(v.p.AggregateTargets))
	for i := range v.p.Targets {
		t := &v.p.Targets[i]
		out = append(out, projectTarget{
			name:        t.Name,
			path:        "targets." + t.Name,
			settings:    t.Settings,
			configFiles: t.ConfigFiles,
			scripts:     t.BuildScripts(),
			scheme:      t.Scheme,
			plugins:     t.BuildToolPlugins,
		})
	}
	for _, t := range v.p.AggregateTargets {
		out = append(out, projectTarget{
			name:        t.Name,
			path:        "aggregateTargets." + t.Name,
			settings:    t.Settings,
			configFiles: t.ConfigFiles,
			scripts:     t.BuildScripts,
			scheme:      t.Scheme,
		})
	}
	return out
}

func (v *validator) checkProjectTarget(t projectTarget) {
	for _, config := range spec.SortedKeys(t.configFiles) {
		file := t.configFiles[config]
		path := t.path + ".configFiles." + config
		if !v.disabled(spec.MissingConfigFiles) && !v.exists(file) {
			e := errorf(KindInvalidTargetConfigFile, path,
				"target %q has a config file %q for config %q that does not exist", t.name, v.resolve(file), config)
			e.Target = t.name
			e.Config = config
			e.File = v.resolve(file)
			v.add(e)
		}
		v.checkConfigFileConfig(config, path)
	}

	if t.scheme != nil {
		v.checkTargetScheme(t.name, t.path+".scheme", t.scheme)
	}

	for i, script := range t.scripts {
		if script.IsPath() && !v.exists(script.Path) {
			e := errorf(KindInvalidBuildScriptPath, fmt.Sprintf("%s.buildScripts[%d]", t.path, i),
				"target %q has a script %q with a missing path %q", t.name, script.Name, v.resolve(script.Path))
			e.Target = t.name
			e.Reference = script.Name
			e.File = v.resolve(script.Path)
			v.add(e)
		}
	}

	v.checkSettings(t.settings, t.path+".settings")

	for i, plugin := range t.plugins {
		if _, ok := v.p.Package(plugin.Package); !ok {
			e := errorf(KindInvalidPluginPackageReference, fmt.Sprintf("%s.buildToolPlugins[%d]", t.path, i),
				"build tool plugin %q references undeclared package %q", plugin.Plugin, plugin.Package)
			e.Target = t.name
			e.Reference = plugin.Package
			v.add(e)
		}
	}
}

func (v *validator) checkTargetScheme(target, path string, scheme *spec.TargetScheme) {
	for _, variant := range scheme.ConfigVariants {
		for _, typ := range []spec.ConfigType{spec.ConfigDebug, spec.ConfigRelease} {
			if _, ok := v.p.ConfigIncluding(variant, typ); !ok {
				e := errorf(KindInvalidTargetSchemeConfigVariant, path+".configVariants",
					"target %q scheme variant %q has no %s config", target, variant, typ)
				e.Target = target
				e.Config = variant
				v.add(e)
			}
		}
	}

	if len(scheme.ConfigVariants) == 0 {
		for _, typ := range []spec.ConfigType{spec.ConfigDebug, spec.ConfigRelease} {
			if !v.p.HasConfigType(typ) {
				e := errorf(KindMissingConfigForTargetScheme, path,
					"target %q has a scheme but no %s config is declared", target, typ)
				e.Target = target
				e.Config = string(typ)
				v.add(e)
			}
		}
	}

	for i, tt := range scheme.TestTargets {
		if _, ok := v.p.Target(tt.Target.Name); ok {
			continue
		}
		if loc, ok := tt.Target.Location.(spec.InPackage); ok {
			if _, ok := v.p.Package(loc.Package); ok {
				continue
			}
		}
		e := errorf(KindInvalidTargetSchemeTest, fmt.Sprintf("%s.testTargets[%d]", path, i),
			"target %q scheme tests unknown target %q", target, tt.Target.Name)
		e.Target = target
		e.Reference = tt.Target.String()
		v.add(e)
	}

	v.checkTestPlans(path+".testPlans", scheme.TestPlans, func(e *ValidationError) { e.Target = target })
}

func (v *validator) checkTestPlans(path string, plans []spec.TestPlan, annotate func(*ValidationError)) {
	if v.disabled(spec.MissingTestPlans) {
		return
	}
	for i, plan := range plans {
		if !v.exists(plan.Path) {
			e := errorf(KindInvalidTestPlan, fmt.Sprintf("%s[%d]", path, i), "test plan %q does not exist", plan.Path)
			e.File = v.resolve(plan.Path)
			annotate(e)
			v.add(e)
		}
	}
}

func (v *validator) checkAggregateMembers() {
	for _, t := range v.p.AggregateTargets {
		for i, member := range t.Targets {
			if !v.p.HasAnyTarget(member) {
				e := errorf(KindInvalidTargetDependency, fmt.Sprintf("aggregateTargets.%s.targets[%d]", t.Name, i),
					"aggregate target %q includes unknown target %q", t.Name, member)
				e.Target = t.Name
				e.Reference = member
				v.add(e)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Target dependencies and sources
// ---------------------------------------------------------------------------

var sdkExtensions = []string{"framework", "tbd", "dylib"}

func (v *validator) checkDependencies(t *spec.Target) {
	var seen []spec.Dependency
	for i, dep := range t.Dependencies {
		path := fmt.Sprintf("targets.%s.dependencies[%d]", t.Name, i)
		v.checkDependency(t, dep, path)

		if slices.ContainsFunc(seen, func(d spec.Dependency) bool { return reflect.DeepEqual(d, dep) }) {
			e := errorf(KindDuplicateDependencies, path,
				"target %q declares dependency %q more than once", t.Name, dep.Reference)
			e.Target = t.Name
			e.Reference = dep.Reference
			v.add(e)
			continue
		}
		seen = append(seen, dep)
	}
}

func (v *validator) checkDependency(t *spec.Target, dep spec.Dependency, path string) {
	invalid := func(kind Kind, msg string, args ...any) {
		e := errorf(kind, path, msg, args...)
		e.Target = t.Name
		e.Reference = dep.Reference
		v.add(e)
	}

	switch dep.Type {
	case spec.DependencyTarget:
		ref, err := spec.ParseTargetReference(dep.Reference)
		if err != nil {
			invalid(KindInvalidTargetDependency, "target %q has a malformed dependency: %v", t.Name, err)
			return
		}
		switch loc := ref.Location.(type) {
		case spec.InProject:
			if _, ok := v.p.ProjectReference(loc.Project); !ok {
				invalid(KindInvalidTargetDependency, "target %q depends on %q but project %q is not referenced", t.Name, dep.Reference, loc.Project)
			}
		default:
			if !v.p.HasAnyTarget(ref.Name) {
				invalid(KindInvalidTargetDependency, "target %q depends on unknown target %q", t.Name, dep.Reference)
			}
		}
	case spec.DependencySDK:
		// References with a separator are direct paths and skip the check.
		if strings.Contains(dep.Reference, "/") {
			return
		}
		ext := strings.TrimPrefix(filepath.Ext(dep.Reference), ".")
		if !slices.Contains(sdkExtensions, ext) {
			invalid(KindInvalidSDKDependency, "target %q has sdk dependency %q without a .framework, .tbd or .dylib extension", t.Name, dep.Reference)
		}
	case spec.DependencyPackage:
		if _, ok := v.p.Package(dep.Reference); !ok {
			invalid(KindInvalidSwiftPackage, "target %q depends on undeclared package %q", t.Name, dep.Reference)
		}
	}
}

func (v *validator) checkSources(t *spec.Target) {
	for i, src := range t.Sources {
		if src.Optional || v.exists(src.Path) {
			continue
		}
		e := errorf(KindInvalidTargetSource, fmt.Sprintf("targets.%s.sources[%d]", t.Name, i),
			"target %q has a missing source %q", t.Name, v.resolve(src.Path))
		e.Target = t.Name
		e.File = v.resolve(src.Path)
		v.add(e)
	}
}

// ---------------------------------------------------------------------------
// Schemes
// ---------------------------------------------------------------------------

func (v *validator) checkScheme(s *spec.Scheme) {
	path := "schemes." + s.Name

	for i, bt := range s.Build.Targets {
		v.checkSchemeReference(s, fmt.Sprintf("%s.build.targets[%d]", path, i), "build", bt.Target.Name, bt.Target.Location)
	}
	v.checkSchemeConfig(s, "run", s.Run)

	if test := s.Test; test != nil {
		v.checkTestPlans(path+".test.testPlans", test.TestPlans, func(e *ValidationError) { e.Scheme = s.Name })
		if test.DefaultPlanCount() > 1 {
			e := errorf(KindMultipleDefaultTestPlans, path+".test.testPlans",
				"scheme %q marks more than one test plan as default", s.Name)
			e.Scheme = s.Name
			v.add(e)
		}
		if test.Config != "" {
			v.checkSchemeConfig(s, "test", &spec.SchemeAction{Config: test.Config})
		}
		for i, tt := range test.Targets {
			v.checkSchemeReference(s, fmt.Sprintf("%s.test.targets[%d]", path, i), "test", tt.Target.Name, tt.Target.Location)
		}
		for i, ct := range test.CoverageTargets {
			v.checkSchemeReference(s, fmt.Sprintf("%s.test.coverageTargets[%d]", path, i), "test", ct.Name, ct.Location)
		}
	}

	v.checkSchemeConfig(s, "profile", s.Profile)
	v.checkSchemeConfig(s, "analyze", s.Analyze)
	v.checkSchemeConfig(s, "archive", s.Archive)
}

func (v *validator) checkSchemeConfig(s *spec.Scheme, action string, a *spec.SchemeAction) {
	if a == nil || a.Config == "" {
		return
	}
	if _, ok := v.p.Config(a.Config); !ok {
		e := errorf(KindInvalidSchemeConfig, fmt.Sprintf("schemes.%s.%s.config", s.Name, action),
			"scheme %q %s action uses undeclared config %q", s.Name, action, a.Config)
		e.Scheme = s.Name
		e.Config = a.Config
		v.add(e)
	}
}

// checkSchemeReference resolves a scheme target reference according to
// where it says the target lives. A nil location means local.
func (v *validator) checkSchemeReference(s *spec.Scheme, path, action, name string, loc spec.Location) {
	var e *ValidationError
	switch loc := loc.(type) {
	case spec.Local, nil:
		if !v.p.HasAnyTarget(name) {
			e = errorf(KindInvalidSchemeTarget, path, "scheme %q %s action references unknown target %q", s.Name, action, name)
			e.Reference = name
		}
	case spec.InProject:
		if _, ok := v.p.ProjectReference(loc.Project); !ok {
			e = errorf(KindInvalidProjectReference, path, "scheme %q references unknown project %q", s.Name, loc.Project)
			e.Reference = loc.Project
		}
	case spec.InPackage:
		if _, ok := v.p.Package(loc.Package); !ok {
			e = errorf(KindInvalidSchemePackage, path, "scheme %q references unknown package %q", s.Name, loc.Package)
			e.Reference = loc.Package
		}
	}
	if e != nil {
		e.Scheme = s.Name
		v.add(e)
	}
}

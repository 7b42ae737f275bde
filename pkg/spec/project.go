// Package spec defines the in-memory project model that describes build
// configurations, targets, dependencies, settings and schemes, and provides
// YAML loading of project documents.
package spec

import (
	"sort"
	"strings"
)

// Project is the root of a parsed project specification.
// The model is read-only once loaded.
type Project struct {
	Name              string              `json:"name" jsonschema:"required"`
	BasePath          string              `json:"-"`
	Options           Options             `json:"options"`
	Configs           []Config            `json:"configs,omitempty"`
	Settings          Settings            `json:"settings"`
	SettingGroups     map[string]Settings `json:"settingGroups,omitempty"`
	Packages          map[string]Package  `json:"packages,omitempty"`
	ConfigFiles       map[string]string   `json:"configFiles,omitempty"`
	FileGroups        []string            `json:"fileGroups,omitempty"`
	Targets           []Target            `json:"targets,omitempty"`
	AggregateTargets  []AggregateTarget   `json:"aggregateTargets,omitempty"`
	ProjectReferences []ProjectReference  `json:"projectReferences,omitempty"`
	Schemes           []Scheme            `json:"schemes,omitempty"`
}

// Options holds project-wide toggles.
type Options struct {
	DefaultConfig          string               `yaml:"defaultConfig,omitempty"          json:"defaultConfig,omitempty"`
	MinimumXcodeGenVersion string               `yaml:"minimumXcodeGenVersion,omitempty" json:"minimumXcodeGenVersion,omitempty" jsonschema:"pattern=^v?[0-9]+(\\.[0-9]+)*$"`
	DisabledValidations    []ValidationCategory `yaml:"disabledValidations,omitempty"    json:"disabledValidations,omitempty"`
}

// ValidationCategory names a class of checks that can be switched off.
// The set is open: unknown names are carried but never consulted.
type ValidationCategory string

const (
	MissingConfigs     ValidationCategory = "missingConfigs"
	MissingConfigFiles ValidationCategory = "missingConfigFiles"
	MissingTestPlans   ValidationCategory = "missingTestPlans"
)

// ConfigType is the build variant a configuration belongs to.
type ConfigType string

const (
	ConfigDebug   ConfigType = "debug"
	ConfigRelease ConfigType = "release"
)

// Config is a named build configuration.
type Config struct {
	Name string     `json:"name" jsonschema:"required"`
	Type ConfigType `json:"type" jsonschema:"required,enum=debug,enum=release"`
}

// VariantName strips the trailing type name, so "Staging Debug" yields "Staging".
func (c Config) VariantName() string {
	for _, suffix := range []string{" Debug", " Release", " debug", " release"} {
		if strings.HasSuffix(c.Name, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(c.Name, suffix))
		}
	}
	return c.Name
}

// ProjectReference points at another project specification.
type ProjectReference struct {
	Name string `yaml:"-"    json:"name" jsonschema:"required"`
	Path string `yaml:"path" json:"path" jsonschema:"required"`
}

// Package is a Swift package declaration. Local packages set Path,
// remote packages set URL and a version requirement.
type Package struct {
	URL          string `yaml:"url,omitempty"          json:"url,omitempty"`
	From         string `yaml:"from,omitempty"         json:"from,omitempty"`
	MajorVersion string `yaml:"majorVersion,omitempty" json:"majorVersion,omitempty"`
	MinorVersion string `yaml:"minorVersion,omitempty" json:"minorVersion,omitempty"`
	ExactVersion string `yaml:"exactVersion,omitempty" json:"exactVersion,omitempty"`
	Branch       string `yaml:"branch,omitempty"       json:"branch,omitempty"`
	Revision     string `yaml:"revision,omitempty"     json:"revision,omitempty"`
	Path         string `yaml:"path,omitempty"         json:"path,omitempty"`
	Group        string `yaml:"group,omitempty"        json:"group,omitempty"`
}

// IsLocal reports whether the package is resolved from the file system.
func (p Package) IsLocal() bool {
	return p.Path != ""
}

// Config returns the configuration with exactly this name.
func (p *Project) Config(name string) (Config, bool) {
	for _, c := range p.Configs {
		if c.Name == name {
			return c, true
		}
	}
	return Config{}, false
}

// ConfigIncluding finds a configuration of the given type for a scheme
// config variant. An exact variant name wins over a substring match.
func (p *Project) ConfigIncluding(variant string, typ ConfigType) (Config, bool) {
	for _, c := range p.Configs {
		if c.Type == typ && c.VariantName() == variant {
			return c, true
		}
	}
	lower := strings.ToLower(variant)
	for _, c := range p.Configs {
		if c.Type == typ && strings.Contains(strings.ToLower(c.Name), lower) {
			return c, true
		}
	}
	return Config{}, false
}

// HasConfigType reports whether any configuration has the given type.
func (p *Project) HasConfigType(typ ConfigType) bool {
	for _, c := range p.Configs {
		if c.Type == typ {
			return true
		}
	}
	return false
}

// Target returns the project target with the given name.
func (p *Project) Target(name string) (*Target, bool) {
	for i := range p.Targets {
		if p.Targets[i].Name == name {
			return &p.Targets[i], true
		}
	}
	return nil, false
}

// AggregateTarget returns the aggregate target with the given name.
func (p *Project) AggregateTarget(name string) (*AggregateTarget, bool) {
	for i := range p.AggregateTargets {
		if p.AggregateTargets[i].Name == name {
			return &p.AggregateTargets[i], true
		}
	}
	return nil, false
}

// HasAnyTarget looks the name up among project and aggregate targets.
func (p *Project) HasAnyTarget(name string) bool {
	if _, ok := p.Target(name); ok {
		return true
	}
	_, ok := p.AggregateTarget(name)
	return ok
}

// ProjectReference returns the reference with the given name.
func (p *Project) ProjectReference(name string) (ProjectReference, bool) {
	for _, r := range p.ProjectReferences {
		if r.Name == name {
			return r, true
		}
	}
	return ProjectReference{}, false
}

// Package returns the package declared under name.
func (p *Project) Package(name string) (Package, bool) {
	pkg, ok := p.Packages[name]
	return pkg, ok
}

// ParseCategories splits comma-separated category lists, dropping blanks.
func ParseCategories(values ...string) []ValidationCategory {
	var out []ValidationCategory
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, ValidationCategory(part))
			}
		}
	}
	return out
}

// IsDisabled reports whether the project options switch off a category.
func (o Options) IsDisabled(c ValidationCategory) bool {
	for _, d := range o.DisabledValidations {
		if d == c {
			return true
		}
	}
	return false
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

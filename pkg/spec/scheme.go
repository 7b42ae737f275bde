package spec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Reference locations
// ---------------------------------------------------------------------------

// Location says where a referenced target is declared. The implementations
// are Local, InProject and InPackage.
type Location interface {
	location()
}

// TargetLocation is the subset of locations a plain target reference may
// carry: Local or InProject.
type TargetLocation interface {
	Location
	targetLocation()
}

// Local is a target declared in this project.
type Local struct{}

// InProject is a target declared in a referenced project.
type InProject struct {
	Project string
}

// InPackage is a test target vended by an external package.
type InPackage struct {
	Package string
}

func (Local) location()           {}
func (Local) targetLocation()     {}
func (InProject) location()       {}
func (InProject) targetLocation() {}
func (InPackage) location()       {}

// ---------------------------------------------------------------------------
// Target references
// ---------------------------------------------------------------------------

// TargetReference names a target that is either local or lives in a
// referenced project.
type TargetReference struct {
	Name     string
	Location TargetLocation
}

// ParseTargetReference reads `Name` or `Project/Name`.
func ParseTargetReference(s string) (TargetReference, error) {
	parts := strings.Split(s, "/")
	switch len(parts) {
	case 1:
		return TargetReference{Name: s, Location: Local{}}, nil
	case 2:
		return TargetReference{Name: parts[1], Location: InProject{Project: parts[0]}}, nil
	default:
		return TargetReference{}, fmt.Errorf("invalid target reference %q: expected Name or Project/Name", s)
	}
}

func (r TargetReference) String() string {
	if p, ok := r.Location.(InProject); ok {
		return p.Project + "/" + r.Name
	}
	return r.Name
}

func (r TargetReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *TargetReference) UnmarshalYAML(value *yaml.Node) error {
	ref, err := ParseTargetReference(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = ref
	return nil
}

func (TargetReference) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:    "string",
		Pattern: "^[^/]+(/[^/]+)?$",
	}
}

// TestableTargetReference names a test target that is local, in a
// referenced project, or in an external package.
type TestableTargetReference struct {
	Name     string
	Location Location
}

func (r TestableTargetReference) String() string {
	switch loc := r.Location.(type) {
	case InProject:
		return loc.Project + "/" + r.Name
	case InPackage:
		return loc.Package + "/" + r.Name
	default:
		return r.Name
	}
}

type testableJSON struct {
	Name    string `json:"name"              yaml:"name"`
	Project string `json:"project,omitempty" yaml:"project"`
	Package string `json:"package,omitempty" yaml:"package"`
}

func (r TestableTargetReference) MarshalJSON() ([]byte, error) {
	out := testableJSON{Name: r.Name}
	switch loc := r.Location.(type) {
	case InProject:
		out.Project = loc.Project
	case InPackage:
		out.Package = loc.Package
	}
	return json.Marshal(out)
}

// UnmarshalYAML accepts `Name`, `Project/Name`, or a mapping with name
// plus at most one of project or package.
func (r *TestableTargetReference) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		ref, err := ParseTargetReference(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		r.Name = ref.Name
		r.Location = ref.Location
		return nil
	}
	var raw testableJSON
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Name == "" {
		return fmt.Errorf("line %d: test target requires a name", value.Line)
	}
	r.Name = raw.Name
	switch {
	case raw.Project != "" && raw.Package != "":
		return fmt.Errorf("line %d: test target %q sets both project and package", value.Line, raw.Name)
	case raw.Project != "":
		r.Location = InProject{Project: raw.Project}
	case raw.Package != "":
		r.Location = InPackage{Package: raw.Package}
	default:
		r.Location = Local{}
	}
	return nil
}

func (TestableTargetReference) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("name", &jsonschema.Schema{Type: "string"})
	props.Set("project", &jsonschema.Schema{Type: "string"})
	props.Set("package", &jsonschema.Schema{Type: "string"})
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{"name"},
	}
}

// ---------------------------------------------------------------------------
// Schemes
// ---------------------------------------------------------------------------

// Scheme bundles build, run, test, profile, analyze and archive actions.
type Scheme struct {
	Name    string        `yaml:"-"                 json:"name" jsonschema:"required"`
	Build   BuildAction   `yaml:"build"             json:"build"`
	Run     *SchemeAction `yaml:"run,omitempty"     json:"run,omitempty"`
	Test    *TestAction   `yaml:"test,omitempty"    json:"test,omitempty"`
	Profile *SchemeAction `yaml:"profile,omitempty" json:"profile,omitempty"`
	Analyze *SchemeAction `yaml:"analyze,omitempty" json:"analyze,omitempty"`
	Archive *SchemeAction `yaml:"archive,omitempty" json:"archive,omitempty"`
}

// SchemeAction is an action whose only checked property is its config.
type SchemeAction struct {
	Config string `yaml:"config,omitempty" json:"config,omitempty"`
}

// BuildAction lists the targets a scheme builds.
type BuildAction struct {
	Targets                   []BuildTarget `json:"targets,omitempty"`
	ParallelizeBuild          bool          `json:"parallelizeBuild,omitempty"`
	BuildImplicitDependencies bool          `json:"buildImplicitDependencies,omitempty"`
}

// BuildTarget is one entry of a build action.
type BuildTarget struct {
	Target     TargetReference `json:"target"`
	BuildTypes []string        `json:"buildTypes,omitempty"`
}

// UnmarshalYAML reads `targets` as an ordered mapping of target reference
// to build types (`all`, `none`, or a list such as [test, archive]).
func (b *BuildAction) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Targets                   yaml.Node `yaml:"targets"`
		ParallelizeBuild          *bool     `yaml:"parallelizeBuild"`
		BuildImplicitDependencies *bool     `yaml:"buildImplicitDependencies"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	b.ParallelizeBuild = raw.ParallelizeBuild == nil || *raw.ParallelizeBuild
	b.BuildImplicitDependencies = raw.BuildImplicitDependencies == nil || *raw.BuildImplicitDependencies
	if raw.Targets.Kind == 0 {
		return nil
	}
	if raw.Targets.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: build targets must be a mapping", raw.Targets.Line)
	}
	for i := 0; i+1 < len(raw.Targets.Content); i += 2 {
		var bt BuildTarget
		if err := raw.Targets.Content[i].Decode(&bt.Target); err != nil {
			return err
		}
		types := raw.Targets.Content[i+1]
		switch types.Kind {
		case yaml.ScalarNode:
			bt.BuildTypes = []string{types.Value}
		case yaml.SequenceNode:
			if err := types.Decode(&bt.BuildTypes); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: build types must be a string or list", types.Line)
		}
		b.Targets = append(b.Targets, bt)
	}
	return nil
}

// TestAction configures what a scheme tests.
type TestAction struct {
	Config             string                    `yaml:"config,omitempty"             json:"config,omitempty"`
	Targets            []TestTarget              `yaml:"targets,omitempty"            json:"targets,omitempty"`
	CoverageTargets    []TestableTargetReference `yaml:"coverageTargets,omitempty"    json:"coverageTargets,omitempty"`
	TestPlans          []TestPlan                `yaml:"testPlans,omitempty"          json:"testPlans,omitempty"`
	GatherCoverageData bool                      `yaml:"gatherCoverageData,omitempty" json:"gatherCoverageData,omitempty"`
}

// DefaultPlanCount counts the test plans flagged as default.
func (t *TestAction) DefaultPlanCount() int {
	n := 0
	for _, p := range t.TestPlans {
		if p.DefaultPlan {
			n++
		}
	}
	return n
}

// TestTarget is a testable reference plus its run options.
type TestTarget struct {
	Target               TestableTargetReference `json:"target"`
	Parallelizable       bool                    `json:"parallelizable,omitempty"`
	RandomExecutionOrder bool                    `json:"randomExecutionOrder,omitempty"`
	Skipped              bool                    `json:"skipped,omitempty"`
}

func (t *TestTarget) UnmarshalYAML(value *yaml.Node) error {
	if err := value.Decode(&t.Target); err != nil {
		return err
	}
	if value.Kind != yaml.MappingNode {
		return nil
	}
	var flags struct {
		Parallelizable       bool `yaml:"parallelizable"`
		RandomExecutionOrder bool `yaml:"randomExecutionOrder"`
		Skipped              bool `yaml:"skipped"`
	}
	if err := value.Decode(&flags); err != nil {
		return err
	}
	t.Parallelizable = flags.Parallelizable
	t.RandomExecutionOrder = flags.RandomExecutionOrder
	t.Skipped = flags.Skipped
	return nil
}

// TestPlan is an .xctestplan file attached to a test action.
type TestPlan struct {
	Path        string `yaml:"path"                  json:"path" jsonschema:"required"`
	DefaultPlan bool   `yaml:"defaultPlan,omitempty" json:"defaultPlan,omitempty"`
}

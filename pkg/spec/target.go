package spec

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Platforms
// ---------------------------------------------------------------------------

// Platform is the SDK platform a target builds for.
type Platform string

const (
	PlatformIOS      Platform = "iOS"
	PlatformMacOS    Platform = "macOS"
	PlatformTvOS     Platform = "tvOS"
	PlatformWatchOS  Platform = "watchOS"
	PlatformVisionOS Platform = "visionOS"
	PlatformAuto     Platform = "auto"
)

// SupportedDestination is one deployment destination of a multiplatform target.
type SupportedDestination string

const (
	DestinationIOS         SupportedDestination = "iOS"
	DestinationTvOS        SupportedDestination = "tvOS"
	DestinationMacOS       SupportedDestination = "macOS"
	DestinationMacCatalyst SupportedDestination = "macCatalyst"
	DestinationVisionOS    SupportedDestination = "visionOS"
	DestinationWatchOS     SupportedDestination = "watchOS"
)

var destinationsByName = map[string]SupportedDestination{
	string(DestinationIOS):         DestinationIOS,
	string(DestinationTvOS):        DestinationTvOS,
	string(DestinationMacOS):       DestinationMacOS,
	string(DestinationMacCatalyst): DestinationMacCatalyst,
	string(DestinationVisionOS):    DestinationVisionOS,
	string(DestinationWatchOS):     DestinationWatchOS,
}

func (SupportedDestination) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(destinationsByName))
	for _, name := range SortedKeys(destinationsByName) {
		enum = append(enum, name)
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}

// Destination returns the supported destination sharing the platform's
// raw value, if there is one.
func (p Platform) Destination() (SupportedDestination, bool) {
	d, ok := destinationsByName[string(p)]
	return d, ok
}

// ---------------------------------------------------------------------------
// Product types
// ---------------------------------------------------------------------------

// ProductType identifies what a target produces.
type ProductType string

const (
	ProductApplication           ProductType = "application"
	ProductOnDemandApplication   ProductType = "application.on-demand-install-capable"
	ProductMessagesApplication   ProductType = "application.messages"
	ProductWatchApp              ProductType = "application.watchapp"
	ProductWatch2App             ProductType = "application.watchapp2"
	ProductWatch2AppContainer    ProductType = "application.watchapp2-container"
	ProductFramework             ProductType = "framework"
	ProductStaticFramework       ProductType = "framework.static"
	ProductStaticLibrary         ProductType = "library.static"
	ProductDynamicLibrary        ProductType = "library.dynamic"
	ProductBundle                ProductType = "bundle"
	ProductUnitTestBundle        ProductType = "bundle.unit-test"
	ProductUITestBundle          ProductType = "bundle.ui-testing"
	ProductAppExtension          ProductType = "app-extension"
	ProductCommandLineTool       ProductType = "tool"
	ProductWatchExtension        ProductType = "watchkit2-extension"
	ProductXPCService            ProductType = "xpc-service"
	ProductDriverExtension       ProductType = "driver-extension"
	ProductSystemExtension       ProductType = "system-extension"
	ProductExtensionKitExtension ProductType = "extensionkit-extension"
)

// IsApp reports whether the product is one of the application family.
func (t ProductType) IsApp() bool {
	switch t {
	case ProductApplication, ProductOnDemandApplication, ProductMessagesApplication,
		ProductWatchApp, ProductWatch2App, ProductWatch2AppContainer:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Targets
// ---------------------------------------------------------------------------

// Target is a buildable unit of the project.
type Target struct {
	Name                  string                 `yaml:"-"                               json:"name" jsonschema:"required"`
	Type                  ProductType            `yaml:"type"                            json:"type" jsonschema:"required"`
	Platform              Platform               `yaml:"platform"                        json:"platform" jsonschema:"required,enum=iOS,enum=macOS,enum=tvOS,enum=watchOS,enum=visionOS,enum=auto"`
	SupportedDestinations []SupportedDestination `yaml:"supportedDestinations,omitempty" json:"supportedDestinations,omitempty" jsonschema:"uniqueItems=true"`
	Settings              Settings               `yaml:"settings,omitempty"              json:"settings"`
	ConfigFiles           map[string]string      `yaml:"configFiles,omitempty"           json:"configFiles,omitempty"`
	Dependencies          []Dependency           `yaml:"dependencies,omitempty"          json:"dependencies,omitempty"`
	Sources               []TargetSource         `yaml:"sources,omitempty"               json:"sources,omitempty"`
	PreBuildScripts       []BuildScript          `yaml:"preBuildScripts,omitempty"       json:"preBuildScripts,omitempty"`
	PostCompileScripts    []BuildScript          `yaml:"postCompileScripts,omitempty"    json:"postCompileScripts,omitempty"`
	PostBuildScripts      []BuildScript          `yaml:"postBuildScripts,omitempty"      json:"postBuildScripts,omitempty"`
	BuildToolPlugins      []BuildToolPlugin      `yaml:"buildToolPlugins,omitempty"      json:"buildToolPlugins,omitempty"`
	Scheme                *TargetScheme          `yaml:"scheme,omitempty"                json:"scheme,omitempty"`
}

// BuildScripts returns every script phase of the target in build order.
func (t *Target) BuildScripts() []BuildScript {
	all := make([]BuildScript, 0, len(t.PreBuildScripts)+len(t.PostCompileScripts)+len(t.PostBuildScripts))
	all = append(all, t.PreBuildScripts...)
	all = append(all, t.PostCompileScripts...)
	return append(all, t.PostBuildScripts...)
}

// HasDestination reports whether the declared destinations include d.
func (t *Target) HasDestination(d SupportedDestination) bool {
	for _, sd := range t.SupportedDestinations {
		if sd == d {
			return true
		}
	}
	return false
}

// TargetSource is a source file or directory reference.
type TargetSource struct {
	Path     string `yaml:"path"               json:"path" jsonschema:"required"`
	Name     string `yaml:"name,omitempty"     json:"name,omitempty"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty"`
	Group    string `yaml:"group,omitempty"    json:"group,omitempty"`
}

// UnmarshalYAML accepts a bare path or the mapping form.
func (s *TargetSource) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Path = value.Value
		return nil
	}
	type plain TargetSource
	return value.Decode((*plain)(s))
}

// BuildScript is a script phase, either inline or read from a file.
type BuildScript struct {
	Name   string `yaml:"name,omitempty"   json:"name,omitempty"`
	Script string `yaml:"script,omitempty" json:"script,omitempty"`
	Path   string `yaml:"path,omitempty"   json:"path,omitempty"`
	Shell  string `yaml:"shell,omitempty"  json:"shell,omitempty"`
}

// IsPath reports whether the script body lives in a file.
func (b BuildScript) IsPath() bool {
	return b.Path != ""
}

// BuildToolPlugin references a plugin vended by a declared package.
type BuildToolPlugin struct {
	Plugin  string `yaml:"plugin"  json:"plugin"  jsonschema:"required"`
	Package string `yaml:"package" json:"package" jsonschema:"required"`
}

// TargetScheme asks for a scheme to be generated alongside the target.
type TargetScheme struct {
	ConfigVariants     []string     `yaml:"configVariants,omitempty"     json:"configVariants,omitempty"`
	TestTargets        []TestTarget `yaml:"testTargets,omitempty"        json:"testTargets,omitempty"`
	TestPlans          []TestPlan   `yaml:"testPlans,omitempty"          json:"testPlans,omitempty"`
	GatherCoverageData bool         `yaml:"gatherCoverageData,omitempty" json:"gatherCoverageData,omitempty"`
}

// AggregateTarget groups other targets without producing anything itself.
type AggregateTarget struct {
	Name         string            `yaml:"-"                      json:"name" jsonschema:"required"`
	Targets      []string          `yaml:"targets"                json:"targets,omitempty"`
	Settings     Settings          `yaml:"settings,omitempty"     json:"settings"`
	ConfigFiles  map[string]string `yaml:"configFiles,omitempty"  json:"configFiles,omitempty"`
	BuildScripts []BuildScript     `yaml:"buildScripts,omitempty" json:"buildScripts,omitempty"`
	Scheme       *TargetScheme     `yaml:"scheme,omitempty"       json:"scheme,omitempty"`
}

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

// DependencyType tags what a dependency reference points at.
type DependencyType string

const (
	DependencyTarget    DependencyType = "target"
	DependencyFramework DependencyType = "framework"
	DependencyCarthage  DependencyType = "carthage"
	DependencySDK       DependencyType = "sdk"
	DependencyPackage   DependencyType = "package"
	DependencyBundle    DependencyType = "bundle"
)

var dependencyTypes = []DependencyType{
	DependencyTarget, DependencyFramework, DependencyCarthage,
	DependencySDK, DependencyPackage, DependencyBundle,
}

// Dependency is a typed reference from a target to something it links,
// embeds or builds against.
type Dependency struct {
	Type           DependencyType `json:"type"      jsonschema:"required,enum=target,enum=framework,enum=carthage,enum=sdk,enum=package,enum=bundle"`
	Reference      string         `json:"reference" jsonschema:"required"`
	Embed          *bool          `json:"embed,omitempty"`
	Link           *bool          `json:"link,omitempty"`
	Weak           bool           `json:"weak,omitempty"`
	Products       []string       `json:"products,omitempty"`
	PlatformFilter string         `json:"platformFilter,omitempty"`
}

// UnmarshalYAML reads the `<type>: <reference>` form, e.g. `target: App`.
func (d *Dependency) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Target         string   `yaml:"target"`
		Framework      string   `yaml:"framework"`
		Carthage       string   `yaml:"carthage"`
		SDK            string   `yaml:"sdk"`
		Package        string   `yaml:"package"`
		Bundle         string   `yaml:"bundle"`
		Embed          *bool    `yaml:"embed"`
		Link           *bool    `yaml:"link"`
		Weak           bool     `yaml:"weak"`
		Product        string   `yaml:"product"`
		Products       []string `yaml:"products"`
		PlatformFilter string   `yaml:"platformFilter"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	refs := map[DependencyType]string{
		DependencyTarget:    raw.Target,
		DependencyFramework: raw.Framework,
		DependencyCarthage:  raw.Carthage,
		DependencySDK:       raw.SDK,
		DependencyPackage:   raw.Package,
		DependencyBundle:    raw.Bundle,
	}
	for _, t := range dependencyTypes {
		if refs[t] == "" {
			continue
		}
		if d.Type != "" {
			return fmt.Errorf("line %d: dependency declares both %s and %s", value.Line, d.Type, t)
		}
		d.Type = t
		d.Reference = refs[t]
	}
	if d.Type == "" {
		return fmt.Errorf("line %d: dependency has no type key", value.Line)
	}
	d.Embed = raw.Embed
	d.Link = raw.Link
	d.Weak = raw.Weak
	d.Products = raw.Products
	if raw.Product != "" {
		d.Products = append([]string{raw.Product}, d.Products...)
	}
	d.PlatformFilter = raw.PlatformFilter
	return nil
}

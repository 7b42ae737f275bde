package validate

import (
	"fmt"
	"strings"
)

// Kind identifies a class of violation.
type Kind string

const (
	// Settings
	KindInvalidSettingsGroup      Kind = "invalidSettingsGroup"
	KindInvalidSettingsGroupCycle Kind = "invalidSettingsGroupCycle"
	KindInvalidBuildSettingConfig Kind = "invalidBuildSettingConfig"
	KindInvalidPerConfigSettings  Kind = "invalidPerConfigSettings"

	// Project level references
	KindInvalidFileGroup            Kind = "invalidFileGroup"
	KindInvalidLocalPackage         Kind = "invalidLocalPackage"
	KindInvalidConfigFile           Kind = "invalidConfigFile"
	KindInvalidConfigFileConfig     Kind = "invalidConfigFileConfig"
	KindMissingDefaultConfig        Kind = "missingDefaultConfig"
	KindInvalidProjectReferencePath Kind = "invalidProjectReferencePath"

	// Targets
	KindInvalidTargetConfigFile          Kind = "invalidTargetConfigFile"
	KindInvalidTargetSchemeConfigVariant Kind = "invalidTargetSchemeConfigVariant"
	KindMissingConfigForTargetScheme     Kind = "missingConfigForTargetScheme"
	KindInvalidTargetSchemeTest          Kind = "invalidTargetSchemeTest"
	KindInvalidTestPlan                  Kind = "invalidTestPlan"
	KindInvalidBuildScriptPath           Kind = "invalidBuildScriptPath"
	KindInvalidPluginPackageReference    Kind = "invalidPluginPackageReference"
	KindInvalidTargetDependency          Kind = "invalidTargetDependency"
	KindInvalidSDKDependency             Kind = "invalidSDKDependency"
	KindInvalidSwiftPackage              Kind = "invalidSwiftPackage"
	KindDuplicateDependencies            Kind = "duplicateDependencies"
	KindInvalidTargetSource              Kind = "invalidTargetSource"

	// Supported destinations
	KindUnexpectedTargetPlatformForSupportedDestinations Kind = "unexpectedTargetPlatformForSupportedDestinations"
	KindContainsWatchOSDestinationForMultiplatformApp    Kind = "containsWatchOSDestinationForMultiplatformApp"
	KindMultipleMacPlatformsInSupportedDestinations      Kind = "multipleMacPlatformsInSupportedDestinations"
	KindInvalidTargetPlatformForSupportedDestinations    Kind = "invalidTargetPlatformForSupportedDestinations"
	KindMissingTargetPlatformInSupportedDestinations     Kind = "missingTargetPlatformInSupportedDestinations"

	// Schemes
	KindInvalidSchemeTarget      Kind = "invalidSchemeTarget"
	KindInvalidProjectReference  Kind = "invalidProjectReference"
	KindInvalidSchemePackage     Kind = "invalidSchemePackage"
	KindInvalidSchemeConfig      Kind = "invalidSchemeConfig"
	KindMultipleDefaultTestPlans Kind = "multipleDefaultTestPlans"

	// Pipeline and version
	KindLoadFailure            Kind = "loadFailure"
	KindSchemaViolation        Kind = "schemaViolation"
	KindInvalidXcodeGenVersion Kind = "invalidXcodeGenVersion"
)

// Validation phases, in pipeline order.
const (
	PhaseStructural = "structural"
	PhaseSemantic   = "semantic"
	PhaseDomain     = "domain"
	PhaseVersion    = "version"
)

// ValidationError is one violation with enough context to render an
// actionable message.
type ValidationError struct {
	Kind      Kind   `json:"kind"`
	Phase     string `json:"phase"`
	Path      string `json:"path,omitempty"` // dotted location in the spec, e.g. "targets.App.sources[0]"
	Target    string `json:"target,omitempty"`
	Scheme    string `json:"scheme,omitempty"`
	Config    string `json:"config,omitempty"`
	Reference string `json:"reference,omitempty"`
	File      string `json:"file,omitempty"`
	Message   string `json:"message"`
	Severity  string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s at %s", e.Phase, e.Message, e.Path)
	}
	return fmt.Sprintf("[%s] %s", e.Phase, e.Message)
}

func errorf(kind Kind, path, msg string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:     kind,
		Phase:    PhaseDomain,
		Path:     path,
		Message:  fmt.Sprintf(msg, args...),
		Severity: "error",
	}
}

// SpecError is the composite failure of a validation pass. It carries
// every violation found; none is dropped.
type SpecError struct {
	Errors []*ValidationError
}

func (e *SpecError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "spec validation failed with %d error(s):", len(e.Errors))
	for _, ve := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(ve.Error())
	}
	return b.String()
}

// Unwrap exposes each violation to errors.Is and errors.As.
func (e *SpecError) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, ve := range e.Errors {
		out[i] = ve
	}
	return out
}

// Count returns how many violations have the given kind.
func (e *SpecError) Count(kind Kind) int {
	return Count(e.Errors, kind)
}

// Count returns how many violations in errs have the given kind.
func Count(errs []*ValidationError, kind Kind) int {
	n := 0
	for _, ve := range errs {
		if ve.Kind == kind {
			n++
		}
	}
	return n
}

// HasErrors reports whether any entry has error severity.
func HasErrors(errs []*ValidationError) bool {
	for _, e := range errs {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}

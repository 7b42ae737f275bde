package validate

import "github.com/Koagonzalo/XcodeGen/pkg/spec"

// checkDestinations rejects platform and supported-destination
// combinations that are legal on their own but contradict each other.
// Presence of the destinations list matters, not its length.
func (v *validator) checkDestinations(t *spec.Target) {
	dests := t.SupportedDestinations
	path := "targets." + t.Name + ".supportedDestinations"
	report := func(kind Kind, msg string, args ...any) {
		e := errorf(kind, path, msg, args...)
		e.Target = t.Name
		v.add(e)
	}

	if dests != nil && t.Platform == spec.PlatformWatchOS {
		report(KindUnexpectedTargetPlatformForSupportedDestinations,
			"target %q has platform %s which does not support supported destinations", t.Name, t.Platform)
	}

	if dests != nil && t.Type.IsApp() && t.HasDestination(spec.DestinationWatchOS) {
		report(KindContainsWatchOSDestinationForMultiplatformApp,
			"multiplatform app %q cannot list watchOS as a supported destination", t.Name)
	}

	if t.HasDestination(spec.DestinationMacOS) && t.HasDestination(spec.DestinationMacCatalyst) {
		report(KindMultipleMacPlatformsInSupportedDestinations,
			"target %q lists both macOS and macCatalyst; choose one", t.Name)
	}

	if t.HasDestination(spec.DestinationMacCatalyst) && t.Platform != spec.PlatformIOS && t.Platform != spec.PlatformAuto {
		report(KindInvalidTargetPlatformForSupportedDestinations,
			"target %q lists macCatalyst but its platform is %s; use iOS or auto", t.Name, t.Platform)
	}

	if t.Platform != spec.PlatformAuto && t.Platform != spec.PlatformWatchOS && dests != nil {
		if d, ok := t.Platform.Destination(); ok && !t.HasDestination(d) {
			report(KindMissingTargetPlatformInSupportedDestinations,
				"target %q has platform %s but does not list it in supported destinations", t.Name, t.Platform)
		}
	}
}

package validate

import (
	"testing"

	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

func TestWatchPlatformRejectsDestinations(t *testing.T) {
	tests := []struct {
		name  string
		dests []spec.SupportedDestination
	}{
		{"iOS", []spec.SupportedDestination{spec.DestinationIOS}},
		{"watchOS", []spec.SupportedDestination{spec.DestinationWatchOS}},
		{"mac pair", []spec.SupportedDestination{spec.DestinationMacOS, spec.DestinationMacCatalyst}},
		{"every destination", []spec.SupportedDestination{
			spec.DestinationIOS, spec.DestinationTvOS, spec.DestinationMacOS,
			spec.DestinationVisionOS, spec.DestinationWatchOS,
		}},
		{"empty list", []spec.SupportedDestination{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProject()
			p.Targets = []spec.Target{{
				Name: "Watch", Type: spec.ProductWatch2App, Platform: spec.PlatformWatchOS,
				SupportedDestinations: tt.dests,
			}}
			expectCount(t, collect(p, nil), KindUnexpectedTargetPlatformForSupportedDestinations, 1)
		})
	}
}

func TestWatchPlatformWithoutDestinations(t *testing.T) {
	p := newProject()
	p.Targets = []spec.Target{{Name: "Watch", Type: spec.ProductWatch2App, Platform: spec.PlatformWatchOS}}
	expectNone(t, collect(p, nil))
}

func TestDestinationRules(t *testing.T) {
	d := func(ds ...spec.SupportedDestination) []spec.SupportedDestination {
		if ds == nil {
			return []spec.SupportedDestination{}
		}
		return ds
	}
	tests := []struct {
		name     string
		typ      spec.ProductType
		platform spec.Platform
		dests    []spec.SupportedDestination
		want     map[Kind]int
	}{
		{
			name: "multiplatform app with watchOS", typ: spec.ProductApplication, platform: spec.PlatformIOS,
			dests: d(spec.DestinationIOS, spec.DestinationWatchOS),
			want:  map[Kind]int{KindContainsWatchOSDestinationForMultiplatformApp: 1},
		},
		{
			name: "app with watchOS as its only destination", typ: spec.ProductApplication, platform: spec.PlatformAuto,
			dests: d(spec.DestinationWatchOS),
			want:  map[Kind]int{KindContainsWatchOSDestinationForMultiplatformApp: 1},
		},
		{
			name: "framework with watchOS", typ: spec.ProductFramework, platform: spec.PlatformIOS,
			dests: d(spec.DestinationIOS, spec.DestinationWatchOS),
			want:  map[Kind]int{},
		},
		{
			name: "macOS and macCatalyst", typ: spec.ProductApplication, platform: spec.PlatformIOS,
			dests: d(spec.DestinationIOS, spec.DestinationMacOS, spec.DestinationMacCatalyst),
			want:  map[Kind]int{KindMultipleMacPlatformsInSupportedDestinations: 1},
		},
		{
			name: "macCatalyst on macOS platform", typ: spec.ProductFramework, platform: spec.PlatformMacOS,
			dests: d(spec.DestinationMacOS, spec.DestinationMacCatalyst),
			want: map[Kind]int{
				KindMultipleMacPlatformsInSupportedDestinations:   1,
				KindInvalidTargetPlatformForSupportedDestinations: 1,
			},
		},
		{
			name: "macCatalyst on auto platform", typ: spec.ProductFramework, platform: spec.PlatformAuto,
			dests: d(spec.DestinationIOS, spec.DestinationMacCatalyst),
			want:  map[Kind]int{},
		},
		{
			name: "platform not listed", typ: spec.ProductFramework, platform: spec.PlatformTvOS,
			dests: d(spec.DestinationIOS),
			want:  map[Kind]int{KindMissingTargetPlatformInSupportedDestinations: 1},
		},
		{
			name: "empty list still requires platform", typ: spec.ProductFramework, platform: spec.PlatformIOS,
			dests: d(),
			want:  map[Kind]int{KindMissingTargetPlatformInSupportedDestinations: 1},
		},
		{
			name: "no list", typ: spec.ProductFramework, platform: spec.PlatformIOS,
			want: map[Kind]int{},
		},
		{
			name: "auto platform", typ: spec.ProductApplication, platform: spec.PlatformAuto,
			dests: d(spec.DestinationIOS, spec.DestinationTvOS, spec.DestinationVisionOS),
			want:  map[Kind]int{},
		},
		{
			name: "visionOS", typ: spec.ProductApplication, platform: spec.PlatformVisionOS,
			dests: d(spec.DestinationVisionOS, spec.DestinationIOS),
			want:  map[Kind]int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProject()
			p.Targets = []spec.Target{{Name: "App", Type: tt.typ, Platform: tt.platform, SupportedDestinations: tt.dests}}
			errs := collect(p, nil)
			total := 0
			for kind, n := range tt.want {
				expectCount(t, errs, kind, n)
				total += n
			}
			if len(errs) != total {
				t.Errorf("got %s", kinds(errs))
			}
			for _, e := range errs {
				if e.Target != "App" || e.Path != "targets.App.supportedDestinations" {
					t.Errorf("violation context = %+v", e)
				}
			}
		})
	}
}

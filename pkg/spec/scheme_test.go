package spec

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseTargetReference(t *testing.T) {
	tests := []struct {
		in       string
		name     string
		location TargetLocation
		wantErr  bool
	}{
		{in: "App", name: "App", location: Local{}},
		{in: "Other/Shared", name: "Shared", location: InProject{Project: "Other"}},
		{in: "a/b/c", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, err := ParseTargetReference(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.Name != tt.name || ref.Location != tt.location {
				t.Errorf("got %+v, want name %q location %#v", ref, tt.name, tt.location)
			}
			if ref.String() != tt.in {
				t.Errorf("String() = %q, want %q", ref.String(), tt.in)
			}
		})
	}
}

func TestTestableTargetReference_YAML(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want TestableTargetReference
	}{
		{"scalar local", "AppTests", TestableTargetReference{Name: "AppTests", Location: Local{}}},
		{"scalar project", "Other/Tests", TestableTargetReference{Name: "Tests", Location: InProject{Project: "Other"}}},
		{"mapping local", "name: AppTests", TestableTargetReference{Name: "AppTests", Location: Local{}}},
		{"mapping project", "{name: Tests, project: Other}", TestableTargetReference{Name: "Tests", Location: InProject{Project: "Other"}}},
		{"mapping package", "{name: KitTests, package: Kit}", TestableTargetReference{Name: "KitTests", Location: InPackage{Package: "Kit"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TestableTargetReference
			if err := yaml.Unmarshal([]byte(tt.yaml), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTestableTargetReference_MissingName(t *testing.T) {
	var got TestableTargetReference
	if err := yaml.Unmarshal([]byte("package: Kit"), &got); err == nil {
		t.Fatalf("expected error for mapping without name, got %+v", got)
	}
}

func TestReferenceJSON(t *testing.T) {
	data, err := json.Marshal(BuildTarget{Target: TargetReference{Name: "Shared", Location: InProject{Project: "Other"}}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"target":"Other/Shared"}` {
		t.Errorf("build target JSON = %s", data)
	}

	data, err = json.Marshal(TestableTargetReference{Name: "KitTests", Location: InPackage{Package: "Kit"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"name":"KitTests","package":"Kit"}` {
		t.Errorf("testable JSON = %s", data)
	}
}

func TestConfigVariantName(t *testing.T) {
	tests := map[string]string{
		"Staging Debug":   "Staging",
		"Staging Release": "Staging",
		"Debug":           "Debug",
		"Production":      "Production",
	}
	for name, want := range tests {
		if got := (Config{Name: name}).VariantName(); got != want {
			t.Errorf("VariantName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestConfigIncluding(t *testing.T) {
	p := &Project{Configs: []Config{
		{Name: "Debug", Type: ConfigDebug},
		{Name: "Pre Staging Release", Type: ConfigRelease},
		{Name: "Staging Release", Type: ConfigRelease},
		{Name: "Staging Debug", Type: ConfigDebug},
	}}

	c, ok := p.ConfigIncluding("Staging", ConfigRelease)
	if !ok || c.Name != "Staging Release" {
		t.Errorf("exact variant should win, got %+v", c)
	}
	c, ok = p.ConfigIncluding("staging", ConfigDebug)
	if !ok || c.Name != "Staging Debug" {
		t.Errorf("case-insensitive match failed, got %+v", c)
	}
	if _, ok := p.ConfigIncluding("Beta", ConfigDebug); ok {
		t.Error("Beta should not match any config")
	}
}

func TestPlatformDestination(t *testing.T) {
	if d, ok := PlatformIOS.Destination(); !ok || d != DestinationIOS {
		t.Errorf("iOS destination = %v, %v", d, ok)
	}
	if _, ok := PlatformAuto.Destination(); ok {
		t.Error("auto has no destination")
	}
}

func TestProductTypeIsApp(t *testing.T) {
	for _, pt := range []ProductType{ProductApplication, ProductWatch2App, ProductMessagesApplication} {
		if !pt.IsApp() {
			t.Errorf("%s should be an app", pt)
		}
	}
	for _, pt := range []ProductType{ProductFramework, ProductUnitTestBundle, ProductCommandLineTool} {
		if pt.IsApp() {
			t.Errorf("%s should not be an app", pt)
		}
	}
}

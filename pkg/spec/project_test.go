package spec

import "testing"

func TestParseCategories(t *testing.T) {
	got := ParseCategories("missingConfigs,missingTestPlans", " missingConfigFiles ", "", " , ")
	want := []ValidationCategory{MissingConfigs, MissingTestPlans, MissingConfigFiles}
	if len(got) != len(want) {
		t.Fatalf("ParseCategories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if ParseCategories("") != nil {
		t.Error("empty input should yield nil")
	}
}

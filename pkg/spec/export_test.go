package spec

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGenerateJSONSchema(t *testing.T) {
	data, err := GenerateJSONSchema()
	if err != nil {
		t.Fatalf("GenerateJSONSchema: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if doc["$id"] != SchemaID {
		t.Errorf("$id = %v, want %s", doc["$id"], SchemaID)
	}
	if doc["title"] != "Project Specification" {
		t.Errorf("title = %v", doc["title"])
	}

	s := string(data)
	for _, want := range []string{"Target", "Scheme", "Dependency", "macCatalyst", "settingGroups"} {
		if !strings.Contains(s, want) {
			t.Errorf("schema missing %q", want)
		}
	}
}

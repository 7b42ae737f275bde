package spec

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID is the $id of the generated project schema.
const SchemaID = "https://github.com/Koagonzalo/XcodeGen/schemas/project.json"

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document from
// the Project struct using invopop/jsonschema. The schema describes the
// normalized model, not the YAML shorthand forms.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Project{})
	s.ID = SchemaID
	s.Title = "Project Specification"
	s.Description = "Schema for the normalized project model checked before generation"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

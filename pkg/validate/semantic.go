package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

const schemaResource = "project.json"

func semanticError(path, msg string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:     KindSchemaViolation,
		Phase:    PhaseSemantic,
		Path:     path,
		Message:  fmt.Sprintf(msg, args...),
		Severity: "error",
	}
}

// validateSemantic checks the loaded model against the generated JSON Schema.
func validateSemantic(p *spec.Project) []*ValidationError {
	data, err := json.Marshal(p)
	if err != nil {
		return []*ValidationError{semanticError("", "marshal for schema validation: %v", err)}
	}

	sch, err := compileProjectSchema()
	if err != nil {
		return []*ValidationError{semanticError("", "%v", err)}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []*ValidationError{semanticError("", "unmarshal document: %v", err)}
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*sjsonschema.ValidationError)
	if !ok {
		return []*ValidationError{semanticError("", "%v", err)}
	}
	var errs []*ValidationError
	for _, cause := range flattenValidationErrors(ve) {
		errs = append(errs, semanticError(strings.Join(cause.InstanceLocation, "."), "%v", cause.ErrorKind))
	}
	return errs
}

func compileProjectSchema() (*sjsonschema.Schema, error) {
	schemaJSON, err := spec.GenerateJSONSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	c := sjsonschema.NewCompiler()
	if err := c.AddResource(schemaResource, schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// Package schema checks profile documents for conformance against a JSON
// schema. It is a thin wrapper over an external validator; the resolution
// core never depends on it.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/interopcheck/interopcheck/internal/profile"
)

// Finding is a single conformance failure located within a profile document.
type Finding struct {
	InstanceLocation string `json:"instanceLocation"`
	KeywordLocation  string `json:"keywordLocation"`
	Message          string `json:"message"`
}

// Result is the outcome of validating one profile against one schema.
type Result struct {
	Conformant bool      `json:"conformant"`
	Findings   []Finding `json:"findings,omitempty"`
}

// Validator validates profile documents against a compiled JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// Compile compiles a schema document. name identifies the schema in error
// messages and keyword locations.
func Compile(name string, data []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return &Validator{schema: schema}, nil
}

// CompileFile compiles a schema from a file on disk.
func CompileFile(path string) (*Validator, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided schema path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return Compile(path, data)
}

// Validate checks doc against the schema and returns the conformance
// outcome with one finding per leaf validation failure.
func (v *Validator) Validate(doc profile.Document) Result {
	err := v.schema.Validate(map[string]any(doc))
	if err == nil {
		return Result{Conformant: true}
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return Result{Findings: collectFindings(validationErr, nil)}
	}
	return Result{Findings: []Finding{{Message: err.Error()}}}
}

// collectFindings flattens the validation error tree into findings,
// skipping interior nodes without a message of their own.
func collectFindings(err *jsonschema.ValidationError, findings []Finding) []Finding {
	if err.Message != "" {
		location := err.InstanceLocation
		if location == "" {
			location = "(root)"
		}
		findings = append(findings, Finding{
			InstanceLocation: location,
			KeywordLocation:  err.KeywordLocation,
			Message:          err.Message,
		})
	}
	for _, cause := range err.Causes {
		findings = collectFindings(cause, findings)
	}
	return findings
}

// Package schema validates tool call arguments against a tool's published
// inputSchema, producing JSON-pointer paths for any violations.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kaptinlin/jsonschema"
)

// Validator compiles and evaluates JSON Schema documents.
type Validator struct {
	compiler *jsonschema.Compiler
}

// New builds a schema Validator.
func New() *Validator {
	return &Validator{compiler: jsonschema.NewCompiler()}
}

// Validate checks arguments against inputSchema and returns the sorted list
// of JSON-pointer locations that failed, empty when arguments are valid.
// A compile failure is returned as an error so the caller can decide whether
// to skip validation rather than reject the call outright.
func (v *Validator) Validate(inputSchema map[string]any, arguments map[string]any) ([]string, error) {
	raw, err := json.Marshal(inputSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal input schema: %w", err)
	}

	compiled, err := v.compiler.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("compile input schema: %w", err)
	}

	result := compiled.Validate(arguments)
	if result.IsValid() {
		return nil, nil
	}

	var violations []string
	for _, detail := range result.Details {
		if detail.Valid {
			continue
		}
		violations = append(violations, detail.InstanceLocation)
	}
	sort.Strings(violations)
	return violations, nil
}

package schema

import "testing"

func TestValidateAcceptsMatchingArguments(t *testing.T) {
	t.Parallel()

	v := New()
	inputSchema := map[string]any{
		"type":     "object",
		"required": []any{"city"},
		"properties": map[string]any{
			"city": map[string]any{"type": "string"},
		},
	}

	violations, err := v.Validate(inputSchema, map[string]any{"city": "Seattle"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("violations = %v, want none", violations)
	}
}

func TestValidateReportsViolationLocations(t *testing.T) {
	t.Parallel()

	v := New()
	inputSchema := map[string]any{
		"type":     "object",
		"required": []any{"city"},
		"properties": map[string]any{
			"city": map[string]any{"type": "string"},
		},
	}

	violations, err := v.Validate(inputSchema, map[string]any{})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(violations) == 0 {
		t.Fatal("expected violations for missing required property")
	}
}

func TestValidateRejectsMalformedSchema(t *testing.T) {
	t.Parallel()

	v := New()
	_, err := v.Validate(map[string]any{"type": 42}, map[string]any{})
	if err == nil {
		t.Fatal("expected compile error for malformed schema")
	}
}

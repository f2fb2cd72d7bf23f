// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult reports schema validation of a worker input payload.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateJSON validates a raw JSON document against a JSON schema document.
func ValidateJSON(document []byte, schema string) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, resultErr := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return out, nil
}

// FirstError returns a printable summary of the first validation failure.
func (r *ValidationResult) FirstError() string {
	if r.Valid || len(r.Errors) == 0 {
		return ""
	}
	return fmt.Sprintf("%s: %s", r.Errors[0].Field, r.Errors[0].Message)
}

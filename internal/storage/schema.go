package storage

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema validates the shape of a stored document before it is
// unmarshalled. It deliberately checks only section types, not record
// contents: record-level validation belongs to the owning services, and
// older documents may legitimately be missing newer sections (the
// migration chain fills those in).
const documentSchema = `{
  "type": "object",
  "properties": {
    "schema_version":  { "type": "integer", "minimum": 0 },
    "cardio_sessions": { "type": "array" },
    "weight_entries":  { "type": "array" },
    "health_readings": { "type": "array" },
    "saved_foods":     { "type": "array" },
    "meal_entries":    { "type": "array" },
    "conversations":   { "type": "array" },
    "ai_settings":     { "type": "object" },
    "last_modified":   { "type": "string" }
  }
}`

var documentSchemaLoader = gojsonschema.NewStringLoader(documentSchema)

// validateRawDocument checks a raw JSON document against documentSchema.
func validateRawDocument(raw []byte) error {
	result, err := gojsonschema.Validate(documentSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("document failed schema validation: %s", strings.Join(problems, "; "))
}

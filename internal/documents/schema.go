package documents

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "legal-docs-workers/internal/common/errors"
)

var blockSchemas = map[string]map[string]interface{}{
	BlockAgenda: {
		"type": "array",
		"items": map[string]interface{}{
			"anyOf": []interface{}{
				map[string]interface{}{"type": "string"},
				map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"numero":       map[string]interface{}{"type": []interface{}{"integer", "string"}},
						"titulo":       map[string]interface{}{"type": []interface{}{"string", "null"}},
						"descripcion":  map[string]interface{}{"type": []interface{}{"string", "null"}},
						"resoluciones": map[string]interface{}{"type": []interface{}{"array", "null"}},
					},
				},
			},
		},
	},
	BlockResolutions: {
		"type": "array",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"clave": map[string]interface{}{"type": []interface{}{"string", "null"}},
				"texto": map[string]interface{}{"type": []interface{}{"string", "null"}},
				"punto": map[string]interface{}{"type": []interface{}{"integer", "string", "null"}},
			},
		},
	},
	BlockGuests: {
		"type": "array",
		"items": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"nombre"},
			"properties": map[string]interface{}{
				"nombre": map[string]interface{}{"type": "string"},
				"cargo":  map[string]interface{}{"type": []interface{}{"string", "null"}},
			},
		},
	},
}

// ValidateBlocks checks the shape of the structured blocks the record
// carries. Problems are returned as warnings; generation still tolerates
// them.
func ValidateBlocks(r Record) []*apperrors.StandardError {
	var warnings []*apperrors.StandardError
	for _, name := range []string{BlockAgenda, BlockResolutions, BlockGuests} {
		value, err := r.DecodeBlock(name)
		if err != nil {
			warnings = append(warnings, apperrors.NewMalformedInputError(name, err.Error()))
			continue
		}
		if value == nil {
			continue
		}

		result, err := gojsonschema.Validate(
			gojsonschema.NewGoLoader(blockSchemas[name]),
			gojsonschema.NewGoLoader(value),
		)
		if err != nil {
			warnings = append(warnings, apperrors.NewMalformedInputError(name, fmt.Sprintf("validation error: %v", err)))
			continue
		}
		if !result.Valid() {
			errs := make([]string, len(result.Errors()))
			for i, desc := range result.Errors() {
				errs[i] = desc.String()
			}
			warnings = append(warnings, apperrors.NewMalformedInputError(name, strings.Join(errs, "; ")))
		}
	}
	return warnings
}

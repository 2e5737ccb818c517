package previewplaceholders

import (
	"legal-docs-workers/internal/common/validation"
	"legal-docs-workers/internal/documents"
)

// InputVariables are the process variables fetched with each job.
var InputVariables = []string{"documentType", "record", "recordId", "ownerId"}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"documentType"},
		Properties: map[string]validation.Property{
			"documentType": {
				Type:        "string",
				Description: "Document type whose placeholders are rendered",
				Enum:        documents.Types(),
			},
			"record": {
				Type:        "object",
				Description: "Inline record with fields and blocks",
				Properties: map[string]validation.Property{
					"fields": {Type: "object", Description: "Scalar values by field name"},
					"blocks": {Type: "object", Description: "Structured JSON blocks by name"},
				},
				Required: []string{"fields"},
			},
			"recordId": {
				Type:        "string",
				Description: "Identifier of a stored record, used when record is absent",
				Format:      validation.FormatIdentifier,
				MinLength:   intPtr(1),
				MaxLength:   intPtr(64),
			},
			"ownerId": {
				Type:        "string",
				Description: "Owner of the stored record",
				Format:      validation.FormatIdentifier,
				MinLength:   intPtr(1),
				MaxLength:   intPtr(64),
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"valid":        {Type: "boolean", Description: "No diagnostics were raised"},
			"filename":     {Type: "string", Description: "File name the document would get"},
			"placeholders": {Type: "object", Description: "Rendered value per token"},
			"diagnostics":  {Type: "array", Description: "Degradations and block shape problems"},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}

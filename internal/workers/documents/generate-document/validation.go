package generatedocument

import (
	"legal-docs-workers/internal/common/validation"
	"legal-docs-workers/internal/documents"
)

// InputVariables are the process variables fetched with each job.
var InputVariables = []string{"recordId", "ownerId", "documentType", "notifyEmail"}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"recordId", "ownerId", "documentType"},
		Properties: map[string]validation.Property{
			"recordId": {
				Type:        "string",
				Description: "Identifier of the stored record",
				Format:      validation.FormatIdentifier,
				MinLength:   intPtr(1),
				MaxLength:   intPtr(64),
			},
			"ownerId": {
				Type:        "string",
				Description: "Identifier of the user who owns the record",
				Format:      validation.FormatIdentifier,
				MinLength:   intPtr(1),
				MaxLength:   intPtr(64),
			},
			"documentType": {
				Type:        "string",
				Description: "Document type to generate",
				Enum:        documents.Types(),
			},
			"notifyEmail": {
				Type:        "string",
				Description: "Address mailed once the document is ready",
				Format:      validation.FormatEmail,
				MaxLength:   intPtr(255),
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"documentGenerated": {
				Type:        "boolean",
				Description: "Whether a document was produced",
			},
			"generationId": {
				Type:        "string",
				Description: "Identifier of this generation",
			},
			"filename": {
				Type:        "string",
				Description: "Suggested download file name",
			},
			"contentType": {
				Type:        "string",
				Description: "MIME type of the document",
			},
			"sizeBytes": {
				Type:        "number",
				Description: "Size of the generated package",
			},
			"outputKey": {
				Type:        "string",
				Description: "Cache key holding the document bytes",
			},
			"diagnostics": {
				Type:        "array",
				Description: "Degradations recorded while generating",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}

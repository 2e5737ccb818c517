package previewplaceholders

import (
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/documents"
	"legal-docs-workers/internal/repository"
)

// Input carries either an inline record or the id of a stored one.
type Input struct {
	DocumentType string
	Record       *documents.Record
	RecordID     string
	OwnerID      string
}

type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Output struct {
	Valid        bool              `json:"valid"`
	Filename     string            `json:"filename"`
	Placeholders map[string]string `json:"placeholders"`
	Diagnostics  []Diagnostic      `json:"diagnostics"`
}

// ServiceDependencies wires the service. Records is only needed for jobs
// that reference a stored record.
type ServiceDependencies struct {
	Logger  logger.Logger
	Records repository.RecordRepository
}

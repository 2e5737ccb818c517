package generatedocument

import (
	"context"

	"legal-docs-workers/internal/common/aws"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/documents"
	"legal-docs-workers/internal/repository"
	"legal-docs-workers/internal/templates"
)

type Input struct {
	RecordID     string `json:"recordId"`
	OwnerID      string `json:"ownerId"`
	DocumentType string `json:"documentType"`
	NotifyEmail  string `json:"notifyEmail,omitempty"`
}

type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Output struct {
	DocumentGenerated bool         `json:"documentGenerated"`
	GenerationID      string       `json:"generationId,omitempty"`
	Filename          string       `json:"filename,omitempty"`
	ContentType       string       `json:"contentType,omitempty"`
	SizeBytes         int          `json:"sizeBytes"`
	OutputKey         string       `json:"outputKey,omitempty"`
	Diagnostics       []Diagnostic `json:"diagnostics"`
}

// RecordInvalidator drops a cached record. Record sources implementing it
// are read again once when the cached copy disagrees with the job's type.
type RecordInvalidator interface {
	Invalidate(ctx context.Context, id, ownerID string) error
}

// OutputStore keeps generated bytes for download.
type OutputStore interface {
	Put(ctx context.Context, generationID string, content []byte) (string, error)
}

// DocumentIndexer records generated documents for search.
type DocumentIndexer interface {
	IndexGenerated(ctx context.Context, doc repository.GeneratedDocument) error
}

// Notifier announces generated documents.
type Notifier interface {
	DocumentGenerated(ctx context.Context, evt aws.DocumentEvent) error
}

// ServiceDependencies wires the service. Outputs, Index and Notifier are
// optional; a nil one is skipped.
type ServiceDependencies struct {
	Logger    logger.Logger
	Records   repository.RecordRepository
	Templates templates.Loader
	Generator *documents.Generator
	Outputs   OutputStore
	Index     DocumentIndexer
	Notifier  Notifier
}

package previewplaceholders

import (
	"context"
	"fmt"

	"legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/documents"
	"legal-docs-workers/internal/repository"
)

type Service struct {
	config  *Config
	logger  logger.Logger
	records repository.RecordRepository
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:  config,
		logger:  deps.Logger,
		records: deps.Records,
	}
}

// Execute renders the placeholder map of the record without touching a
// template. Block shape problems come back as diagnostics and mark the
// preview invalid; they never fail the job.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	record, err := s.resolveRecord(ctx, input)
	if err != nil {
		return nil, err
	}

	preview, err := documents.PreviewPlaceholders(*record)
	if err != nil {
		return nil, err
	}

	diagnostics := make([]Diagnostic, 0, len(preview.Diagnostics))
	for _, d := range preview.Diagnostics {
		diagnostics = append(diagnostics, Diagnostic{Code: string(d.Code), Message: d.Message, Details: d.Details})
	}

	s.logger.Debug("Placeholders rendered", map[string]interface{}{
		"documentType": preview.DocumentType,
		"recordId":     record.ID,
		"placeholders": len(preview.Placeholders),
		"diagnostics":  len(diagnostics),
	})

	return &Output{
		Valid:        len(diagnostics) == 0,
		Filename:     preview.Filename,
		Placeholders: preview.Placeholders,
		Diagnostics:  diagnostics,
	}, nil
}

func (s *Service) resolveRecord(ctx context.Context, input *Input) (*documents.Record, error) {
	if input.Record != nil {
		record := *input.Record
		if record.Type == "" {
			record.Type = input.DocumentType
		}
		if record.Type != input.DocumentType {
			return nil, errors.NewValidationFailedError(
				fmt.Sprintf("record type %s does not match documentType %s", record.Type, input.DocumentType),
			)
		}
		return &record, nil
	}

	if s.records == nil {
		return nil, errors.NewValidationFailedError("record is required when no record store is configured")
	}
	record, err := s.records.GetRecordByID(ctx, input.RecordID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if record.Type == "" {
		record.Type = input.DocumentType
	}
	if record.Type != input.DocumentType {
		return nil, errors.NewValidationFailedError(
			fmt.Sprintf("record %s is a %s, not a %s", record.ID, record.Type, input.DocumentType),
		)
	}
	return record, nil
}

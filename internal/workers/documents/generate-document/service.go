package generatedocument

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"legal-docs-workers/internal/common/aws"
	"legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/common/metrics"
	"legal-docs-workers/internal/documents"
	"legal-docs-workers/internal/repository"
	"legal-docs-workers/internal/templates"
)

type Service struct {
	config    *Config
	logger    logger.Logger
	records   repository.RecordRepository
	templates templates.Loader
	generator *documents.Generator
	outputs   OutputStore
	index     DocumentIndexer
	notifier  Notifier
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	generator := deps.Generator
	if generator == nil {
		generator = documents.NewGenerator(deps.Logger, nil, 0)
	}
	return &Service{
		config:    config,
		logger:    deps.Logger,
		records:   deps.Records,
		templates: deps.Templates,
		generator: generator,
		outputs:   deps.Outputs,
		index:     deps.Index,
		notifier:  deps.Notifier,
	}
}

// Execute loads the record and its template, generates the document and
// hands the result to the output cache, the search index and the notifier.
// Only the load and generation steps can fail the job; side-effect failures
// are logged once.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	log := s.logger.WithFields(map[string]interface{}{
		"recordId":     input.RecordID,
		"ownerId":      input.OwnerID,
		"documentType": input.DocumentType,
	})

	record, err := s.loadRecord(ctx, log, input)
	if err != nil {
		return nil, err
	}
	switch {
	case record.Type == "":
		record.Type = input.DocumentType
	case record.Type != input.DocumentType:
		return nil, errors.NewValidationFailedError(
			fmt.Sprintf("record %s is a %s, not a %s", record.ID, record.Type, input.DocumentType),
		)
	}

	template, err := s.templates.Load(ctx, record.Type)
	if err != nil {
		return nil, err
	}

	result, err := s.generator.Generate(ctx, *record, template)
	if err != nil {
		return nil, err
	}
	recordMetrics(result)

	outputKey, sideErr := s.distribute(ctx, input, record, result)
	if sideErr != nil {
		log.Warn("Post-generation side effects failed", map[string]interface{}{"error": sideErr.Error()})
	}

	return &Output{
		DocumentGenerated: true,
		GenerationID:      result.GenerationID,
		Filename:          result.Output.Filename,
		ContentType:       result.Output.ContentType,
		SizeBytes:         len(result.Output.Content),
		OutputKey:         outputKey,
		Diagnostics:       toDiagnostics(result.Diagnostics),
	}, nil
}

// loadRecord reads the record, invalidating and rereading a cached copy
// whose type disagrees with the job.
func (s *Service) loadRecord(ctx context.Context, log logger.Logger, input *Input) (*documents.Record, error) {
	record, err := s.records.GetRecordByID(ctx, input.RecordID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if record.Type == "" || record.Type == input.DocumentType {
		return record, nil
	}
	inv, ok := s.records.(RecordInvalidator)
	if !ok {
		return record, nil
	}
	if err := inv.Invalidate(ctx, input.RecordID, input.OwnerID); err != nil {
		log.Warn("Failed to invalidate cached record", map[string]interface{}{"error": err.Error()})
		return record, nil
	}
	log.Debug("Rereading record after type mismatch", map[string]interface{}{"cachedType": record.Type})
	return s.records.GetRecordByID(ctx, input.RecordID, input.OwnerID)
}

// distribute runs the post-generation side effects concurrently and joins
// their failures in step order. The returned key is empty when the bytes
// could not be cached.
func (s *Service) distribute(ctx context.Context, input *Input, record *documents.Record, result *documents.Result) (string, error) {
	var (
		g         errgroup.Group
		outputKey string
		steps     []func() error
	)

	if s.outputs != nil {
		steps = append(steps, func() error {
			key, err := s.outputs.Put(ctx, result.GenerationID, result.Output.Content)
			if err != nil {
				return fmt.Errorf("cache output: %w", err)
			}
			outputKey = key
			return nil
		})
	}

	if s.index != nil {
		steps = append(steps, func() error {
			doc := repository.GeneratedDocument{
				GenerationID:   result.GenerationID,
				RecordID:       record.ID,
				OwnerID:        record.OwnerID,
				DocumentType:   result.DocumentType,
				Filename:       result.Output.Filename,
				OutputKey:      repository.OutputKey(result.GenerationID),
				SizeBytes:      len(result.Output.Content),
				Diagnostics:    diagnosticCodes(result.Diagnostics),
				AnchorFallback: result.AnchorFallback,
				GeneratedAt:    time.Now().UTC(),
			}
			if err := s.index.IndexGenerated(ctx, doc); err != nil {
				return fmt.Errorf("index document: %w", err)
			}
			return nil
		})
	}

	if s.notifier != nil {
		steps = append(steps, func() error {
			evt := aws.DocumentEvent{
				GenerationID: result.GenerationID,
				RecordID:     record.ID,
				OwnerID:      record.OwnerID,
				DocumentType: result.DocumentType,
				Filename:     result.Output.Filename,
				OutputKey:    repository.OutputKey(result.GenerationID),
				Diagnostics:  len(result.Diagnostics),
				NotifyEmail:  input.NotifyEmail,
			}
			if err := s.notifier.DocumentGenerated(ctx, evt); err != nil {
				return fmt.Errorf("notify: %w", err)
			}
			return nil
		})
	}

	errs := make([]error, len(steps))
	for i, step := range steps {
		g.Go(func() error {
			errs[i] = step()
			return errs[i]
		})
	}
	if err := g.Wait(); err != nil {
		return outputKey, stderrors.Join(errs...)
	}
	return outputKey, nil
}

func recordMetrics(result *documents.Result) {
	docType := result.DocumentType
	metrics.DocumentsGenerated.WithLabelValues(docType).Inc()
	metrics.PlaceholdersReplaced.WithLabelValues(docType).Add(float64(result.ReplacedParagraphs))
	if result.AnchorFallback {
		metrics.SectionFallbacks.WithLabelValues(docType).Inc()
	}
	for _, d := range result.Diagnostics {
		if d.Code == errors.ErrCodeValueRenderingFailed {
			metrics.ValueRenderingFailures.WithLabelValues(docType).Inc()
		}
	}
}

func toDiagnostics(diags []*errors.StandardError) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, Diagnostic{Code: string(d.Code), Message: d.Message, Details: d.Details})
	}
	return out
}

func diagnosticCodes(diags []*errors.StandardError) []string {
	codes := make([]string, 0, len(diags))
	for _, d := range diags {
		codes = append(codes, string(d.Code))
	}
	return codes
}

package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/common/observability"
	"legal-docs-workers/internal/docx"
)

// Result is one generated document and what happened while producing it.
type Result struct {
	GenerationID       string                     `json:"generationId"`
	DocumentType       string                     `json:"documentType"`
	Output             *docx.Output               `json:"output"`
	Diagnostics        []*apperrors.StandardError `json:"diagnostics,omitempty"`
	ReplacedParagraphs int                        `json:"replacedParagraphs"`
	InsertedParagraphs int                        `json:"insertedParagraphs"`
	AgendaItems        int                        `json:"agendaItems"`
	AnchorFallback     bool                       `json:"anchorFallback"`
}

// Generator renders records against their templates. It holds no
// per-document state and is safe for concurrent use.
type Generator struct {
	logger         logger.Logger
	obs            *observability.Observability
	maxAgendaItems int
}

// NewGenerator creates a generator. maxAgendaItems <= 0 uses docx.MaxAgendaItems;
// obs may be nil.
func NewGenerator(log logger.Logger, obs *observability.Observability, maxAgendaItems int) *Generator {
	if maxAgendaItems <= 0 {
		maxAgendaItems = docx.MaxAgendaItems
	}
	return &Generator{logger: log, obs: obs, maxAgendaItems: maxAgendaItems}
}

// Generate fills template with record. Only an unsupported document type, an
// unreadable template or a serialization failure abort; everything else
// degrades and is reported in Result.Diagnostics.
func (g *Generator) Generate(ctx context.Context, record Record, template []byte) (*Result, error) {
	def, err := Lookup(record.Type)
	if err != nil {
		return nil, err
	}

	ctx, span := g.obs.StartSpan(ctx, "documents.generate",
		attribute.String("document_type", def.Type),
		attribute.String("record_id", record.ID),
	)
	defer span.End()

	res := &Result{GenerationID: uuid.NewString(), DocumentType: def.Type}
	log := g.logger.WithFields(map[string]interface{}{
		"generationId": res.GenerationID,
		"documentType": def.Type,
		"recordId":     record.ID,
	})

	_, loadSpan := g.obs.StartSpan(ctx, "documents.load_template")
	doc, err := docx.OpenBytes(template)
	loadSpan.End()
	if err != nil {
		return nil, apperrors.NewTemplateMalformedError(def.Type, err)
	}

	_, renderSpan := g.obs.StartSpan(ctx, "documents.render_fields")
	placeholders, diags := def.BuildPlaceholders(record)
	renderSpan.End()
	res.Diagnostics = append(res.Diagnostics, diags...)

	if def.Anchor != "" {
		_, injectSpan := g.obs.StartSpan(ctx, "documents.inject_agenda")
		err := g.injectAgenda(doc, def, record, placeholders, res)
		injectSpan.End()
		if err != nil {
			return nil, err
		}
	}

	if def.ClauseToken != "" {
		g.injectClauses(doc, def, record, placeholders, res)
	}

	_, subSpan := g.obs.StartSpan(ctx, "documents.substitute")
	res.ReplacedParagraphs = doc.ApplyPlaceholders(placeholders)
	subSpan.End()

	_, outSpan := g.obs.StartSpan(ctx, "documents.serialize")
	out, err := doc.Output(def.Filename(record))
	outSpan.End()
	if err != nil {
		return nil, apperrors.NewSerializationFailedError(err)
	}
	res.Output = out
	g.obs.RecordDocumentSize(ctx, def.Type, len(out.Content))

	for _, d := range res.Diagnostics {
		log.Warn("Generation diagnostic", map[string]interface{}{
			"code":    string(d.Code),
			"message": d.Message,
			"details": d.Details,
		})
	}
	log.Info("Document generated", map[string]interface{}{
		"filename":           out.Filename,
		"sizeBytes":          len(out.Content),
		"replacedParagraphs": res.ReplacedParagraphs,
		"insertedParagraphs": res.InsertedParagraphs,
		"diagnostics":        len(res.Diagnostics),
	})
	return res, nil
}

func (g *Generator) injectAgenda(doc *docx.Document, def *Definition, record Record, placeholders map[string]string, res *Result) error {
	agenda := docx.NormalizeAgenda(record.Block(BlockAgenda), record.Block(BlockResolutions), g.maxAgendaItems)
	if agenda.Malformed {
		res.Diagnostics = append(res.Diagnostics, apperrors.NewMalformedInputError(BlockAgenda, "expected a list of agenda items"))
	}
	if agenda.ResolutionsMalformed {
		res.Diagnostics = append(res.Diagnostics, apperrors.NewMalformedInputError(BlockResolutions, "expected a list of resolutions"))
	}
	if agenda.Truncated > 0 {
		res.Diagnostics = append(res.Diagnostics, apperrors.NewMalformedInputError(BlockAgenda,
			fmt.Sprintf("%d items past the limit of %d were dropped", agenda.Truncated, g.maxAgendaItems)))
	}
	res.AgendaItems = len(agenda.Items)

	n, err := doc.InjectAgenda(def.Anchor, agenda.Items, def.Transition)
	switch {
	case errors.Is(err, docx.ErrAnchorNotFound):
		res.AnchorFallback = true
		res.Diagnostics = append(res.Diagnostics, apperrors.NewAnchorNotFoundError(def.Anchor))
		placeholders[def.Anchor] = AnchorFallback
		return nil
	case err != nil:
		return apperrors.NewTemplateMalformedError(def.Type, err)
	}
	res.InsertedParagraphs += n
	return nil
}

// injectClauses places the clause text as numbered paragraphs. Without the
// token in the template it falls back to plain substitution.
func (g *Generator) injectClauses(doc *docx.Document, def *Definition, record Record, placeholders map[string]string, res *Result) {
	text := record.String(def.ClauseField)
	placeholders[def.ClauseToken] = text
	if text == "" {
		return
	}
	n, err := doc.InjectNumberedClauses(def.ClauseToken, text)
	if err != nil {
		if !errors.Is(err, docx.ErrAnchorNotFound) {
			res.Diagnostics = append(res.Diagnostics, apperrors.NewValueRenderingFailedError(def.ClauseField, err))
		}
		return
	}
	res.InsertedParagraphs += n
}

// Preview is the rendered placeholder map of a record without a template.
type Preview struct {
	DocumentType string                     `json:"documentType"`
	Filename     string                     `json:"filename"`
	Placeholders map[string]string          `json:"placeholders"`
	Diagnostics  []*apperrors.StandardError `json:"diagnostics,omitempty"`
}

// PreviewPlaceholders renders record's placeholders and checks its blocks.
func PreviewPlaceholders(record Record) (*Preview, error) {
	def, err := Lookup(record.Type)
	if err != nil {
		return nil, err
	}
	m, diags := def.BuildPlaceholders(record)
	if def.Anchor != "" {
		diags = append(diags, ValidateBlocks(record)...)
	}
	return &Preview{
		DocumentType: def.Type,
		Filename:     def.Filename(record),
		Placeholders: m,
		Diagnostics:  diags,
	}, nil
}

package documents

import (
	"sort"
	"strings"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/render"
)

// Document types.
const (
	TypeActaConsejo           = "acta_consejo"
	TypeActaAsamblea          = "acta_asamblea"
	TypePagare                = "pagare"
	TypeContratoCredito       = "contrato_credito"
	TypeContratoPrenda        = "contrato_prenda"
	TypeConvenioModificatorio = "convenio_modificatorio"
	TypeEstatutosSociedad     = "estatutos_sociedad"
)

// AgendaAnchor marks where the order of business is injected in minutes templates.
const AgendaAnchor = "{{ORDENES_Y_RESOLUCIONES}}"

// AnchorFallback replaces the anchor token when it could not be injected.
const AnchorFallback = "[ORDENES_Y_RESOLUCIONES placeholder not found in template]"

// Definition describes how one document type is generated.
type Definition struct {
	Type string
	// Template is the registry key of the DOCX template.
	Template string
	Fields   []FieldSpec
	// Extra adds placeholders that depend on more than one field or on blocks.
	Extra func(r Record, m map[string]string) []*apperrors.StandardError
	// Anchor and Transition are set for document types that carry an order of business.
	Anchor     string
	Transition string
	// ClauseToken names a placeholder whose value is injected as numbered clauses.
	ClauseToken string
	ClauseField string
	Filename    func(r Record) string
}

var definitions = map[string]*Definition{
	TypeActaConsejo:           actaConsejo(),
	TypeActaAsamblea:          actaAsamblea(),
	TypePagare:                pagare(),
	TypeContratoCredito:       contratoCredito(),
	TypeContratoPrenda:        contratoPrenda(),
	TypeConvenioModificatorio: convenioModificatorio(),
	TypeEstatutosSociedad:     estatutosSociedad(),
}

// Lookup returns the definition for a document type.
func Lookup(documentType string) (*Definition, error) {
	d, ok := definitions[strings.TrimSpace(documentType)]
	if !ok {
		return nil, apperrors.NewUnsupportedDocumentTypeError(documentType)
	}
	return d, nil
}

// Types lists every supported document type, sorted.
func Types() []string {
	out := make([]string, 0, len(definitions))
	for t := range definitions {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// BuildPlaceholders renders the placeholder map of r. Fields that fail to
// render degrade individually and are returned as diagnostics.
func (d *Definition) BuildPlaceholders(r Record) (map[string]string, []*apperrors.StandardError) {
	m, diags := renderFields(r, d.Fields)
	if d.Extra != nil {
		diags = append(diags, d.Extra(r, m)...)
	}
	return m, diags
}

// dateStamp renders the record date as YYYYMMDD for file names.
func dateStamp(r Record, field, fallback string) string {
	s, err := render.CompactDate(r.Field(field))
	if err != nil {
		return fallback
	}
	return s
}

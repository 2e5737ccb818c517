package registry

// TemplateRegistry lists the DOCX templates available to the generator, one
// entry per document type.
type TemplateRegistry struct {
	Version     string          `json:"version"`
	LastUpdated string          `json:"lastUpdated"`
	Templates   []TemplateEntry `json:"templates"`
}

type TemplateEntry struct {
	// ID is the document type the template renders, e.g. "acta_consejo".
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	// File is relative to the configured templates directory.
	File    string   `json:"file"`
	Version string   `json:"version"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags,omitempty"`
}

// Entry statuses.
const (
	StatusDraft   = "draft"
	StatusActive  = "active"
	StatusRetired = "retired"
)

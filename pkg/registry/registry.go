package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func LoadRegistry(path string) (*TemplateRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg TemplateRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// SaveRegistry writes reg as indented JSON, creating the directory if needed.
func SaveRegistry(reg *TemplateRegistry, path string) error {
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Lookup returns the entry for a document type.
func (r *TemplateRegistry) Lookup(id string) (*TemplateEntry, bool) {
	for i := range r.Templates {
		if r.Templates[i].ID == id {
			return &r.Templates[i], true
		}
	}
	return nil, false
}

// Add appends entry unless its ID is already registered.
func (r *TemplateRegistry) Add(entry TemplateEntry) error {
	if _, exists := r.Lookup(entry.ID); exists {
		return fmt.Errorf("template with ID %s already exists", entry.ID)
	}
	r.Templates = append(r.Templates, entry)
	return nil
}

// Validate checks required fields and duplicate IDs. knownTypes, when not
// empty, restricts IDs to supported document types.
func (r *TemplateRegistry) Validate(knownTypes []string) error {
	if len(r.Templates) == 0 {
		return fmt.Errorf("registry contains no templates")
	}

	known := make(map[string]bool, len(knownTypes))
	for _, t := range knownTypes {
		known[t] = true
	}

	ids := make(map[string]bool)
	for _, t := range r.Templates {
		if t.ID == "" {
			return fmt.Errorf("template missing required field: ID")
		}
		if ids[t.ID] {
			return fmt.Errorf("duplicate template ID: %s", t.ID)
		}
		ids[t.ID] = true

		if len(known) > 0 && !known[t.ID] {
			return fmt.Errorf("template %s does not name a supported document type", t.ID)
		}
		if t.File == "" {
			return fmt.Errorf("template %s missing required field: File", t.ID)
		}
		if !strings.EqualFold(filepath.Ext(t.File), ".docx") {
			return fmt.Errorf("template %s: %s is not a .docx file", t.ID, t.File)
		}
		switch t.Status {
		case "", StatusDraft, StatusActive, StatusRetired:
		default:
			return fmt.Errorf("template %s has unknown status %q", t.ID, t.Status)
		}
	}
	return nil
}

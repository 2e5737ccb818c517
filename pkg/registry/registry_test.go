package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry(id string) TemplateEntry {
	return TemplateEntry{ID: id, DisplayName: id, File: id + ".docx", Version: "1.0.0", Status: StatusActive}
}

func TestSaveAndLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "template-registry.json")

	reg := &TemplateRegistry{Version: "1.0.0"}
	require.NoError(t, reg.Add(validEntry("acta_consejo")))
	require.NoError(t, SaveRegistry(reg, path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.LastUpdated)

	entry, ok := loaded.Lookup("acta_consejo")
	require.True(t, ok)
	assert.Equal(t, "acta_consejo.docx", entry.File)

	_, ok = loaded.Lookup("pagare")
	assert.False(t, ok)
}

func TestAdd_Duplicate(t *testing.T) {
	reg := &TemplateRegistry{}
	require.NoError(t, reg.Add(validEntry("pagare")))
	assert.Error(t, reg.Add(validEntry("pagare")))
}

func TestValidate(t *testing.T) {
	known := []string{"acta_consejo", "pagare"}

	tests := []struct {
		name    string
		entries []TemplateEntry
		wantErr string
	}{
		{"valid", []TemplateEntry{validEntry("acta_consejo"), validEntry("pagare")}, ""},
		{"empty", nil, "no templates"},
		{"duplicate", []TemplateEntry{validEntry("pagare"), validEntry("pagare")}, "duplicate template ID"},
		{"unknown type", []TemplateEntry{validEntry("testamento")}, "supported document type"},
		{"missing file", []TemplateEntry{{ID: "pagare"}}, "missing required field: File"},
		{"not docx", []TemplateEntry{{ID: "pagare", File: "pagare.pdf"}}, "not a .docx"},
		{"bad status", []TemplateEntry{{ID: "pagare", File: "pagare.docx", Status: "live"}}, "unknown status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&TemplateRegistry{Templates: tt.entries}).Validate(known)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

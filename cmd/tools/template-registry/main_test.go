package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-docs-workers/internal/docx/docxtest"
	"legal-docs-workers/pkg/registry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddUpdateList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "template-registry.json")

	out, err := run(t, "add", "--path", path,
		"--id", "acta_consejo", "--display-name", "Acta de Consejo", "--file", "acta_consejo.docx", "--tags", "actas,consejo")
	require.NoError(t, err)
	assert.Contains(t, out, "Added template: acta_consejo")

	_, err = run(t, "add", "--path", path, "--id", "acta_consejo", "--display-name", "Otra", "--file", "otra.docx")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "update", "--path", path, "--id", "acta_consejo", "--field", "status", "--value", "active")
	require.NoError(t, err)

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, reg.Templates, 1)
	assert.Equal(t, registry.StatusActive, reg.Templates[0].Status)
	assert.Equal(t, []string{"actas", "consejo"}, reg.Templates[0].Tags)
	assert.NotEmpty(t, reg.LastUpdated)

	out, err = run(t, "list", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "acta_consejo")
	assert.Contains(t, out, "acta_consejo.docx")
}

func TestAdd_UnknownDocumentType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	_, err := run(t, "add", "--path", path, "--id", "testamento", "--display-name", "Testamento", "--file", "t.docx")
	assert.ErrorContains(t, err, "not a supported document type")
}

func TestUpdate_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	_, err := run(t, "add", "--path", path, "--id", "pagare", "--display-name", "Pagaré", "--file", "pagare.docx")
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown id", args: []string{"--id", "acta_consejo", "--field", "status", "--value", "active"}, wantErr: "not found"},
		{name: "unknown field", args: []string{"--id", "pagare", "--field", "owner", "--value", "x"}, wantErr: "unknown field"},
		{name: "invalid status", args: []string{"--id", "pagare", "--field", "status", "--value", "borrado"}, wantErr: "unknown status"},
		{name: "not a docx", args: []string{"--id", "pagare", "--field", "file", "--value", "pagare.pdf"}, wantErr: "not a .docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"update", "--path", path}, tt.args...)...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_TemplateFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.json")
	require.NoError(t, registry.SaveRegistry(&registry.TemplateRegistry{
		Version: "1.0.0",
		Templates: []registry.TemplateEntry{
			{ID: "acta_consejo", DisplayName: "Acta de Consejo", File: "acta_consejo.docx", Status: registry.StatusActive},
			{ID: "pagare", DisplayName: "Pagaré", File: "pagare.docx", Status: registry.StatusRetired},
		},
	}, path))

	out, err := run(t, "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 templates")

	_, err = run(t, "validate", "--path", path, "--templates-dir", dir)
	assert.ErrorContains(t, err, "acta_consejo")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "acta_consejo.docx"), docxtest.Build(t, "", "{{SOCIEDAD}}"), 0o644))
	_, err = run(t, "validate", "--path", path, "--templates-dir", dir)
	assert.NoError(t, err)
}

package templates

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/pkg/registry"
)

func setupStore(t *testing.T, ttl time.Duration) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	regPath := filepath.Join(dir, "template-registry.json")

	reg := &registry.TemplateRegistry{Version: "1.0.0", Templates: []registry.TemplateEntry{
		{ID: "acta_consejo", File: "acta_consejo.docx", Status: registry.StatusActive},
		{ID: "pagare", File: "pagare.docx", Status: registry.StatusRetired},
		{ID: "contrato_prenda", File: "falta.docx", Status: registry.StatusActive},
	}}
	require.NoError(t, registry.SaveRegistry(reg, regPath))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acta_consejo.docx"), []byte("docx bytes"), 0o644))

	return NewStore(dir, regPath, ttl, logger.NewTestLogger(t)), dir
}

func TestStore_Load(t *testing.T) {
	store, _ := setupStore(t, time.Minute)

	tests := []struct {
		name         string
		documentType string
		want         string
		wantCode     apperrors.ErrorCode
	}{
		{name: "registered template", documentType: "acta_consejo", want: "docx bytes"},
		{name: "retired template", documentType: "pagare", wantCode: apperrors.ErrCodeTemplateNotFound},
		{name: "missing file", documentType: "contrato_prenda", wantCode: apperrors.ErrCodeTemplateNotFound},
		{name: "unregistered type", documentType: "estatutos_sociedad", wantCode: apperrors.ErrCodeTemplateNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := store.Load(context.Background(), tt.documentType)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(data))
				return
			}
			var stdErr *apperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, tt.wantCode, stdErr.Code)
		})
	}
}

func TestStore_ReadsTemplateFresh(t *testing.T) {
	store, dir := setupStore(t, time.Minute)

	_, err := store.Load(context.Background(), "acta_consejo")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "acta_consejo.docx"), []byte("edited"), 0o644))
	data, err := store.Load(context.Background(), "acta_consejo")
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))
}

func TestStore_CachesRegistry(t *testing.T) {
	store, dir := setupStore(t, time.Hour)

	_, err := store.Path("acta_consejo")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "template-registry.json")))
	path, err := store.Path("acta_consejo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "acta_consejo.docx"), path)
}

func TestStore_CancelledContext(t *testing.T) {
	store, _ := setupStore(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx, "acta_consejo")
	assert.ErrorIs(t, err, context.Canceled)
}

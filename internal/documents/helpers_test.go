package documents

import (
	"testing"

	"legal-docs-workers/internal/docx/docxtest"
)

// ==========================
// Test Helpers
// ==========================

func buildTemplate(t *testing.T, header string, paragraphs ...string) []byte {
	return docxtest.Build(t, header, paragraphs...)
}

func paragraphs(t *testing.T, content []byte) []string {
	return docxtest.Texts(t, content)
}

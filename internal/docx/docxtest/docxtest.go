// Package docxtest builds minimal DOCX packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"legal-docs-workers/internal/docx"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n"
	wordNS    = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	relNS     = `xmlns="http://schemas.openxmlformats.org/package/2006/relationships"`
	relType   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
)

// Para is a single-run paragraph holding text.
func Para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

// Build zips a DOCX whose body holds one paragraph per entry and whose
// default header holds header, when set.
func Build(tb testing.TB, header string, paragraphs ...string) []byte {
	tb.Helper()

	var body bytes.Buffer
	for _, p := range paragraphs {
		body.WriteString(Para(p))
	}
	docRels := xmlHeader + `<Relationships ` + relNS + `>`
	if header != "" {
		body.WriteString(`<w:sectPr><w:headerReference w:type="default" r:id="rIdHeader"/></w:sectPr>`)
		docRels += `<Relationship Id="rIdHeader" Type="` + relType + `header" Target="header1.xml"/>`
	}
	docRels += `</Relationships>`

	files := []struct{ name, content string }{
		{"[Content_Types].xml", xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{"_rels/.rels", xmlHeader + `<Relationships ` + relNS + `><Relationship Id="rId1" Type="` + relType + `officeDocument" Target="word/document.xml"/></Relationships>`},
		{"word/_rels/document.xml.rels", docRels},
		{"word/document.xml", xmlHeader + `<w:document ` + wordNS + `><w:body>` + body.String() + `</w:body></w:document>`},
	}
	if header != "" {
		files = append(files, struct{ name, content string }{
			"word/header1.xml", xmlHeader + `<w:hdr ` + wordNS + `>` + Para(header) + `</w:hdr>`,
		})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(tb, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(tb, err)
	}
	require.NoError(tb, zw.Close())
	return buf.Bytes()
}

// Texts returns the text of every paragraph in walker order.
func Texts(tb testing.TB, content []byte) []string {
	tb.Helper()
	doc, err := docx.OpenBytes(content)
	require.NoError(tb, err)
	var out []string
	for p := range doc.Paragraphs() {
		out = append(out, p.Text())
	}
	return out
}

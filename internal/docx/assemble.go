package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// ContentType is the MIME type of a WordprocessingML document.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Output is a generated document ready to hand to a transport.
type Output struct {
	Content     []byte `json:"-"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// Bytes serializes the document to a new package. Modified parts are
// re-encoded; every other entry is copied without recompression.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range d.files {
		part, ok := d.parts[f.Name]
		if !ok || !part.dirty {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("docx: copy %s: %w", f.Name, err)
			}
			continue
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return nil, fmt.Errorf("docx: create %s: %w", f.Name, err)
		}
		if err := encodeXML(w, part.root); err != nil {
			return nil, fmt.Errorf("docx: encode %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: finalize package: %w", err)
	}
	return buf.Bytes(), nil
}

// Output serializes the document under the given file name.
func (d *Document) Output(filename string) (*Output, error) {
	content, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	return &Output{Content: content, Filename: filename, ContentType: ContentType}, nil
}

// Package docx edits WordprocessingML packages in memory: it walks every
// text-bearing paragraph, rewrites placeholder text and splices generated
// paragraphs into a template before writing a fresh package.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var (
	ErrInvalidPackage  = errors.New("docx: invalid package")
	ErrMissingMainPart = errors.New("docx: main document part not found")
)

const (
	nsWordMain       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWordMainStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	nsRels           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsRelsStrict     = "http://purl.oclc.org/ooxml/officeDocument/relationships"

	relTypeOfficeDocument = "/officeDocument"
	relTypeHeader         = "/header"
	relTypeFooter         = "/footer"
	relTypeStyles         = "/styles"

	defaultMainPart = "word/document.xml"
	bodyTextStyle   = "Body Text"
)

// Part is a parsed XML entry of the package.
type Part struct {
	Name  string
	root  *Node
	w     string
	r     string
	dirty bool
}

func (p *Part) markDirty() { p.dirty = true }

type headerFooter struct {
	part   *Part
	region Region
}

// Document is an opened template. It is not safe for concurrent use; every
// generation request opens its own copy.
type Document struct {
	files     []*zip.File
	parts     map[string]*Part
	main      *Part
	sections  []headerFooter
	bodyStyle string
}

// OpenBytes opens a package held in memory.
func OpenBytes(data []byte) (*Document, error) {
	return Open(bytes.NewReader(data), int64(len(data)))
}

// Open reads the package, the main document part and every header and
// footer referenced from its section properties.
func Open(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}

	d := &Document{files: zr.File, parts: make(map[string]*Part)}

	mainName := d.mainPartName()
	if d.file(mainName) == nil {
		return nil, ErrMissingMainPart
	}
	d.main, err = d.loadPart(mainName)
	if err != nil {
		return nil, err
	}
	if d.body() == nil {
		return nil, fmt.Errorf("%w: %s has no body", ErrInvalidPackage, mainName)
	}

	rels := d.relationships(mainName)
	if err := d.loadSections(mainName, rels); err != nil {
		return nil, err
	}
	d.bodyStyle = d.resolveStyleID(mainName, rels, bodyTextStyle)
	return d, nil
}

func (d *Document) file(name string) *zip.File {
	for _, f := range d.files {
		if f.Name == name {
			return f
		}
	}
	for _, f := range d.files {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

func (d *Document) read(name string) ([]byte, error) {
	f := d.file(name)
	if f == nil {
		return nil, fmt.Errorf("docx: %s: entry not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (d *Document) loadPart(name string) (*Part, error) {
	if p, ok := d.parts[name]; ok {
		return p, nil
	}
	f := d.file(name)
	if f == nil {
		return nil, fmt.Errorf("%w: missing part %s", ErrInvalidPackage, name)
	}
	data, err := d.read(f.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	root, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPackage, f.Name, err)
	}

	p := &Part{Name: f.Name, root: root, w: "w", r: "r"}
	detectPrefixes(p)
	d.parts[f.Name] = p
	return p, nil
}

func detectPrefixes(p *Part) {
	el := documentElement(p.root)
	for _, a := range el.Attrs {
		prefix := ""
		switch {
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
		default:
			continue
		}
		switch a.Value {
		case nsWordMain, nsWordMainStrict:
			p.w = prefix
		case nsRels, nsRelsStrict:
			p.r = prefix
		}
	}
}

type relationship struct {
	id, typ, target string
	external        bool
}

// relationships reads the .rels entry that belongs to part name.
func (d *Document) relationships(name string) []relationship {
	relsName := path.Join(path.Dir(name), "_rels", path.Base(name)+".rels")
	if name == "" {
		relsName = "_rels/.rels"
	}
	data, err := d.read(relsName)
	if err != nil {
		return nil
	}
	root, err := parseXML(data)
	if err != nil {
		return nil
	}

	var out []relationship
	for _, c := range documentElement(root).Children {
		if c.Kind != ElementNode || c.Local != "Relationship" {
			continue
		}
		out = append(out, relationship{
			id:       c.Attr("", "Id"),
			typ:      c.Attr("", "Type"),
			target:   c.Attr("", "Target"),
			external: c.Attr("", "TargetMode") == "External",
		})
	}
	return out
}

func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(source), target))
}

func (d *Document) mainPartName() string {
	for _, rel := range d.relationships("") {
		if strings.HasSuffix(rel.typ, relTypeOfficeDocument) {
			return resolveTarget("", rel.target)
		}
	}
	return defaultMainPart
}

func (d *Document) body() *Node {
	return documentElement(d.main.root).Child(d.main.w, "body")
}

// sectionProperties returns every w:sectPr in document order: those closing a
// section inside a paragraph, then the body-level one.
func (d *Document) sectionProperties() []*Node {
	w := d.main.w
	body := d.body()
	var out []*Node
	for _, c := range body.Children {
		if c.Is(w, "p") {
			if sp := c.Child(w, "pPr").Child(w, "sectPr"); sp != nil {
				out = append(out, sp)
			}
		}
	}
	if sp := body.Child(w, "sectPr"); sp != nil {
		out = append(out, sp)
	}
	return out
}

var referenceOrder = []string{"default", "first", "even"}

func (d *Document) loadSections(mainName string, rels []relationship) error {
	byID := make(map[string]relationship, len(rels))
	for _, rel := range rels {
		byID[rel.id] = rel
	}

	w, r := d.main.w, d.main.r
	seen := make(map[string]bool)

	collect := func(sectPr *Node, local string, region Region, relSuffix string) error {
		for _, typ := range referenceOrder {
			for _, ref := range sectPr.Children {
				if !ref.Is(w, local) {
					continue
				}
				refType := ref.Attr(w, "type")
				if refType == "" {
					refType = "default"
				}
				if refType != typ {
					continue
				}
				rel, ok := byID[ref.Attr(r, "id")]
				if !ok || rel.external || !strings.HasSuffix(rel.typ, relSuffix) {
					continue
				}
				name := resolveTarget(mainName, rel.target)
				if seen[name] {
					continue
				}
				seen[name] = true
				part, err := d.loadPart(name)
				if err != nil {
					return err
				}
				d.sections = append(d.sections, headerFooter{part: part, region: region})
			}
		}
		return nil
	}

	for _, sectPr := range d.sectionProperties() {
		if err := collect(sectPr, "headerReference", RegionHeader, relTypeHeader); err != nil {
			return err
		}
		if err := collect(sectPr, "footerReference", RegionFooter, relTypeFooter); err != nil {
			return err
		}
	}
	return nil
}

// resolveStyleID maps a paragraph style display name to its styleId, or "" when
// the template does not define it.
func (d *Document) resolveStyleID(mainName string, rels []relationship, display string) string {
	for _, rel := range rels {
		if !strings.HasSuffix(rel.typ, relTypeStyles) || rel.external {
			continue
		}
		styles, err := d.loadPart(resolveTarget(mainName, rel.target))
		if err != nil {
			return ""
		}
		w := styles.w
		for _, s := range documentElement(styles.root).Children {
			if !s.Is(w, "style") || s.Attr(w, "type") != "paragraph" {
				continue
			}
			if name := s.Child(w, "name"); name != nil && strings.EqualFold(name.Attr(w, "val"), display) {
				return s.Attr(w, "styleId")
			}
		}
	}
	return ""
}

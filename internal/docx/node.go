package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// NodeKind distinguishes the token types kept in a part tree.
type NodeKind int

const (
	DocumentNode NodeKind = iota
	ElementNode
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Node is one token of a parsed XML part. Element names and attribute names
// keep their literal prefixes so a part is written back exactly as Word
// declared it.
type Node struct {
	Kind     NodeKind
	Prefix   string
	Local    string
	Attrs    []xml.Attr
	Data     string
	Parent   *Node
	Children []*Node
}

func newElement(prefix, local string, attrs ...xml.Attr) *Node {
	return &Node{Kind: ElementNode, Prefix: prefix, Local: local, Attrs: attrs}
}

func attr(prefix, local, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Space: prefix, Local: local}, Value: value}
}

// Is reports whether n is an element with the given prefix and local name.
func (n *Node) Is(prefix, local string) bool {
	return n != nil && n.Kind == ElementNode && n.Prefix == prefix && n.Local == local
}

// Attr returns the value of the prefixed attribute, or "".
func (n *Node) Attr(prefix, local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attrs {
		if a.Name.Space == prefix && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		c.Parent = n
	}
	n.Children = append(n.Children, children...)
}

// Child returns the first direct child element with the given name.
func (n *Node) Child(prefix, local string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Is(prefix, local) {
			return c
		}
	}
	return nil
}

// Index returns the position of n among its parent's children, or -1.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// InsertAfter places nodes directly after n, in order, under n's parent.
func (n *Node) InsertAfter(nodes ...*Node) error {
	idx := n.Index()
	if idx < 0 {
		return errors.New("docx: node has no parent")
	}
	parent := n.Parent
	for _, c := range nodes {
		c.Parent = parent
	}
	tail := append([]*Node{}, parent.Children[idx+1:]...)
	parent.Children = append(append(parent.Children[:idx+1], nodes...), tail...)
	return nil
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	idx := n.Index()
	if idx < 0 {
		return
	}
	p := n.Parent
	p.Children = append(p.Children[:idx], p.Children[idx+1:]...)
	n.Parent = nil
}

// Clone deep-copies n without a parent.
func (n *Node) Clone() *Node {
	c := &Node{Kind: n.Kind, Prefix: n.Prefix, Local: n.Local, Data: n.Data}
	if len(n.Attrs) > 0 {
		c.Attrs = append([]xml.Attr(nil), n.Attrs...)
	}
	for _, child := range n.Children {
		c.Append(child.Clone())
	}
	return c
}

// parseXML builds a tree from raw part bytes. Namespace prefixes are not
// resolved, only recorded.
func parseXML(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &Node{Kind: DocumentNode}
	cur := root

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Node{
				Kind:   ElementNode,
				Prefix: t.Name.Space,
				Local:  t.Name.Local,
				Attrs:  append([]xml.Attr(nil), t.Attr...),
			}
			cur.Append(el)
			cur = el
		case xml.EndElement:
			if cur.Kind != ElementNode || cur.Prefix != t.Name.Space || cur.Local != t.Name.Local {
				return nil, fmt.Errorf("docx: unexpected end element %s", qualified(t.Name.Space, t.Name.Local))
			}
			cur = cur.Parent
		case xml.CharData:
			if cur == root {
				continue
			}
			cur.Append(&Node{Kind: TextNode, Data: string(t)})
		case xml.Comment:
			cur.Append(&Node{Kind: CommentNode, Data: string(t)})
		case xml.ProcInst:
			cur.Append(&Node{Kind: ProcInstNode, Local: t.Target, Data: string(t.Inst)})
		case xml.Directive:
			cur.Append(&Node{Kind: DirectiveNode, Data: string(t)})
		}
	}

	if cur != root {
		return nil, errors.New("docx: unterminated element")
	}
	if documentElement(root) == nil {
		return nil, errors.New("docx: part has no root element")
	}
	return root, nil
}

func documentElement(doc *Node) *Node {
	for _, c := range doc.Children {
		if c.Kind == ElementNode {
			return c
		}
	}
	return nil
}

func qualified(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// encodeXML writes the tree back using the recorded prefixes.
func encodeXML(w io.Writer, doc *Node) error {
	bw := &errWriter{w: w}
	for _, c := range doc.Children {
		writeNode(bw, c)
	}
	return bw.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) str(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func writeNode(w *errWriter, n *Node) {
	switch n.Kind {
	case ElementNode:
		name := qualified(n.Prefix, n.Local)
		w.str("<" + name)
		for _, a := range n.Attrs {
			w.str(" " + qualified(a.Name.Space, a.Name.Local) + `="` + escapeAttr(a.Value) + `"`)
		}
		if len(n.Children) == 0 {
			w.str("/>")
			return
		}
		w.str(">")
		for _, c := range n.Children {
			writeNode(w, c)
		}
		w.str("</" + name + ">")
	case TextNode:
		w.str(escapeText(n.Data))
	case CommentNode:
		w.str("<!--" + n.Data + "-->")
	case ProcInstNode:
		if n.Data == "" {
			w.str("<?" + n.Local + "?>")
		} else {
			w.str("<?" + n.Local + " " + n.Data + "?>")
		}
		if n.Parent != nil && n.Parent.Kind == DocumentNode {
			w.str("\r\n")
		}
	case DirectiveNode:
		w.str("<!" + n.Data + ">")
	}
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;",
	)
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

package docx

import (
	"iter"
	"strings"
)

// Region names the container a paragraph was found in.
type Region string

const (
	RegionBody   Region = "body"
	RegionTable  Region = "table"
	RegionHeader Region = "header"
	RegionFooter Region = "footer"
)

// Paragraph is a handle on one w:p element. Reading never changes the
// document; SetText is the only mutation.
type Paragraph struct {
	node   *Node
	part   *Part
	region Region
}

func (p *Paragraph) Region() Region { return p.region }

// Paragraphs yields body paragraphs, then table cell paragraphs of the body,
// then header and footer paragraphs section by section. Each header or
// footer part is visited once even when several sections share it.
func (d *Document) Paragraphs() iter.Seq[*Paragraph] {
	return func(yield func(*Paragraph) bool) {
		if !walkContainer(d.body(), d.main, RegionBody, yield) {
			return
		}
		for _, hf := range d.sections {
			if !walkContainer(documentElement(hf.part.root), hf.part, hf.region, yield) {
				return
			}
		}
	}
}

// bodyParagraphs limits the walk to the main document body and its tables.
func (d *Document) bodyParagraphs() iter.Seq[*Paragraph] {
	return func(yield func(*Paragraph) bool) {
		walkContainer(d.body(), d.main, RegionBody, yield)
	}
}

func walkContainer(container *Node, part *Part, region Region, yield func(*Paragraph) bool) bool {
	if container == nil {
		return true
	}
	w := part.w
	children := append([]*Node(nil), container.Children...)

	for _, c := range children {
		if c.Is(w, "p") {
			if !yield(&Paragraph{node: c, part: part, region: region}) {
				return false
			}
		}
	}

	cellRegion := region
	if region == RegionBody {
		cellRegion = RegionTable
	}
	for _, tbl := range children {
		if !tbl.Is(w, "tbl") {
			continue
		}
		for _, tr := range tbl.Children {
			if !tr.Is(w, "tr") {
				continue
			}
			for _, tc := range tr.Children {
				if !tc.Is(w, "tc") {
					continue
				}
				for _, p := range append([]*Node(nil), tc.Children...) {
					if p.Is(w, "p") {
						if !yield(&Paragraph{node: p, part: part, region: cellRegion}) {
							return false
						}
					}
				}
			}
		}
	}
	return true
}

// Runs inside these wrappers count as paragraph text.
var runContainers = map[string]bool{
	"hyperlink":  true,
	"smartTag":   true,
	"ins":        true,
	"fldSimple":  true,
	"customXml":  true,
	"sdt":        true,
	"sdtContent": true,
}

func (p *Paragraph) runs() []*Node {
	var out []*Node
	var collect func(n *Node)
	collect = func(n *Node) {
		for _, c := range n.Children {
			switch {
			case c.Is(p.part.w, "r"):
				out = append(out, c)
			case c.Kind == ElementNode && c.Prefix == p.part.w && runContainers[c.Local]:
				collect(c)
			}
		}
	}
	collect(p.node)
	return out
}

// Text joins the text of every run. Tabs read as "\t" and breaks as "\n".
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.runs() {
		writeRunText(&sb, r, p.part.w)
	}
	return sb.String()
}

func writeRunText(sb *strings.Builder, run *Node, w string) {
	for _, c := range run.Children {
		if c.Kind != ElementNode || c.Prefix != w {
			continue
		}
		switch c.Local {
		case "t":
			for _, t := range c.Children {
				if t.Kind == TextNode {
					sb.WriteString(t.Data)
				}
			}
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		case "noBreakHyphen":
			sb.WriteByte('-')
		}
	}
}

// SetText replaces every run with a single run carrying text. The new run
// keeps the character formatting of the first original run; paragraph
// properties are left alone.
func (p *Paragraph) SetText(text string) {
	w := p.part.w

	var rPr *Node
	if runs := p.runs(); len(runs) > 0 {
		if first := runs[0].Child(w, "rPr"); first != nil {
			rPr = first.Clone()
		}
	}

	at := p.clearContent()
	if text != "" {
		run := newRun(w, text, rPr)
		run.Parent = p.node
		kids := p.node.Children
		p.node.Children = append(kids[:at], append([]*Node{run}, kids[at:]...)...)
	}
	p.part.markDirty()
}

// clearContent removes runs and run wrappers and returns the index where the
// first of them stood.
func (p *Paragraph) clearContent() int {
	w := p.part.w
	at := -1
	kept := p.node.Children[:0]
	for _, c := range p.node.Children {
		isContent := c.Is(w, "r") || (c.Kind == ElementNode && c.Prefix == w && runContainers[c.Local])
		if isContent {
			if at < 0 {
				at = len(kept)
			}
			c.Parent = nil
			continue
		}
		kept = append(kept, c)
	}
	p.node.Children = kept

	if at < 0 {
		at = 0
		if len(kept) > 0 && kept[0].Is(w, "pPr") {
			at = 1
		}
	}
	return at
}

// clear empties the paragraph down to its properties.
func (p *Paragraph) clear() {
	w := p.part.w
	var kept []*Node
	for _, c := range p.node.Children {
		if c.Is(w, "pPr") {
			kept = append(kept, c)
		} else {
			c.Parent = nil
		}
	}
	p.node.Children = kept
	p.part.markDirty()
}

func newRun(w, text string, rPr *Node) *Node {
	run := newElement(w, "r")
	if rPr != nil {
		run.Append(rPr)
	}

	var seg strings.Builder
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		t := newElement(w, "t", attr("xml", "space", "preserve"))
		t.Append(&Node{Kind: TextNode, Data: seg.String()})
		run.Append(t)
		seg.Reset()
	}
	for _, r := range text {
		switch r {
		case '\t':
			flush()
			run.Append(newElement(w, "tab"))
		case '\n':
			flush()
			run.Append(newElement(w, "br"))
		case '\r':
		default:
			seg.WriteRune(r)
		}
	}
	flush()
	return run
}

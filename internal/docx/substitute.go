package docx

import (
	"regexp"
	"slices"
	"strings"
)

// Substitutor replaces literal placeholder tokens in paragraph text.
type Substitutor struct {
	tokens   []string
	replacer *strings.Replacer
}

// NewSubstitutor prepares a replacement pass for m. Empty tokens are ignored.
// Replacement is a single left-to-right pass, so values are never rescanned
// for tokens.
func NewSubstitutor(m map[string]string) *Substitutor {
	tokens := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			tokens = append(tokens, k)
		}
	}
	slices.Sort(tokens)

	pairs := make([]string, 0, 2*len(tokens))
	for _, k := range tokens {
		pairs = append(pairs, k, m[k])
	}
	return &Substitutor{tokens: tokens, replacer: strings.NewReplacer(pairs...)}
}

// Apply rewrites p as a single run when its text contains a token and the
// replacement changes it. It reports whether p was rewritten.
func (s *Substitutor) Apply(p *Paragraph) bool {
	text := p.Text()
	if text == "" || !s.matches(text) {
		return false
	}
	replaced := s.replacer.Replace(text)
	if replaced == text {
		return false
	}
	p.SetText(replaced)
	return true
}

func (s *Substitutor) matches(text string) bool {
	for _, k := range s.tokens {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// ApplyPlaceholders runs the substitution over every paragraph of the
// document, then sweeps the w:t elements the walk does not reach so tokens in
// text boxes, content controls and nested tables are replaced too. It returns
// how many paragraphs and text elements were rewritten.
func (d *Document) ApplyPlaceholders(m map[string]string) int {
	s := NewSubstitutor(m)
	walked := make(map[*Node]bool)
	changed := 0
	for p := range d.Paragraphs() {
		walked[p.node] = true
		if s.Apply(p) {
			changed++
		}
	}
	for _, part := range d.textParts() {
		changed += s.sweep(part, walked)
	}
	return changed
}

// sweep replaces tokens held whole inside a single w:t whose paragraph was
// not walked. Tokens split across runs there are left as they are.
func (s *Substitutor) sweep(part *Part, walked map[*Node]bool) int {
	changed := 0
	eachText(part, func(t, para *Node) {
		if walked[para] {
			return
		}
		text := textOf(t)
		if text == "" || !s.matches(text) {
			return
		}
		replaced := s.replacer.Replace(text)
		if replaced == text {
			return
		}
		setTextOf(t, replaced)
		part.markDirty()
		changed++
	})
	return changed
}

// textParts lists the main part, then each header and footer part once.
func (d *Document) textParts() []*Part {
	parts := []*Part{d.main}
	for _, hf := range d.sections {
		parts = append(parts, hf.part)
	}
	return parts
}

// eachText calls fn for every w:t in part with its nearest enclosing w:p.
func eachText(part *Part, fn func(t, para *Node)) {
	var visit func(n, para *Node)
	visit = func(n, para *Node) {
		for _, c := range n.Children {
			switch {
			case c.Kind != ElementNode:
			case c.Is(part.w, "t"):
				fn(c, para)
			case c.Is(part.w, "p"):
				visit(c, c)
			default:
				visit(c, para)
			}
		}
	}
	visit(part.root, nil)
}

func textOf(t *Node) string {
	var sb strings.Builder
	for _, c := range t.Children {
		if c.Kind == TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func setTextOf(t *Node, text string) {
	for _, c := range t.Children {
		c.Parent = nil
	}
	t.Children = nil
	t.Append(&Node{Kind: TextNode, Data: text})
	if t.Attr("xml", "space") == "" {
		t.Attrs = append(t.Attrs, attr("xml", "space", "preserve"))
	}
}

var tokenPattern = regexp.MustCompile(`\{\{[^{}]+\}\}`)

// Tokens lists the distinct {{...}} tokens found in walk order, followed by
// those only present in text elements outside the walked regions.
func (d *Document) Tokens() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(text string) {
		for _, tok := range tokenPattern.FindAllString(text, -1) {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		}
	}
	for p := range d.Paragraphs() {
		add(p.Text())
	}
	for _, part := range d.textParts() {
		eachText(part, func(t, _ *Node) { add(textOf(t)) })
	}
	return out
}

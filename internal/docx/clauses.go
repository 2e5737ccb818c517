package docx

import (
	"fmt"
	"strings"
)

const clauseFont = "Times New Roman"

// InjectNumberedClauses removes token from the first paragraph holding it
// and places one clause paragraph per non-empty line of text right after it.
// Lines are expected to start with their own numbering ("1. ..."); the first
// period is followed by a tab so the clause text lines up on the tab stop.
func (d *Document) InjectNumberedClauses(token, text string) (int, error) {
	var target *Paragraph
	for p := range d.Paragraphs() {
		if strings.Contains(p.Text(), token) {
			target = p
			break
		}
	}
	if target == nil {
		return 0, fmt.Errorf("%w: %s", ErrAnchorNotFound, token)
	}

	target.SetText(strings.ReplaceAll(target.Text(), token, ""))

	w := target.part.w
	var paras []*Node
	for _, line := range splitLines(text) {
		paras = append(paras, buildParagraph(w, paraFormat{
			align:       alignJustify,
			left:        cm(2),
			hanging:     cm(1),
			spaceAfter:  pt(12),
			setBefore:   true,
			spaceBefore: 0,
			line:        276,
			tabPos:      cm(0.75),
		}, runFormat{text: tabAfterNumber(line), font: clauseFont, size: 24}))
	}
	if len(paras) == 0 {
		return 0, nil
	}
	if err := target.node.InsertAfter(paras...); err != nil {
		return 0, err
	}
	target.part.markDirty()
	return len(paras), nil
}

func tabAfterNumber(line string) string {
	switch {
	case strings.Contains(line, "\t"):
		return line
	case strings.Contains(line, ". "):
		return strings.Replace(line, ". ", ".\t", 1)
	case strings.Contains(line, "."):
		return strings.Replace(line, ".", ".\t", 1)
	default:
		return line
	}
}

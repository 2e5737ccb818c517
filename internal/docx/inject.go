package docx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAnchorNotFound means the template has no paragraph holding the section
// anchor. It is distinct from an empty agenda, which is valid.
var ErrAnchorNotFound = errors.New("docx: section anchor not found")

// ResolutionHeading is placed above the resolutions of every agenda item.
const ResolutionHeading = "R E S O L U C I Ó N"

var (
	hangingIndent     = cm(1.3)
	spaceSummaryItem  = pt(18)
	spaceSummaryLast  = pt(28)
	spaceTransition   = pt(38)
	spaceItemTitle    = pt(28)
	spaceDescription  = pt(25)
	spaceHeading      = pt(25)
	spaceResolution   = pt(18)
	spaceSectionClose = pt(38)
	spaceContinuation = pt(12)
)

// FindAnchor returns the first paragraph containing anchor, looking at body
// paragraphs and then at body table cells. Headers and footers are not searched.
func (d *Document) FindAnchor(anchor string) (*Paragraph, error) {
	for p := range d.bodyParagraphs() {
		if strings.Contains(p.Text(), anchor) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrAnchorNotFound, anchor)
}

// InjectAgenda replaces the anchor paragraph with the order of business: a
// summary list of items, the transition sentence, then every item in detail
// with its resolutions. The anchor paragraph is emptied in place and the new
// paragraphs follow it in the same container. It returns how many
// paragraphs were inserted.
func (d *Document) InjectAgenda(anchor string, items []AgendaItem, transition string) (int, error) {
	target, err := d.FindAnchor(anchor)
	if err != nil {
		return 0, err
	}
	target.clear()

	b := &sectionBuilder{w: target.part.w, style: d.bodyStyle}
	if len(items) > 0 {
		b.summary(items)
	}
	if transition != "" {
		b.add(paraFormat{align: alignJustify, spaceAfter: spaceTransition}, runFormat{text: transition})
	}
	if len(items) > 0 {
		b.details(items)
	}

	if len(b.out) == 0 {
		return 0, nil
	}
	if err := target.node.InsertAfter(b.out...); err != nil {
		return 0, err
	}
	target.part.markDirty()
	return len(b.out), nil
}

type sectionBuilder struct {
	w     string
	style string
	out   []*Node
}

func (b *sectionBuilder) add(f paraFormat, runs ...runFormat) {
	if f.style == "" {
		f.style = b.style
	}
	b.out = append(b.out, buildParagraph(b.w, f, runs...))
}

func itemTitle(item AgendaItem) string {
	if strings.TrimSpace(item.Titulo) == "" {
		return fmt.Sprintf("Punto %d", item.Numero)
	}
	return item.Titulo
}

func itemLabel(item AgendaItem, bold bool) []runFormat {
	roman := ToRoman(item.Numero)
	title := runFormat{text: itemTitle(item), bold: bold}
	if roman == "" {
		return []runFormat{title}
	}
	return []runFormat{{text: roman + ".", bold: bold}, {text: "\t", bold: bold}, title}
}

func (b *sectionBuilder) summary(items []AgendaItem) {
	for i, item := range items {
		after := spaceSummaryItem
		if i == len(items)-1 {
			after = spaceSummaryLast
		}
		b.add(paraFormat{
			align:      alignJustify,
			left:       hangingIndent,
			hanging:    hangingIndent,
			spaceAfter: after,
		}, itemLabel(item, false)...)
	}
}

func (b *sectionBuilder) details(items []AgendaItem) {
	last := len(items) - 1
	for i, item := range items {
		if i > 0 {
			b.add(paraFormat{})
		}

		b.add(paraFormat{
			align:      alignJustify,
			left:       hangingIndent,
			hanging:    hangingIndent,
			spaceAfter: spaceItemTitle,
		}, itemLabel(item, true)...)

		for _, line := range splitLines(item.Descripcion) {
			b.add(paraFormat{align: alignJustify, spaceAfter: spaceDescription}, runFormat{text: line})
		}

		// The heading carries no body style.
		b.out = append(b.out, buildParagraph(b.w,
			paraFormat{align: alignCenter, spaceAfter: spaceHeading},
			runFormat{text: ResolutionHeading, bold: true},
		))

		renderable := make([]Resolution, 0, len(item.Resoluciones))
		for _, r := range item.Resoluciones {
			if strings.TrimSpace(r.Texto) != "" {
				renderable = append(renderable, r)
			}
		}
		for j, r := range renderable {
			after := spaceResolution
			if i == last && j == len(renderable)-1 {
				after = spaceSectionClose
			}
			b.resolution(r, after)
		}
	}
}

func (b *sectionBuilder) resolution(r Resolution, after int) {
	lines := splitLines(r.Texto)
	clave := strings.TrimRight(strings.TrimSpace(r.Clave), ".")

	var runs []runFormat
	if clave != "" {
		runs = append(runs, runFormat{text: clave + "."}, runFormat{text: "\t"})
	}
	runs = append(runs, runFormat{text: lines[0]})

	b.add(paraFormat{
		align:      alignJustify,
		left:       hangingIndent,
		hanging:    hangingIndent,
		spaceAfter: after,
	}, runs...)

	for _, cont := range lines[1:] {
		b.add(paraFormat{
			align:      alignJustify,
			left:       hangingIndent,
			hanging:    hangingIndent,
			spaceAfter: spaceContinuation,
		}, runFormat{text: cont})
	}
}

// splitLines trims s, splits it on line breaks and drops blank lines.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

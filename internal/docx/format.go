package docx

import (
	"math"
	"strconv"
)

// Twentieths of a point.
func pt(points float64) int { return int(math.Round(points * 20)) }

func cm(centimetres float64) int { return int(math.Round(centimetres * 1440 / 2.54)) }

type alignment string

const (
	alignNone    alignment = ""
	alignJustify alignment = "both"
	alignCenter  alignment = "center"
)

// paraFormat covers the paragraph properties the generators set.
type paraFormat struct {
	style      string
	align      alignment
	left       int
	hanging    int
	spaceAfter int
	// spaceBefore is written only when setBefore is true.
	spaceBefore int
	setBefore   bool
	// line is in 240ths of a line; 0 leaves the template default.
	line   int
	tabPos int
}

type runFormat struct {
	text string
	bold bool
	font string
	// size in half-points.
	size int
}

func itoa(n int) string { return strconv.Itoa(n) }

// buildParagraph writes w:pPr children in schema order: pStyle, tabs,
// spacing, ind, jc.
func buildParagraph(w string, f paraFormat, runs ...runFormat) *Node {
	p := newElement(w, "p")

	pPr := newElement(w, "pPr")
	if f.style != "" {
		pPr.Append(newElement(w, "pStyle", attr(w, "val", f.style)))
	}
	if f.tabPos > 0 {
		tabs := newElement(w, "tabs")
		tabs.Append(newElement(w, "tab", attr(w, "val", "left"), attr(w, "pos", itoa(f.tabPos))))
		pPr.Append(tabs)
	}
	if f.spaceAfter > 0 || f.setBefore || f.line > 0 {
		spacing := newElement(w, "spacing")
		if f.setBefore {
			spacing.Attrs = append(spacing.Attrs, attr(w, "before", itoa(f.spaceBefore)))
		}
		spacing.Attrs = append(spacing.Attrs, attr(w, "after", itoa(f.spaceAfter)))
		if f.line > 0 {
			spacing.Attrs = append(spacing.Attrs, attr(w, "line", itoa(f.line)), attr(w, "lineRule", "auto"))
		}
		pPr.Append(spacing)
	}
	if f.left > 0 || f.hanging > 0 {
		ind := newElement(w, "ind", attr(w, "left", itoa(f.left)))
		if f.hanging > 0 {
			ind.Attrs = append(ind.Attrs, attr(w, "hanging", itoa(f.hanging)))
		}
		pPr.Append(ind)
	}
	if f.align != alignNone {
		pPr.Append(newElement(w, "jc", attr(w, "val", string(f.align))))
	}
	if len(pPr.Children) > 0 {
		p.Append(pPr)
	}

	for _, r := range runs {
		if r.text == "" {
			continue
		}
		p.Append(newRun(w, r.text, buildRunProps(w, r)))
	}
	return p
}

func buildRunProps(w string, r runFormat) *Node {
	rPr := newElement(w, "rPr")
	if r.font != "" {
		rPr.Append(newElement(w, "rFonts",
			attr(w, "ascii", r.font), attr(w, "hAnsi", r.font), attr(w, "cs", r.font)))
	}
	if r.bold {
		rPr.Append(newElement(w, "b"))
	}
	if r.size > 0 {
		rPr.Append(newElement(w, "sz", attr(w, "val", itoa(r.size))))
		rPr.Append(newElement(w, "szCs", attr(w, "val", itoa(r.size))))
	}
	if len(rPr.Children) == 0 {
		return nil
	}
	return rPr
}

package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anchor = "{{ORDENES_Y_RESOLUCIONES}}"

func sampleItems() []AgendaItem {
	return []AgendaItem{
		{
			Numero:       1,
			Titulo:       "Apertura",
			Descripcion:  "Línea uno\n\n  Línea dos  ",
			Resoluciones: []Resolution{{Clave: "I.1.", Texto: "Se aprueba."}},
		},
		{
			Numero: 2,
			Resoluciones: []Resolution{
				{Clave: "II.1", Texto: "Primero\nSegundo"},
				{Clave: "II.2", Texto: "   "},
			},
		},
	}
}

func TestInjectAgenda_Layout(t *testing.T) {
	d := open(t, fixture{body: p("Preámbulo") + p(anchor) + p("Cierre"), styles: true})

	n, err := d.InjectAgenda(anchor, sampleItems(), "Acto seguido se desahogó el orden del día.")
	require.NoError(t, err)
	assert.Equal(t, 13, n)

	out := reopen(t, d)
	paras := bodyNodes(out)
	require.Len(t, paras, 16)

	var got []string
	for _, para := range paras {
		got = append(got, para.Text())
	}
	assert.Equal(t, []string{
		"Preámbulo",
		"",
		"I.\tApertura",
		"II.\tPunto 2",
		"Acto seguido se desahogó el orden del día.",
		"I.\tApertura",
		"Línea uno",
		"Línea dos",
		ResolutionHeading,
		"I.1.\tSe aprueba.",
		"",
		"II.\tPunto 2",
		ResolutionHeading,
		"II.1.\tPrimero",
		"Segundo",
		"Cierre",
	}, got)

	spacing := []struct {
		index int
		after string
	}{
		{2, "360"},
		{3, "560"},
		{4, "760"},
		{5, "560"},
		{6, "500"},
		{7, "500"},
		{8, "500"},
		{9, "360"},
		{11, "560"},
		{13, "760"},
		{14, "240"},
	}
	for _, s := range spacing {
		assert.Equal(t, s.after, pPrAttr(paras[s.index], "spacing", "after"), "paragraph %d", s.index)
	}

	for _, i := range []int{2, 3, 5, 9, 11, 13, 14} {
		assert.Equal(t, "737", pPrAttr(paras[i], "ind", "hanging"), "paragraph %d", i)
		assert.Equal(t, "737", pPrAttr(paras[i], "ind", "left"), "paragraph %d", i)
	}
	for _, i := range []int{2, 4, 6, 9} {
		assert.Equal(t, "both", pPrAttr(paras[i], "jc", "val"), "paragraph %d", i)
		assert.Equal(t, "Textoindependiente", pPrAttr(paras[i], "pStyle", "val"), "paragraph %d", i)
	}

	heading := paras[8]
	assert.Equal(t, "center", pPrAttr(heading, "jc", "val"))
	assert.Empty(t, pPrAttr(heading, "pStyle", "val"))
	assert.True(t, isBold(heading.runs()[0], heading.part.w))

	w := paras[5].part.w
	for _, run := range paras[5].runs() {
		assert.True(t, isBold(run, w))
	}
	for _, run := range paras[2].runs() {
		assert.False(t, isBold(run, w))
	}
}

func TestInjectAgenda_NoStyleWithoutBodyText(t *testing.T) {
	d := open(t, fixture{body: p(anchor)})

	_, err := d.InjectAgenda(anchor, sampleItems()[:1], "")
	require.NoError(t, err)

	for _, para := range bodyNodes(d) {
		assert.Empty(t, pPrAttr(para, "pStyle", "val"))
	}
}

func TestInjectAgenda_EmptyAgenda(t *testing.T) {
	tests := []struct {
		name       string
		transition string
		want       []string
	}{
		{name: "transition only", transition: "Se pasó al siguiente punto.", want: []string{"", "Se pasó al siguiente punto."}},
		{name: "nothing", transition: "", want: []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := open(t, fixture{body: p(anchor)})

			n, err := d.InjectAgenda(anchor, nil, tt.transition)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want)-1, n)
			assert.Equal(t, tt.want, texts(reopen(t, d)))
		})
	}
}

func TestInjectAgenda_AnchorEmptiedInPlace(t *testing.T) {
	body := `<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t>` + anchor + `</w:t></w:r></w:p>`
	d := open(t, fixture{body: body})

	n, err := d.InjectAgenda(anchor, sampleItems()[:1], "")
	require.NoError(t, err)
	require.Positive(t, n)

	paras := bodyNodes(reopen(t, d))
	require.Len(t, paras, n+1)
	assert.Empty(t, paras[0].Text())
	assert.Empty(t, paras[0].runs())
	assert.Equal(t, "center", pPrAttr(paras[0], "jc", "val"))
}

func TestInjectAgenda_AnchorNotFound(t *testing.T) {
	d := open(t, fixture{
		body:    p("Asamblea de {{DENOMINACION}}") + `<w:sectPr><w:headerReference w:type="default" r:id="rIdH"/></w:sectPr>`,
		headers: map[string]string{"rIdH": p(anchor)},
	})

	n, err := d.InjectAgenda(anchor, sampleItems(), "x")
	assert.ErrorIs(t, err, ErrAnchorNotFound)
	assert.Zero(t, n)

	assert.Equal(t, 1, d.ApplyPlaceholders(map[string]string{"{{DENOMINACION}}": "ACME"}))
	assert.Equal(t, []string{"Asamblea de ACME", anchor}, texts(reopen(t, d)))
}

func TestInjectAgenda_InsideTableCell(t *testing.T) {
	d := open(t, fixture{body: p("Antes") + table(cell(p("Orden: "+anchor)))})

	n, err := d.InjectAgenda(anchor, []AgendaItem{{Numero: 1, Titulo: "Único"}}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	out := reopen(t, d)
	w := out.main.w
	tc := out.body().Child(w, "tbl").Child(w, "tr").Child(w, "tc")
	require.NotNil(t, tc)

	var inCell int
	for _, c := range tc.Children {
		if c.Is(w, "p") {
			inCell++
		}
	}
	assert.Equal(t, 4, inCell)
	assert.Equal(t, []string{"Antes", "", "I.\tÚnico", "I.\tÚnico", ResolutionHeading}, texts(out))
}

func TestInjectAgenda_ClaveDots(t *testing.T) {
	d := open(t, fixture{body: p(anchor)})
	items := []AgendaItem{{Numero: 2, Titulo: "T", Resoluciones: []Resolution{
		{Clave: "II.1...", Texto: "Se aprueba."},
		{Texto: "Sin clave."},
	}}}

	_, err := d.InjectAgenda(anchor, items, "")
	require.NoError(t, err)

	got := texts(d)
	assert.Equal(t, "II.1.\tSe aprueba.", got[len(got)-2])
	assert.Equal(t, "Sin clave.", got[len(got)-1])
}

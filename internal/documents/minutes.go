package documents

import (
	"fmt"
	"strings"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/render"
)

const (
	consejoTransition = "Los señores consejeros después de escuchar el orden del día antes transcrito " +
		"procedieron a discutir ampliamente todos y cada uno de los asuntos contenidos en el mismo, " +
		"desahogándose de la siguiente manera:"
	asambleaTransition = "Los Asambleístas después de escuchar el Orden del Día antes trascrito y de haberlo " +
		"aprobado por unanimidad, procedieron a discutir ampliamente todos y cada uno de los asuntos " +
		"contenidos en el mismo, como sigue:"

	convocatoriaRealizada = "a la cual fueron debidamente convocados según consta en la convocatoria " +
		"que se adjunta a la presente como Anexo Dos."
	convocatoriaOmitida = "a la cual asistieron sin necesidad de convocatoria formal, dejando constancia de lo anterior."

	noResolutions       = "[No hay resoluciones registradas]"
	resolutionsBadInput = "[Error al procesar resoluciones]"

	maxNamedGuests = 3
)

var tiposAsamblea = map[string]string{
	"ordinaria":      "Ordinaria",
	"extraordinaria": "Extraordinaria",
	"mixta":          "Mixta",
}

func actaConsejo() *Definition {
	return &Definition{
		Type:     TypeActaConsejo,
		Template: TypeActaConsejo,
		Fields: []FieldSpec{
			spec("{{SOCIEDAD}}", "razon_social", KindText).marker("SOCIEDAD"),
			spec("{{RAZON_SOCIAL}}", "razon_social", KindText).marker("RAZON_SOCIAL"),
			spec("{{FECHA}}", "fecha", KindDate).marker("FECHA"),
			spec("{{HORA}}", "hora_inicio", KindTime).marker("HORA"),
			spec("{{CIUDAD}}", "ciudad", KindText).or("Ciudad de México"),
			spec("{{LUGAR}}", "lugar", KindText).marker("LUGAR"),
			spec("{{DOMICILIO_SOCIAL}}", "lugar", KindText).marker("DOMICILIO SOCIAL"),
			spec("{{PLATAFORMA_REMOTA}}", "plataforma_remota", KindText).or("Zoom"),
			spec("{{PRESIDENTE}}", "presidente", KindText).marker("PRESIDENTE"),
			spec("{{SECRETARIO}}", "secretario", KindText).marker("SECRETARIO"),
			spec("{{HORA_CIERRE}}", "hora_cierre", KindTime).marker("HORA CIERRE"),
		},
		Extra:      consejoExtras,
		Anchor:     AgendaAnchor,
		Transition: consejoTransition,
		Filename: func(r Record) string {
			return fmt.Sprintf("acta_consejo_%s_%s.docx", r.ID, dateStamp(r, "fecha", "sin_fecha"))
		},
	}
}

func consejoExtras(r Record, m map[string]string) []*apperrors.StandardError {
	var diags []*apperrors.StandardError

	m["{{ABREVIATURA SOCIEDAD}}"] = storedAbbreviation(r.String("abreviatura_sociedad"), r.String("razon_social"))

	if render.Truthy(r.Field("convocatoria_realizada")) {
		m["{{CONVOCATORIA_TEXTO}}"] = convocatoriaRealizada
	} else {
		m["{{CONVOCATORIA_TEXTO}}"] = convocatoriaOmitida
	}

	rawGuests, err := r.DecodeBlock(BlockGuests)
	if err != nil {
		diags = append(diags, apperrors.NewMalformedInputError(BlockGuests, err.Error()))
	}
	guests := guestsFrom(rawGuests)
	// Unfilled guest slots keep their token.
	for i := 0; i < len(guests) && i < maxNamedGuests; i++ {
		m[fmt.Sprintf("{{INVITADO_%d}}", i+1)] = guests[i].Nombre
	}
	m["{{ORACION_INVITADOS}}"] = GuestSentence(guests)

	text, diag := resolutionsText(r)
	if diag != nil {
		diags = append(diags, diag)
	}
	m["{{RESOLUCIONES}}"] = text
	return diags
}

// resolutionsText joins the flat resolution texts with blank lines.
func resolutionsText(r Record) (string, *apperrors.StandardError) {
	raw, err := r.DecodeBlock(BlockResolutions)
	if err != nil {
		return resolutionsBadInput, apperrors.NewMalformedInputError(BlockResolutions, err.Error())
	}

	var text string
	switch v := raw.(type) {
	case nil:
	case []interface{}:
		var lines []string
		for _, item := range v {
			switch res := item.(type) {
			case map[string]interface{}:
				if t := render.Text(res["texto"]); t != "" {
					lines = append(lines, t)
				}
			default:
				lines = append(lines, render.Text(res))
			}
		}
		text = strings.Join(lines, "\n\n")
	default:
		text = render.Text(v)
	}

	if text == "" {
		return noResolutions, nil
	}
	return text, nil
}

func actaAsamblea() *Definition {
	return &Definition{
		Type:     TypeActaAsamblea,
		Template: TypeActaAsamblea,
		Fields: []FieldSpec{
			plain("razon_social", KindText).marker("RAZÓN SOCIAL"),
			spec("{{RAZON_SOCIAL}}", "razon_social", KindText).upper().marker("RAZÓN SOCIAL"),
			withChoices(plain("tipo_asamblea", KindChoice), tiposAsamblea).marker("TIPO DE ASAMBLEA"),
			withChoices(spec("{{TIPO_ASAMBLEA}}", "tipo_asamblea", KindChoice), tiposAsamblea).upper().marker("TIPO DE ASAMBLEA"),
			plain("caracter", KindText).marker("CARÁCTER"),
			spec("{{CARACTER}}", "caracter", KindText).upper().marker("CARÁCTER"),
			plain("fecha", KindDate).marker("FECHA"),
			plain("hora_inicio", KindTime).marker("HORA DE INICIO"),
			plain("hora_cierre", KindTime).marker("HORA DE CIERRE"),
			plain("lugar", KindText).marker("LUGAR"),
			spec("{{porcentage_capital_presente}}", "porcentaje_capital_presente", KindPercent).marker("PORCENTAJE CAPITAL PRESENTE"),
			plain("presidente", KindText).marker("PRESIDENTE"),
			plain("secretario", KindText).marker("SECRETARIO"),
			plain("escrutador", KindText).marker("ESCRUTADOR"),
			plain("comisario", KindText).marker("COMISARIO"),
		},
		Extra: func(r Record, m map[string]string) []*apperrors.StandardError {
			m["{{ABREVIATURA_SOCIEDAD}}"] = Initials(r.String("razon_social"))
			return nil
		},
		Anchor:     AgendaAnchor,
		Transition: asambleaTransition,
		Filename: func(r Record) string {
			return fmt.Sprintf("acta_asamblea_%s_%s.docx", r.ID, dateStamp(r, "fecha", "sin_fecha"))
		},
	}
}

func withChoices(f FieldSpec, choices map[string]string) FieldSpec {
	f.Choices = choices
	return f
}

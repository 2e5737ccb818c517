package documents

import (
	"fmt"
)

var (
	tiposPago = map[string]string{
		"unico":         "Un solo pago",
		"parcialidades": "Parcialidades",
	}
	periodicidades = map[string]string{
		"mensual":   "Mensual",
		"quincenal": "Quincenal",
		"semanal":   "Semanal",
		"diario":    "Diario",
	}
)

func pagare() *Definition {
	return &Definition{
		Type:     TypePagare,
		Template: TypePagare,
		Fields: []FieldSpec{
			plain("lugar_emision", KindText).marker("LUGAR_EMISION"),
			plain("fecha_emision", KindDate).marker("FECHA_EMISION"),

			spec("{{nombre_acreedor}}", "acreedor_nombre", KindText).marker("NOMBRE_ACREEDOR"),
			spec("{{NOMBRE_ACREEDOR}}", "acreedor_nombre", KindText).upper().marker("NOMBRE_ACREEDOR"),
			spec("{{rfc_acreedor}}", "acreedor_rfc", KindText).marker("RFC_ACREEDOR"),
			spec("{{domicilio_acreedor}}", "acreedor_domicilio", KindText).marker("DOMICILIO_ACREEDOR"),

			spec("{{nombre_deudor}}", "deudor_nombre", KindText).marker("NOMBRE_DEUDOR"),
			spec("{{NOMBRE_DEUDOR}}", "deudor_nombre", KindText).upper().marker("NOMBRE_DEUDOR"),
			spec("{{rfc_deudor}}", "deudor_rfc", KindText).marker("RFC_DEUDOR"),
			spec("{{representante_deudor}}", "deudor_representante", KindText).marker("REPRESENTANTE_DEUDOR"),
			spec("{{domicilio_deudor}}", "deudor_domicilio", KindText).marker("DOMICILIO_DEUDOR"),

			spec("{{monto_principal}}", "monto_numeric", KindCurrency).marker("MONTO_PRINCIPAL"),
			plain("moneda", KindText).marker("MONEDA"),
			spec("{{concepto_pagare}}", "concepto", KindText).marker("CONCEPTO_PAGARE"),
			spec("{{monto_principal_texto}}", "monto_literal", KindText).marker("MONTO_PRINCIPAL_TEXTO"),

			withChoices(plain("tipo_pago", KindChoice), tiposPago).marker("TIPO_PAGO"),
			spec("{{numero_pagos}}", "num_pagos", KindInteger).marker("NUMERO_PAGOS"),
			spec("{{numero_pagos_letra}}", "num_pagos", KindWordsCapitalized),
			withChoices(plain("periodicidad", KindChoice), periodicidades).marker("PERIODICIDAD"),
			plain("lugar_pago", KindText).marker("LUGAR_PAGO"),
			plain("forma_pago", KindText).marker("FORMA_PAGO"),

			spec("{{tasa_interes_ordinario}}", "tasa_interes_ordinario", KindPercent).marker("TASA_INTERES_ORDINARIO"),
			spec("{{tasa_interes_ordinario_letra}}", "tasa_interes_ordinario", KindWordsCapitalized),
			spec("{{tasa_interes_moratorio}}", "tasa_interes_moratorio", KindPercent).marker("TASA_INTERES_MORATORIO"),
			spec("{{tasa_interes_moratorio_letra}}", "tasa_interes_moratorio", KindWordsCapitalized),
			spec("{{base_calculo_dias}}", "base_intereses", KindInteger).marker("BASE_CALCULO_DIAS"),
			spec("{{base_calculo_dias_letra}}", "base_intereses", KindWordsCapitalized),
			spec("{{gastos_administracion}}", "gastos_admon", KindCurrency).marker("GASTOS_ADMINISTRACION"),
			spec("{{gastos_administracion_letra}}", "gastos_admon", KindWordsCapitalized),

			spec("{{permitir_prepago}}", "prepago_permitido", KindYesNo),
			plain("dias_aviso_prepago", KindInteger).marker("DIAS_AVISO_PREPAGO"),
			spec("{{dias_aviso_prepago_letra}}", "dias_aviso_prepago", KindWordsCapitalized),
			plain("condicion_prepago", KindText).marker("CONDICION_PREPAGO"),

			spec("{{tiene_garantia_aval}}", "tiene_garantia", KindYesNo),
			spec("{{nombre_aval}}", "aval_nombre", KindText).marker("NOMBRE_AVAL"),
			spec("{{NOMBRE_AVAL}}", "aval_nombre", KindText).upper().marker("NOMBRE_AVAL"),
			plain("descripcion_garantia", KindText).marker("DESCRIPCION_GARANTIA"),
			spec("{{domicilio_aval}}", "aval_domicilio", KindText).marker("DOMICILIO_AVAL"),

			plain("jurisdiccion", KindText).marker("JURISDICCION"),
			plain("ley_aplicable", KindText).marker("LEY_APLICABLE"),
			plain("eventos_incumplimiento", KindText).marker("EVENTOS_INCUMPLIMIENTO"),
			plain("clausula_aceleracion", KindText).marker("CLAUSULA_ACELERACION"),
		},
		Filename: func(r Record) string {
			return fmt.Sprintf("pagare_%s_%s.docx", r.ID, dateStamp(r, "fecha_emision", "sin_fecha"))
		},
	}
}

// deed expands the four fields recorded for a notarial instrument.
func deed(prefix, numberSuffix, dateSuffix, notarySuffix, registrySuffix string) []FieldSpec {
	out := []FieldSpec{
		plain(prefix+numberSuffix, KindText),
		plain(prefix+dateSuffix, KindDate),
		plain(prefix+notarySuffix, KindText),
	}
	if registrySuffix != "" {
		out = append(out, plain(prefix+registrySuffix, KindText))
	}
	return out
}

func join(groups ...[]FieldSpec) []FieldSpec {
	var out []FieldSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func contratoCredito() *Definition {
	dated := func(field string) FieldSpec { return plain(field, KindDate).marker("FECHA") }
	creditDeed := func(numero, fecha, notario, folio string) []FieldSpec {
		out := []FieldSpec{plain(numero, KindText), dated(fecha), plain(notario, KindText)}
		if folio != "" {
			out = append(out, plain(folio, KindText))
		}
		return out
	}

	return &Definition{
		Type:     TypeContratoCredito,
		Template: TypeContratoCredito,
		Fields: join(
			[]FieldSpec{
				dated("fecha_contrato"),
				spec("{{fecha_contrato_texto}}", "fecha_contrato", KindDateWords),
				plain("lugar_contrato", KindText),

				plain("acreditante_razon_social", KindText),
				spec("{{ACREDITANTE_RAZON_SOCIAL}}", "acreditante_razon_social", KindText).upper(),
				plain("acreditante_forma_legal", KindText),
				plain("acreditante_representante", KindText),
				spec("{{ACREDITANTE_REPRESENTANTE}}", "acreditante_representante", KindText).upper(),
			},
			creditDeed("acreditante_deed_constitucion_numero", "acreditante_deed_constitucion_fecha",
				"acreditante_notario_constitucion", "acreditante_registro_constitucion_folio"),
			creditDeed("acreditante_deed_prom_inv_numero", "acreditante_deed_prom_inv_fecha",
				"acreditante_notario_prom_inv", "acreditante_registro_prom_inv_folio"),
			creditDeed("acreditante_deed_poder_numero", "acreditante_deed_poder_fecha",
				"acreditante_notario_poder", ""),
			[]FieldSpec{
				plain("acreditado_razon_social_original", KindText),
				spec("{{ACREDITADO_RAZON_SOCIAL_ORIGINAL}}", "acreditado_razon_social_original", KindText).upper(),
			},
			creditDeed("acreditado_deed_constitucion_original_numero", "acreditado_deed_constitucion_original_fecha",
				"acreditado_notario_constitucion_original", "acreditado_registro_constitucion_original_folio"),
			creditDeed("acreditado_deed_denominacion_cambio_numero", "acreditado_deed_denominacion_cambio_fecha",
				"acreditado_notario_denominacion_cambio", "acreditado_registro_denominacion_cambio_folio"),
			creditDeed("acreditado_deed_poder_numero", "acreditado_deed_poder_fecha",
				"acreditado_notario_poder", ""),
			[]FieldSpec{
				dated("acreditado_resoluciones_unani_fecha"),

				plain("monto_credito", KindCurrency),
				plain("monto_credito_texto", KindText),
				spec("{{MONTO_CREDITO_TEXTO}}", "monto_credito_texto", KindText).upper(),
				plain("numero_disposiciones", KindInteger),

				dated("disposicion1_fecha"),
				plain("disposicion1_importe", KindCurrency),
				spec("{{disposicion1_importe_texto}}", "disposicion1_importe", KindWords),
				dated("disposicion2_fecha"),
				spec("{{disposicion2_fecha_texto}}", "disposicion2_fecha", KindDateWords),
				plain("disposicion2_importe", KindCurrency),
				dated("disposicion3_fecha"),
				spec("{{disposicion3_fecha_texto}}", "disposicion3_fecha", KindDateWords),
				plain("disposicion3_importe", KindCurrency),

				dated("plazo_credito_fecha_vencimiento"),
				dated("pagos_intereses_fecha1"),
				dated("pagos_intereses_fecha2"),
				dated("pagos_intereses_fecha3"),
				dated("pago_principal_fecha"),

				plain("tasa_interes_ordinaria", KindPercent),
				plain("tasa_interes_moratoria", KindPercent),

				plain("banco_cuenta_numero", KindText),
				plain("banco_nombre", KindText),
				plain("banco_titular", KindText),
				plain("banco_clabe", KindText),

				plain("domicilio_acreditante", KindText),
				plain("domicilio_acreditado", KindText),
				plain("jurisdiccion", KindText),
				plain("ley_aplicable", KindText),

				plain("aval_nombre", KindText),
				spec("{{AVAL_NOMBRE}}", "aval_nombre", KindText).upper(),
				plain("aval_domicilio", KindText),
			},
		),
		Filename: func(r Record) string {
			return fmt.Sprintf("Contrato_Credito_%s_%s.docx",
				underscored(r.String("acreditado_razon_social_original"), "documento"), r.ID)
		},
	}
}

func contratoPrenda() *Definition {
	named := func(field string) []FieldSpec {
		return []FieldSpec{plain(field, KindText), spec("{{"+upperToken(field)+"}}", field, KindText).upper()}
	}

	return &Definition{
		Type:     TypeContratoPrenda,
		Template: TypeContratoPrenda,
		Fields: join(
			[]FieldSpec{
				plain("fecha_contrato", KindDate),
				plain("lugar_contrato", KindText),
				plain("numero_fideicomiso", KindText),
				plain("fecha_fideicomiso", KindDate),
				plain("fecha_aprobacion_proyecto", KindDate),
				plain("descripcion_proyecto", KindText),
			},
			named("deudor_nombre"),
			deed("deudor_constitucion_", "escritura_num", "fecha", "notario", "registro"),
			deed("deudor_adopcion_sapi_", "escritura_num", "fecha", "notario", "registro"),
			named("deudor_representante"),
			[]FieldSpec{
				plain("acciones_pledged_cantidad", KindGroupedInteger),
				plain("acciones_pledged_texto", KindText),
				spec("{{ACCIONES_PLEDGED_TEXTO}}", "acciones_pledged_texto", KindText).upper(),
			},
			named("acreedor_nombre"),
			deed("acreedor_constitucion_", "escritura_num", "fecha", "notario", "registro"),
			deed("acreedor_denominacion1_", "escritura_num", "fecha", "notario", "registro"),
			deed("acreedor_denominacion2_", "escritura_num", "fecha", "notario", "registro"),
			deed("acreedor_denominacion3_", "escritura_num", "fecha", "notario", "registro"),
			named("delegado_fiduciario"),
			deed("delegado_fiduciario_", "escritura_num", "fecha", "notario", "registro"),
			named("fideicomitente_nombre"),
			deed("fideicomitente_constitucion_", "escritura_num", "fecha", "notario", "registro"),
			named("fideicomitente_representante"),
			deed("fideicomitente_rep_", "escritura_num", "fecha", "notario", "registro"),
			[]FieldSpec{
				plain("domicilio_deudor", KindText),
				plain("domicilio_acreedor", KindText),
				plain("domicilio_fideicomitente", KindText),
				plain("estado_civil", KindText).or("soltero"),
			},
		),
		Filename: func(r Record) string {
			return fmt.Sprintf("Contrato_de_Prenda_generado_%s.docx", r.ID)
		},
	}
}

func convenioModificatorio() *Definition {
	person := func(prefix string, upper ...string) []FieldSpec {
		var out []FieldSpec
		for _, suffix := range []string{"nombre", "estado_civil", "nacionalidad", "ocupacion", "rfc", "curp"} {
			out = append(out, plain(prefix+suffix, KindText))
		}
		for _, suffix := range upper {
			out = append(out, spec("{{"+upperToken(prefix+suffix)+"}}", prefix+suffix, KindText).upper())
		}
		return out
	}

	return &Definition{
		Type:     TypeConvenioModificatorio,
		Template: TypeConvenioModificatorio,
		Fields: join(
			[]FieldSpec{
				plain("fecha_convenio", KindDate).marker("FECHA"),
				plain("lugar_convenio", KindText),

				plain("inversionista_razon_social", KindText),
				spec("{{INVERSIONISTA_RAZON_SOCIAL}}", "inversionista_razon_social", KindText).upper(),
				plain("inversionista_representante", KindText),
				spec("{{INVERSIONISTA_REPRESENTANTE}}", "inversionista_representante", KindText).upper(),
				plain("inversionista_constitucion_escritura", KindText),
				plain("inversionista_constitucion_fecha", KindDate).marker("FECHA"),
				plain("inversionista_notario_constitucion", KindText),
				plain("inversionista_registro_constitucion", KindText),
				plain("inversionista_poder_escritura", KindText),
				plain("inversionista_poder_fecha", KindDate).marker("FECHA"),
				plain("inversionista_poder_notario", KindText),

				plain("contrato_original_fecha", KindDate).marker("FECHA"),
			},
			person("estudiante_", "nombre", "ocupacion", "rfc", "curp"),
			person("luis_", "nombre", "rfc", "curp"),
			person("lizette_", "nombre"),
			[]FieldSpec{
				plain("adeudo_principal_anterior", KindCurrency),
				plain("adeudo_principal_anterior_texto", KindText),
				plain("credito_original", KindCurrency),
				spec("{{credito_original_texto}}", "credito_original", KindWords),

				plain("aumento_monto", KindCurrency),
				plain("aumento_monto_texto", KindText),
				plain("inversion_total", KindCurrency),
				plain("inversion_total_texto", KindText),
				plain("adeudo_actualizado", KindCurrency),
				spec("{{adeudo_actualizado_texto}}", "adeudo_actualizado", KindWords),
				plain("pagare_ii_fecha", KindDate).marker("FECHA"),
				plain("pagare_i_devuelto", KindYesNo),

				plain("dispo_periodo_inicio", KindDate).marker("FECHA"),
				plain("dispo_periodo_fin", KindDate).marker("FECHA"),

				plain("cat_anual", KindPercent),
				plain("tasa_interes_mensual", KindPercent),
				plain("tasa_moratoria_mensual", KindPercent),

				plain("pagos_estudios_num1", KindInteger),
				plain("pagos_estudios_imp1", KindCurrency),
				plain("pagos_estudios_num2", KindInteger),
				spec("{{pagos_estudios_num2_texto}}", "pagos_estudios_num2", KindWords),
				plain("pagos_estudios_imp2", KindCurrency),
				plain("pagos_egreso_num", KindInteger),
				spec("{{PAGOS_EGRESO_NUM_TEXTO}}", "pagos_egreso_num", KindWords),
				plain("pagos_egreso_imp", KindCurrency),
				plain("pago_egreso_ultimo", KindCurrency),

				plain("cuenta_numero", KindText),
				plain("cuenta_banco", KindText),
				plain("cuenta_titular", KindText),
				plain("cuenta_clabe", KindText),

				plain("entrego_acta_nacimiento", KindYesNo),
				plain("entrego_identificacion_oficial", KindYesNo),
				plain("entrego_reporte_buro", KindYesNo),
				plain("entrego_rfc", KindYesNo),
				plain("entrego_curp", KindYesNo),
				plain("entrego_comprobante_domicilio", KindYesNo),
				plain("entrego_comprobante_ingresos", KindYesNo),

				plain("cursos_requeridos", KindInteger),
				plain("beneficio_descripcion", KindText),
				plain("confidencialidad_years", KindInteger),
			},
		),
		Filename: func(r Record) string {
			return fmt.Sprintf("Convenio_Modificatorio_%s_%s.docx",
				underscored(r.String("estudiante_nombre"), "documento"), r.ID)
		},
	}
}

// ObjetoSocialToken is injected as numbered clauses rather than substituted.
const ObjetoSocialToken = "{{objeto_social}}"

func estatutosSociedad() *Definition {
	return &Definition{
		Type:     TypeEstatutosSociedad,
		Template: TypeEstatutosSociedad,
		Fields: []FieldSpec{
			plain("denominacion", KindText),
			spec("{{DENOMINACION}}", "denominacion", KindText).upper(),
			plain("forma_legal", KindText),
			plain("domicilio", KindText),
			plain("nacionalidad", KindText),
			plain("capital_fijo_monto", KindCurrency),
			plain("capital_fijo_texto", KindText),
			plain("acciones_serie_a", KindGroupedInteger),
			spec("{{acciones_serie_a_texto}}", "acciones_serie_a", KindWordsCapitalized),
		},
		ClauseToken: ObjetoSocialToken,
		ClauseField: "objeto_social",
		Filename: func(r Record) string {
			return fmt.Sprintf("Estatutos_Sociales_%s.docx", underscored(r.String("denominacion"), "documento"))
		},
	}
}

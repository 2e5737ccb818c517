package render

import (
	"math"
	"strings"
)

var (
	unitsES = [...]string{
		"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
		"diez", "once", "doce", "trece", "catorce", "quince",
		"dieciséis", "diecisiete", "dieciocho", "diecinueve",
		"veinte", "veintiuno", "veintidós", "veintitrés", "veinticuatro",
		"veinticinco", "veintiséis", "veintisiete", "veintiocho", "veintinueve",
	}
	tensES = [...]string{
		"", "", "", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa",
	}
	hundredsES = [...]string{
		"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
		"seiscientos", "setecientos", "ochocientos", "novecientos",
	}
)

// Words converts a number to Spanish cardinal words and renders "" for
// anything it cannot interpret.
func Words(v interface{}) string {
	s, err := NumberWords(v)
	if err != nil {
		return ""
	}
	return s
}

// NumberWords converts integers and two-decimal amounts to Spanish words.
// 1500.5 becomes "mil quinientos punto cincuenta".
func NumberWords(v interface{}) (string, error) {
	f, err := ToFloat(v)
	if err != nil {
		return "", err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= 1e18 {
		return "", ErrEmpty
	}

	cents := int64(math.Round(math.Abs(f)*100)) % 100
	whole := int64(math.Abs(f) + 0.005)
	out := IntegerWords(whole)
	if f < 0 {
		out = "menos " + out
	}
	if cents == 0 {
		return out, nil
	}
	if cents < 10 {
		return out + " punto cero " + IntegerWords(cents), nil
	}
	return out + " punto " + IntegerWords(cents), nil
}

// IntegerWords spells a non-negative integer below 10^18.
func IntegerWords(n int64) string {
	if n < 0 {
		return "menos " + IntegerWords(-n)
	}
	if n == 0 {
		return unitsES[0]
	}

	var parts []string
	if billions := n / 1_000_000_000_000; billions > 0 {
		if billions == 1 {
			parts = append(parts, "un billón")
		} else {
			parts = append(parts, apocope(thousandsWords(billions))+" billones")
		}
		n %= 1_000_000_000_000
	}
	if millions := n / 1_000_000; millions > 0 {
		if millions == 1 {
			parts = append(parts, "un millón")
		} else {
			parts = append(parts, apocope(thousandsWords(millions))+" millones")
		}
		n %= 1_000_000
	}
	if n > 0 {
		parts = append(parts, thousandsWords(n))
	}
	return strings.Join(parts, " ")
}

// thousandsWords spells 1..999999.
func thousandsWords(n int64) string {
	thousands, rest := n/1000, n%1000
	var parts []string
	switch {
	case thousands == 1:
		parts = append(parts, "mil")
	case thousands > 1:
		parts = append(parts, apocope(hundredsWords(thousands))+" mil")
	}
	if rest > 0 {
		parts = append(parts, hundredsWords(rest))
	}
	return strings.Join(parts, " ")
}

// hundredsWords spells 1..999.
func hundredsWords(n int64) string {
	if n == 100 {
		return "cien"
	}
	h, rest := n/100, n%100
	var parts []string
	if h > 0 {
		parts = append(parts, hundredsES[h])
	}
	if rest > 0 {
		parts = append(parts, tensWords(rest))
	}
	return strings.Join(parts, " ")
}

func tensWords(n int64) string {
	if n < 30 {
		return unitsES[n]
	}
	t, u := n/10, n%10
	if u == 0 {
		return tensES[t]
	}
	return tensES[t] + " y " + unitsES[u]
}

// apocope shortens a trailing "uno" before mil, millón and billón.
func apocope(s string) string {
	switch {
	case strings.HasSuffix(s, "veintiuno"):
		return strings.TrimSuffix(s, "veintiuno") + "veintiún"
	case strings.HasSuffix(s, "uno"):
		return strings.TrimSuffix(s, "o")
	default:
		return s
	}
}

package documents

import (
	"strings"
	"unicode/utf8"

	"legal-docs-workers/internal/render"
)

const defaultAbbreviation = "CAS"

// Words of a company name that never contribute an initial.
var legalFormWords = map[string]bool{
	"S": true, "S.A.": true, "S.A": true, "SA": true,
	"DE": true,
	"C.V.": true, "C.V": true, "CV": true,
	"RL": true, "R.L.": true, "R.L": true,
}

// Initials abbreviates a company name from the first letter of each word
// that is not part of its legal form.
func Initials(name string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		if legalFormWords[strings.ToUpper(strings.Trim(word, ","))] {
			continue
		}
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return defaultAbbreviation
	}
	return render.Upper(sb.String())
}

// storedAbbreviation prefers the abbreviation kept on the record and
// otherwise takes the first three letters of the company name.
func storedAbbreviation(stored, name string) string {
	if s := strings.TrimSpace(stored); s != "" {
		return render.Upper(s)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultAbbreviation
	}
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return render.Upper(string(runes))
}

// underscored replaces spaces for use in file names, or returns fallback.
func underscored(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return strings.ReplaceAll(s, " ", "_")
}

func upperToken(field string) string {
	return strings.ToUpper(field)
}

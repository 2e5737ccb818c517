package documents

import (
	"fmt"
	"strings"
)

// Guest is a non-member attending a board session.
type Guest struct {
	Nombre string `json:"nombre"`
	Cargo  string `json:"cargo"`
}

var (
	feminineTitles  = map[string]bool{"licenciada": true, "ingeniera": true, "abogada": true, "contadora": true, "doctora": true, "arquitecta": true}
	masculineTitles = map[string]bool{"licenciado": true, "ingeniero": true, "abogado": true, "contador": true, "doctor": true, "arquitecto": true}
)

// guestsFrom reads the guests block. Entries without a name are skipped.
func guestsFrom(raw interface{}) []Guest {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var out []Guest
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		g := Guest{Nombre: trimmed(m["nombre"]), Cargo: trimmed(m["cargo"])}
		if g.Nombre != "" {
			out = append(out, g)
		}
	}
	return out
}

func trimmed(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// describe renders "la licenciada Ana Ruiz", "el ingeniero Juan Pérez" or
// "Juan Pérez (Contador Público)".
func (g Guest) describe() string {
	title := strings.ToLower(g.Cargo)
	switch {
	case feminineTitles[title]:
		return "la " + title + " " + g.Nombre
	case masculineTitles[title]:
		return "el " + title + " " + g.Nombre
	case g.Cargo != "":
		return fmt.Sprintf("%s (%s)", g.Nombre, g.Cargo)
	default:
		return g.Nombre
	}
}

// joinNames joins with commas and "y" before the last name.
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " y " + names[len(names)-1]
	}
}

// GuestSentence states who attended the session as a guest, or "" when nobody did.
func GuestSentence(guests []Guest) string {
	names := make([]string, 0, len(guests))
	for _, g := range guests {
		names = append(names, g.describe())
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		role := "invitado"
		if strings.HasPrefix(names[0], "la ") {
			role = "invitada"
		}
		return fmt.Sprintf("Se hace constar la presencia a la sesión de %s, quien comparece en calidad de %s.", names[0], role)
	default:
		return fmt.Sprintf("Se hace constar la presencia a la sesión de %s, quienes comparecen en calidad de invitados.", joinNames(names))
	}
}

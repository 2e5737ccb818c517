package docx

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxAgendaItems bounds how many agenda items are injected into one document.
const MaxAgendaItems = 500

// Resolution is one resolution adopted under an agenda item. Punto is the
// number of the item it belongs to when resolutions arrive as a flat list.
type Resolution struct {
	Clave string      `json:"clave"`
	Texto string      `json:"texto"`
	Tipo  string      `json:"tipo,omitempty"`
	Punto interface{} `json:"punto,omitempty"`
}

// AgendaItem is one point of the order of business.
type AgendaItem struct {
	Numero       int          `json:"numero"`
	Titulo       string       `json:"titulo"`
	Descripcion  string       `json:"descripcion"`
	Resoluciones []Resolution `json:"resoluciones"`
}

// Agenda is the normalized order of business.
type Agenda struct {
	Items []AgendaItem
	// Truncated counts items dropped past the size limit.
	Truncated int
	// Malformed is set when the agenda input was not a list.
	Malformed bool
	// ResolutionsMalformed is set when the flat resolutions input was not a list.
	ResolutionsMalformed bool
}

// NormalizeAgenda merges agenda items with a flat resolutions list.
//
// Items may be objects or bare strings (a title with no resolutions). An
// item keeps its own resolutions when it has any; otherwise it takes, in
// order, the flat resolutions whose punto matches its numero, compared
// numerically first and then as strings. A flat resolution attaches to the
// first matching item only. Inputs may be decoded JSON values, JSON text or
// raw bytes; anything that is not a list yields an empty agenda.
func NormalizeAgenda(rawItems, rawResolutions interface{}, maxItems int) Agenda {
	if maxItems <= 0 {
		maxItems = MaxAgendaItems
	}

	var out Agenda
	items, ok := asList(rawItems)
	if !ok {
		out.Malformed = true
		return out
	}
	flat, ok := asList(rawResolutions)
	if !ok {
		out.ResolutionsMalformed = true
		flat = nil
	}
	claimed := make([]bool, len(flat))

	for _, raw := range items {
		var item AgendaItem
		switch v := raw.(type) {
		case map[string]interface{}:
			item = AgendaItem{
				Numero:       toNumero(v["numero"], len(out.Items)+1),
				Titulo:       stringField(v["titulo"]),
				Descripcion:  stringField(v["descripcion"]),
				Resoluciones: toResolutions(v["resoluciones"]),
			}
		case string:
			item = AgendaItem{Numero: len(out.Items) + 1, Titulo: v}
		default:
			continue
		}

		if len(out.Items) >= maxItems {
			out.Truncated++
			continue
		}

		if len(item.Resoluciones) == 0 {
			for i, r := range flat {
				m, ok := r.(map[string]interface{})
				if !ok || claimed[i] {
					continue
				}
				if puntoMatches(m["punto"], item.Numero) {
					claimed[i] = true
					item.Resoluciones = append(item.Resoluciones, resolutionFromMap(m))
				}
			}
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func asList(raw interface{}) ([]interface{}, bool) {
	var text []byte
	switch v := raw.(type) {
	case nil:
		return nil, true
	case []interface{}:
		return v, true
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case string:
		text = []byte(v)
	case []byte:
		text = v
	case json.RawMessage:
		text = v
	default:
		return nil, false
	}

	if strings.TrimSpace(string(text)) == "" || strings.TrimSpace(string(text)) == "null" {
		return nil, true
	}
	var decoded interface{}
	if err := json.Unmarshal(text, &decoded); err != nil {
		return nil, false
	}
	if decoded == nil {
		return nil, true
	}
	list, ok := decoded.([]interface{})
	return list, ok
}

func toNumero(v interface{}, fallback int) int {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return fallback
}

func stringField(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

func toResolutions(v interface{}) []Resolution {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []Resolution
	for _, r := range list {
		switch t := r.(type) {
		case map[string]interface{}:
			out = append(out, resolutionFromMap(t))
		case string:
			out = append(out, Resolution{Texto: t})
		}
	}
	return out
}

func resolutionFromMap(m map[string]interface{}) Resolution {
	return Resolution{
		Clave: stringField(m["clave"]),
		Texto: stringField(m["texto"]),
		Tipo:  stringField(m["tipo"]),
		Punto: m["punto"],
	}
}

// puntoMatches skips empty and zero punto values.
func puntoMatches(punto interface{}, numero int) bool {
	switch p := punto.(type) {
	case nil:
		return false
	case float64:
		if p == 0 {
			return false
		}
		if p == float64(numero) {
			return true
		}
	case int:
		if p == 0 {
			return false
		}
		if p == numero {
			return true
		}
	case string:
		if p == "" {
			return false
		}
	case bool:
		return false
	}
	return stringField(punto) == strconv.Itoa(numero)
}

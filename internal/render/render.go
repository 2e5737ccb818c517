// Package render turns record field values into the strings placed in legal
// documents: amounts, Spanish dates, numbers in words and case variants.
//
// Every function accepts the loosely typed values found in decoded records
// (float64, int, json.Number, string, time.Time) and reports a malformed value
// as an error so callers can degrade that single field.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmpty is returned when a value is nil or blank.
var ErrEmpty = errors.New("render: empty value")

var upperES = cases.Upper(language.Spanish)

// Upper upper-cases every letter using Spanish casing rules.
func Upper(s string) string {
	return upperES.String(s)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Marker formats a bracket marker such as "[FECHA]".
func Marker(label string) string {
	return "[" + label + "]"
}

// Text renders scalars as plain strings. nil renders as "".
func Text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(t)
	}
}

// IsBlank reports whether v is nil or only whitespace.
func IsBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

// ToFloat converts a numeric value. Strings may carry a leading "$" and
// thousands separators.
func ToFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, ErrEmpty
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, ErrEmpty
		}
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("render: %q is not a number", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("render: unsupported numeric type %T", v)
	}
}

// YesNo renders booleans as "Sí" / "No". Strings "true", "1", "si" and "sí"
// count as true.
func YesNo(v interface{}) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "Sí"
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "si", "sí":
			return "Sí"
		}
	case float64:
		if t != 0 {
			return "Sí"
		}
	case int:
		if t != 0 {
			return "Sí"
		}
	}
	return "No"
}

// Truthy reports whether a record flag is set.
func Truthy(v interface{}) bool {
	return YesNo(v) == "Sí"
}

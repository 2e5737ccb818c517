package documents

import (
	"errors"
	"strings"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/render"
)

// FieldKind selects how a record value is rendered.
type FieldKind string

const (
	KindText             FieldKind = "text"
	KindDate             FieldKind = "date"
	KindDateWords        FieldKind = "date_words"
	KindTime             FieldKind = "time"
	KindCurrency         FieldKind = "currency"
	KindWords            FieldKind = "words"
	KindWordsCapitalized FieldKind = "words_capitalized"
	KindPercent          FieldKind = "percent"
	KindInteger          FieldKind = "integer"
	KindGroupedInteger   FieldKind = "grouped_integer"
	KindYesNo            FieldKind = "yes_no"
	KindChoice           FieldKind = "choice"
)

// FieldSpec maps one placeholder token to a record field.
//
// Missing is used when the field is absent or cannot be rendered: an empty
// string, a bracket marker such as "[FECHA]" or a plain default.
type FieldSpec struct {
	Token   string
	Field   string
	Kind    FieldKind
	Upper   bool
	Missing string
	// Choices maps stored values to their display labels for KindChoice.
	Choices map[string]string
}

func spec(token, field string, kind FieldKind) FieldSpec {
	return FieldSpec{Token: token, Field: field, Kind: kind}
}

// plain binds {{field}} to field.
func plain(field string, kind FieldKind) FieldSpec {
	return spec("{{"+field+"}}", field, kind)
}

func (f FieldSpec) upper() FieldSpec {
	f.Upper = true
	return f
}

func (f FieldSpec) or(missing string) FieldSpec {
	f.Missing = missing
	return f
}

func (f FieldSpec) marker(label string) FieldSpec {
	f.Missing = render.Marker(label)
	return f
}

// renderFields renders every spec against the record. A value that cannot
// be rendered degrades to its Missing text and is reported; absent values
// are not.
func renderFields(r Record, specs []FieldSpec) (map[string]string, []*apperrors.StandardError) {
	out := make(map[string]string, len(specs))
	var diags []*apperrors.StandardError
	for _, s := range specs {
		value, err := renderValue(s, r.Field(s.Field))
		switch {
		case err == nil:
			if s.Upper {
				value = render.Upper(value)
			}
		case errors.Is(err, render.ErrEmpty):
			value = s.Missing
		default:
			diags = append(diags, apperrors.NewValueRenderingFailedError(s.Field, err))
			value = s.Missing
		}
		out[s.Token] = value
	}
	return out, diags
}

func renderValue(s FieldSpec, v interface{}) (string, error) {
	switch s.Kind {
	case KindYesNo:
		return render.YesNo(v), nil
	case KindDate:
		return render.Date(v)
	case KindDateWords:
		return render.DateWords(v)
	case KindTime:
		return render.ClockTime(v)
	case KindCurrency:
		return nonZero(v, render.Currency)
	case KindWords:
		return render.NumberWords(v)
	case KindWordsCapitalized:
		w, err := render.NumberWords(v)
		return render.Capitalize(w), err
	case KindPercent:
		return nonZero(v, render.Percent)
	case KindInteger:
		return nonZero(v, render.Integer)
	case KindGroupedInteger:
		return nonZero(v, render.GroupedInteger)
	case KindChoice:
		if render.IsBlank(v) {
			return "", render.ErrEmpty
		}
		raw := strings.TrimSpace(render.Text(v))
		if label, ok := s.Choices[strings.ToLower(raw)]; ok {
			return label, nil
		}
		return raw, nil
	default:
		if render.IsBlank(v) {
			return "", render.ErrEmpty
		}
		return strings.TrimSpace(render.Text(v)), nil
	}
}

// nonZero treats a zero amount like an absent one, so it takes the
// field's Missing text.
func nonZero(v interface{}, fn func(interface{}) (string, error)) (string, error) {
	f, err := render.ToFloat(v)
	if err != nil {
		return "", err
	}
	if f == 0 {
		return "", render.ErrEmpty
	}
	return fn(v)
}

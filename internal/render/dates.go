package render

import (
	"fmt"
	"strings"
	"time"
)

var monthsES = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ToTime accepts time.Time values and ISO-like date strings.
func ToTime(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, ErrEmpty
	case time.Time:
		if t.IsZero() {
			return time.Time{}, ErrEmpty
		}
		return t, nil
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, ErrEmpty
		}
		return *t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, ErrEmpty
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("render: %q is not a date", t)
	default:
		return time.Time{}, fmt.Errorf("render: unsupported date type %T", v)
	}
}

// MonthName returns the Spanish month name, lower case.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthsES[m-1]
}

// Date renders "1 de agosto de 2025".
func Date(v interface{}) (string, error) {
	t, err := ToTime(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), MonthName(t.Month()), t.Year()), nil
}

// DateWords renders "Uno de agosto de dos mil veinticinco".
func DateWords(v interface{}) (string, error) {
	t, err := ToTime(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s de %s de %s",
		Capitalize(IntegerWords(int64(t.Day()))),
		MonthName(t.Month()),
		IntegerWords(int64(t.Year())),
	), nil
}

// ClockTime renders "HH:MM" from a time value or a "15:04[:05]" string.
func ClockTime(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		for _, layout := range []string{"15:04:05", "15:04"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.Format("15:04"), nil
			}
		}
	}
	t, err := ToTime(v)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}

// CompactDate renders "20250801" for file names.
func CompactDate(v interface{}) (string, error) {
	t, err := ToTime(v)
	if err != nil {
		return "", err
	}
	return t.Format("20060102"), nil
}

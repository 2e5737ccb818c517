package render

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amounts use comma grouping and a dot decimal separator regardless of host locale.
var amountPrinter = message.NewPrinter(language.English)

// Currency renders "$9,000,000.00". Negative amounts carry the sign before
// the symbol, "-$1,500.00".
func Currency(v interface{}) (string, error) {
	f, err := ToFloat(v)
	if err != nil {
		return "", err
	}
	amount := amountPrinter.Sprintf("%.2f", math.Abs(f))
	if f < 0 && amount != "0.00" {
		return "-$" + amount, nil
	}
	return "$" + amount, nil
}

// GroupedInteger renders a whole number with thousands separators, rounding half away from zero.
func GroupedInteger(v interface{}) (string, error) {
	f, err := ToFloat(v)
	if err != nil {
		return "", err
	}
	return amountPrinter.Sprintf("%d", int64(math.Round(f))), nil
}

// Integer renders a whole number without grouping.
func Integer(v interface{}) (string, error) {
	f, err := ToFloat(v)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(int64(math.Round(f)), 10), nil
}

// Percent renders "12.5%". Values are taken as already expressed in percent.
func Percent(v interface{}) (string, error) {
	f, err := ToFloat(v)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64) + "%", nil
}

package docx

import "strings"

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// ToRoman converts n using subtractive notation. n <= 0 yields "".
func ToRoman(n int) string {
	var sb strings.Builder
	for _, e := range romanTable {
		for n >= e.value {
			sb.WriteString(e.symbol)
			n -= e.value
		}
	}
	return sb.String()
}

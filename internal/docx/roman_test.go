package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fromRoman(s string) int {
	values := map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}
	total := 0
	for i := 0; i < len(s); i++ {
		v := values[s[i]]
		if i+1 < len(s) && values[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	return total
}

func TestToRoman(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{400, "CD"},
		{1994, "MCMXCIV"},
		{0, ""},
		{-3, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToRoman(tt.in), "ToRoman(%d)", tt.in)
	}
}

func TestToRoman_RoundTrip(t *testing.T) {
	for n := 1; n <= MaxAgendaItems; n++ {
		assert.Equal(t, n, fromRoman(ToRoman(n)))
	}
}

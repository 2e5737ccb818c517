package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"anonima de capital variable", "Grupo Industrial Norte, S.A. de C.V.", "GIN"},
		{"lower case words", "comercializadora del bajío S.A.", "CDB"},
		{"responsabilidad limitada", "Servicios Legales S de RL de CV", "SL"},
		{"only legal form", "S.A. de C.V.", "CAS"},
		{"empty", "", "CAS"},
		{"accented initial", "Óptica Ávila SA", "ÓÁ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in))
		})
	}
}

func TestStoredAbbreviation(t *testing.T) {
	assert.Equal(t, "GIN", storedAbbreviation(" gin ", "Grupo Industrial Norte"))
	assert.Equal(t, "GRU", storedAbbreviation("", "Grupo Industrial Norte"))
	assert.Equal(t, "AB", storedAbbreviation("", "ab"))
	assert.Equal(t, "CAS", storedAbbreviation("", "  "))
}

func TestUnderscored(t *testing.T) {
	assert.Equal(t, "Grupo_Norte", underscored(" Grupo Norte ", "documento"))
	assert.Equal(t, "documento", underscored("", "documento"))
}

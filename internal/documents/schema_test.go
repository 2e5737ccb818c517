package documents

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "legal-docs-workers/internal/common/errors"
)

func TestValidateBlocks(t *testing.T) {
	tests := []struct {
		name    string
		blocks  map[string]json.RawMessage
		fields  map[string]interface{}
		wantBad []string
	}{
		{
			name: "well formed",
			blocks: map[string]json.RawMessage{
				BlockAgenda:      json.RawMessage(`[{"numero":1,"titulo":"Informe"},"Asuntos generales"]`),
				BlockResolutions: json.RawMessage(`[{"clave":"I.1","texto":"Se aprueba.","punto":1}]`),
				BlockGuests:      json.RawMessage(`[{"nombre":"Ana Ruiz","cargo":null}]`),
			},
		},
		{
			name:   "no blocks",
			fields: map[string]interface{}{"razon_social": "Grupo Norte"},
		},
		{
			name: "agenda is an object",
			blocks: map[string]json.RawMessage{
				BlockAgenda: json.RawMessage(`{"numero":1}`),
			},
			wantBad: []string{BlockAgenda},
		},
		{
			name: "guest without name",
			blocks: map[string]json.RawMessage{
				BlockGuests: json.RawMessage(`[{"cargo":"Contador"}]`),
			},
			wantBad: []string{BlockGuests},
		},
		{
			name: "resolutions are not json",
			blocks: map[string]json.RawMessage{
				BlockResolutions: json.RawMessage(`[{"texto":`),
			},
			wantBad: []string{BlockResolutions},
		},
		{
			name: "block inlined with the fields",
			fields: map[string]interface{}{
				BlockAgenda: []interface{}{map[string]interface{}{"titulo": 3.0}},
			},
			wantBad: []string{BlockAgenda},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateBlocks(Record{Fields: tt.fields, Blocks: tt.blocks})
			require.Len(t, warnings, len(tt.wantBad))
			for i, w := range warnings {
				assert.Equal(t, apperrors.ErrCodeMalformedInput, w.Code)
				assert.Contains(t, w.Details, "block: "+tt.wantBad[i])
			}
		})
	}
}

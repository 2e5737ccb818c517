// Package documents turns stored legal records into generated DOCX files:
// it renders each document type's placeholder map, injects the order of
// business where the template asks for it and assembles the output.
package documents

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Block names shared by the minutes document types.
const (
	BlockAgenda      = "orden_dia"
	BlockResolutions = "resoluciones"
	BlockGuests      = "invitados"
)

// Record is one stored legal record: flat scalar fields plus named JSON blocks.
type Record struct {
	ID      string                     `json:"id" yaml:"id"`
	OwnerID string                     `json:"ownerId" yaml:"ownerId"`
	Type    string                     `json:"type" yaml:"type"`
	Fields  map[string]interface{}     `json:"fields" yaml:"fields"`
	Blocks  map[string]json.RawMessage `json:"blocks,omitempty" yaml:"-"`
}

// Field returns a scalar field, or nil when absent.
func (r Record) Field(name string) interface{} {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

// String returns a field as trimmed text.
func (r Record) String(name string) string {
	switch v := r.Field(name).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Block returns a structured block. Blocks stored as raw JSON take
// precedence over values decoded inline with the scalar fields, which is how
// YAML fixtures carry them.
func (r Record) Block(name string) interface{} {
	if raw, ok := r.Blocks[name]; ok {
		return raw
	}
	return r.Field(name)
}

// DecodeBlock decodes a block into a generic JSON value.
func (r Record) DecodeBlock(name string) (interface{}, error) {
	switch v := r.Block(name).(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return decodeJSON(v)
	case []byte:
		return decodeJSON(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return decodeJSON([]byte(v))
	default:
		return v, nil
	}
}

func decodeJSON(data []byte) (interface{}, error) {
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

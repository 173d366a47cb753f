package export

import (
	"encoding/json"
	"fmt"

	"github.com/vecsift/vecsift/metadata"
)

// Reserved top-level keys in the flat entry encoding. Projected fields
// never use these names.
const (
	vectorKey   = "vector"
	documentKey = "document"
)

// Entry is one exported record: the key fields present on the source
// row, the full embedding vector and the document string.
type Entry struct {
	Fields   map[string]metadata.Value
	Vector   []float32
	Document string
}

// Set is an ordered, bounded sequence of entries.
type Set []Entry

// MarshalJSON encodes the entry flat: projected fields at the top level
// plus "vector" (a plain number sequence) and "document".
func (e Entry) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+2)
	for k, v := range e.Fields {
		if k == vectorKey || k == documentKey {
			return nil, fmt.Errorf("export: field name %q is reserved", k)
		}
		out[k] = v
	}
	out[vectorKey] = e.Vector
	out[documentKey] = e.Document
	return json.Marshal(out)
}

// UnmarshalJSON decodes the flat form produced by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Vector = nil
	e.Document = ""
	e.Fields = make(map[string]metadata.Value, len(raw))

	for k, msg := range raw {
		switch k {
		case vectorKey:
			if err := json.Unmarshal(msg, &e.Vector); err != nil {
				return fmt.Errorf("export: invalid vector: %w", err)
			}
		case documentKey:
			if err := json.Unmarshal(msg, &e.Document); err != nil {
				return fmt.Errorf("export: invalid document: %w", err)
			}
		default:
			var v metadata.Value
			if err := json.Unmarshal(msg, &v); err != nil {
				return fmt.Errorf("export: field %q: %w", k, err)
			}
			e.Fields[k] = v
		}
	}
	return nil
}

package conf

import (
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"
)

// EncodeJSON writes m as an indented JSON object in insertion order.
// Null entries are written as JSON null.
func EncodeJSON(w io.Writer, m *Map) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// EncodeTOML writes m as a flat TOML table. TOML has no null, so null
// entries are dropped; keys are sorted by the encoder.
func EncodeTOML(w io.Writer, m *Map) error {
	return toml.NewEncoder(w).Encode(m.ToAny(false))
}

package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identificador asignado por el servidor. La API lo envía como número o como string
// según el recurso; en el cliente siempre se maneja como string.
type ID string

// UnmarshalJSON acepta 42, "42" y null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String devuelve el id como string.
func (id ID) String() string { return string(id) }

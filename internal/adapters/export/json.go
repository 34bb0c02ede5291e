package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v as indented JSON without HTML escaping, so French text and
// the " | " separators stay readable.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

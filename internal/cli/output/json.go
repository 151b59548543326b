package output

import (
	"encoding/json"
	"io"
)

// PrintJSON writes data as indented JSON. URLs are written unescaped.
func PrintJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

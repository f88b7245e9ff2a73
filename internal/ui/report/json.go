package report

import (
	"encoding/json"
	"io"

	"undestructure/internal/core/app"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, rep *app.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

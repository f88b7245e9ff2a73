package report

import (
	"fmt"
	"io"

	"undestructure/internal/core/app"
	"undestructure/internal/core/errors"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders rep in the named format.
func Write(w io.Writer, format string, rep *app.Report) error {
	switch format {
	case "", FormatText:
		return WriteText(w, rep)
	case FormatJSON:
		return WriteJSON(w, rep)
	default:
		return errors.AddContext(
			errors.New(errors.CodeValidationError, fmt.Sprintf("unknown output format %q", format)),
			errors.CtxOption, "output.format",
		)
	}
}

package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Alert kinds
const (
	AlertError   = "error"
	AlertSuccess = "success"
	AlertInfo    = "info"
)

// Alert renders a dismissable message fragment, used for HTMX swaps
func Alert(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="alert alert-`+templ.EscapeString(kind)+`" role="alert"><span>`+
			templ.EscapeString(message)+`</span></div>`)
		return err
	})
}

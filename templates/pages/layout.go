package pages

import (
	"context"
	"io"
	"strings"

	"casa_portal_go/middleware"

	"github.com/a-h/templ"
)

const htmxScript = middleware.HTMXOrigin + "/htmx.org@1.9.12"

// page wraps body in the shared document shell
func page(title string, body func(ctx context.Context, b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>` + templ.EscapeString(title) + `</title>`)
		b.WriteString(`<link rel="stylesheet" href="/static/css/style.css?v=` + esc(middleware.GetAssetVersion(ctx, "css/style.css")) + `">`)
		b.WriteString(`<script src="` + htmxScript + `" nonce="` + templ.EscapeString(middleware.GetNonce(ctx)) + `"></script>`)
		b.WriteString(`</head><body>`)
		body(ctx, &b)
		b.WriteString(`<script src="/static/js/app.js?v=` + esc(middleware.GetAssetVersion(ctx, "js/app.js")) + `" nonce="` + esc(middleware.GetNonce(ctx)) + `"></script>`)
		b.WriteString(`</body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}

package pages

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// LoginView is the data of the sign-in page
type LoginView struct {
	Title            string
	CSRFToken        string
	Email            string
	OrganizationSlug string
	Error            string
}

// Login renders the sign-in page. The form posts with HTMX and swaps errors into #login-messages.
func Login(view LoginView) templ.Component {
	if view.Title == "" {
		view.Title = "Sign in | CASA Portal"
	}
	return page(view.Title, func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<main class="auth"><h1>CASA Portal</h1>`)
		b.WriteString(`<div id="login-messages">`)
		if view.Error != "" {
			b.WriteString(`<div class="alert alert-error" role="alert"><span>` + esc(view.Error) + `</span></div>`)
		}
		b.WriteString(`</div>`)
		b.WriteString(`<form method="post" action="/login" hx-post="/login" hx-target="#login-messages">`)
		b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(view.CSRFToken) + `">`)
		b.WriteString(`<label for="email">Email</label>`)
		b.WriteString(`<input id="email" type="email" name="email" required autocomplete="username" value="` + esc(view.Email) + `">`)
		b.WriteString(`<label for="password">Password</label>`)
		b.WriteString(`<input id="password" type="password" name="password" required autocomplete="current-password">`)
		b.WriteString(`<label for="organization_slug">Organization (optional)</label>`)
		b.WriteString(`<input id="organization_slug" type="text" name="organization_slug" value="` + esc(view.OrganizationSlug) + `">`)
		b.WriteString(`<button type="submit">Sign in</button></form></main>`)
	})
}

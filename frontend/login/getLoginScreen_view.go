package login

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/html"
)

// GetLoginScreen renders the standalone login page.
func GetLoginScreen(errorMessage string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		errBlock := ""
		if errorMessage != "" {
			errBlock = fmt.Sprintf(`<p class="error">%s</p>`, templ.EscapeString(errorMessage))
		}
		_, err := fmt.Fprintf(w, `<!doctype html><html lang="id"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Login Kasir</title><link rel="stylesheet" href="/assets/app.css"></head><body>
<main class="login-box">
  <h1>Login Kasir</h1>
  %s
  <form method="POST" action="/login">
    <label for="username">Username</label>
    <input id="username" name="username" type="text" autocomplete="username" required>
    <label for="password">Password</label>
    <input id="password" name="password" type="password" autocomplete="current-password" required>
    <button type="submit">Masuk</button>
  </form>
</main>
%s
</body></html>`, errBlock, html.CSRFFormScript())
		return err
	})
}

package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps a page body with the shared document chrome: head, theme
// class, top navigation, the generic modal dialog region and the CSRF
// form script.
func Layout(title, theme string, nav, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!doctype html><html lang="id"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/assets/app.css"></head><body class="%s">`,
			templ.EscapeString(title), bodyClass(theme)); err != nil {
			return err
		}
		if nav != nil {
			if err := nav.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main class="content">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</main>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, GenericModal()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, CSRFFormScript()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<script src="/assets/app.js"></script></body></html>`); err != nil {
			return err
		}
		return nil
	})
}

func bodyClass(theme string) string {
	if theme == "light" {
		return "light-mode"
	}
	return ""
}

// Raw renders a pre-built HTML string as a component.
func Raw(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// GenericModal is the single shared dialog region every confirmation
// and alert renders into.
func GenericModal() string {
	return `<div id="generic-modal" class="modal-backdrop" style="display:none">
  <div class="modal-box">
    <h3 id="generic-modal-title"></h3>
    <p id="generic-modal-message"></p>
    <div id="generic-modal-actions" class="modal-actions"></div>
  </div>
</div>`
}

package nav

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/confirm"
	"github.com/Jwfathoni/kasir-pos/infrastructure/rbac"
	"github.com/Jwfathoni/kasir-pos/models"
)

// TopNavData is shared with page renderers.
type TopNavData struct {
	StoreName   string
	DisplayName string
	Role        string
	Theme       string
}

func BuildTopNavData(session models.Session, storeName, theme string) TopNavData {
	displayName := session.User.DisplayName
	if displayName == "" {
		displayName = session.User.Username
	}
	return TopNavData{
		StoreName:   storeName,
		DisplayName: displayName,
		Role:        session.User.Role,
		Theme:       theme,
	}
}

// TopNav renders the shared navigation bar with the theme toggle and
// the logout link (confirmed via modal before submitting).
func TopNav(data TopNavData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		themeIcon := "🌙"
		if data.Theme == "light" {
			themeIcon = "🌞"
		}
		_, err := fmt.Fprintf(w, `<nav class="topnav">
  <span class="brand">%s</span>
  <a href="/cashier">Kasir</a>
  <a href="/products">Produk</a>
  <a href="/reports">Laporan</a>
  %s
  <span class="spacer"></span>
  <form method="POST" action="/theme/toggle" class="inline"><button id="theme-toggle" type="submit">%s</button></form>
  <span class="user">%s</span>
  <form method="POST" action="/logout" class="inline" data-confirm-action="%s"><button id="logout-link" type="submit">Logout</button></form>
</nav>`,
			templ.EscapeString(data.StoreName),
			settingsLink(data.Role),
			themeIcon,
			templ.EscapeString(data.DisplayName),
			confirm.ActionLogout)
		return err
	})
}

func settingsLink(role string) string {
	if role != rbac.RoleAdmin {
		return ""
	}
	return `<a href="/settings">Pengaturan</a>`
}

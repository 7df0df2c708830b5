package settings

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/confirm"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/html"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
	"github.com/Jwfathoni/kasir-pos/models"
)

type SettingsPageData struct {
	Nav         nav.TopNavData
	Theme       string
	Setting     models.Setting
	DisplayName string
	Message     string
	IsError     bool
	Timezones   []string
}

func SettingsPage(data SettingsPageData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		if data.Message != "" {
			class := "banner success"
			if data.IsError {
				class = "banner error"
			}
			fmt.Fprintf(&b, `<div class="%s">%s</div>`, class, templ.EscapeString(data.Message))
		}

		fmt.Fprintf(&b, `<section class="store-profile"><h2>Profil Toko</h2>`+
			`<form method="POST" action="/settings" data-confirm-action="%s">`, confirm.ActionUpdateSettings)
		fmt.Fprintf(&b, `<label>Nama Toko<input name="store_name" value="%s" required></label>`,
			templ.EscapeString(data.Setting.StoreName))
		fmt.Fprintf(&b, `<label>Alamat<input name="store_address" value="%s" required></label>`,
			templ.EscapeString(data.Setting.StoreAddress))
		fmt.Fprintf(&b, `<label>Telepon<input name="store_phone" value="%s"></label>`,
			templ.EscapeString(data.Setting.StorePhone))

		b.WriteString(`<label>Zona Waktu<select name="timezone">`)
		for _, tz := range data.Timezones {
			selected := ""
			if tz == data.Setting.Timezone {
				selected = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, tz, selected, tz)
		}
		b.WriteString(`</select></label>` +
			`<button type="submit">Simpan</button></form></section>`)

		fmt.Fprintf(&b, `<section class="display-name"><h2>Nama Kasir</h2>`+
			`<form method="POST" action="/settings/update_display_name" data-confirm-action="%s">`+
			`<input name="new_display_name" value="%s" required>`+
			`<button type="submit">Update</button></form></section>`,
			confirm.ActionUpdateDisplayName, templ.EscapeString(data.DisplayName))

		fmt.Fprintf(&b, `<section class="database"><h2>Manajemen Database</h2>`+
			`<a href="/settings/export_db">Download Backup</a>`+
			`<form method="POST" action="/settings/import_db" enctype="multipart/form-data" data-confirm-action="%s">`+
			`<input type="file" name="file" accept=".db,.sqlite,.sqlite3">`+
			`<button type="submit">Import Database</button></form>`+
			`<form method="POST" action="/settings/clear_database" data-confirm-action="%s">`+
			`<button type="submit" class="danger">Hapus Semua Data</button></form></section>`,
			confirm.ActionImportDatabase, confirm.ActionClearDatabase)

		_, err := io.WriteString(w, b.String())
		return err
	})
	return html.Layout("Pengaturan", data.Theme, nav.TopNav(data.Nav), body)
}

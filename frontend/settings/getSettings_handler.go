package settings

import (
	"log/slog"
	"net/http"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/theme"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

// bannerFor maps the msg= redirect code to its banner text and tone.
func bannerFor(code string) (message string, isError bool) {
	switch code {
	case "updated":
		return "Pengaturan toko berhasil disimpan.", false
	case "display_name_updated":
		return "Nama kasir berhasil diupdate.", false
	case "imported":
		return "Database berhasil diimport.", false
	case "database_cleared":
		return "Semua data berhasil dihapus.", false
	case "error_import":
		return "Gagal mengimport database. Pastikan file backup valid.", true
	case "error_clear":
		return "Gagal menghapus data.", true
	case "error":
		return "Terjadi kesalahan. Silakan coba lagi.", true
	default:
		return "", false
	}
}

// SettingsPageQueryHandler renders the store profile form and the
// database management panel.
func SettingsPageQueryHandler(db *sqlite.DB, settingsCache *cache.SettingsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		setting, err := LoadSettings(r.Context(), db, settingsCache)
		if err != nil {
			slog.Error("load settings failed", slog.Any("err", err))
			http.Error(w, "failed to load settings", http.StatusInternalServerError)
			return
		}

		displayName := session.User.DisplayName
		if displayName == "" {
			displayName = session.User.Username
		}

		message, isError := bannerFor(r.URL.Query().Get("msg"))
		currentTheme := theme.FromRequest(r)
		data := SettingsPageData{
			Nav:         nav.BuildTopNavData(session, setting.StoreName, currentTheme),
			Theme:       currentTheme,
			Setting:     setting,
			DisplayName: displayName,
			Message:     message,
			IsError:     isError,
			Timezones:   TimezoneChoices(),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := SettingsPage(data).Render(r.Context(), w); err != nil {
			slog.Error("render settings page failed", slog.Any("err", err))
		}
	}
}

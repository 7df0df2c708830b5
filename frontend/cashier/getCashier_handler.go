package cashier

import (
	"log/slog"
	"net/http"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/theme"
	"github.com/Jwfathoni/kasir-pos/frontend/settings"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

// errorMessageFor maps the redirect error code to its banner text.
func errorMessageFor(code string) string {
	switch code {
	case "empty":
		return "Keranjang kosong!"
	case "paid-less":
		return "Jumlah bayar kurang dari total!"
	case "invalid":
		return "Data keranjang tidak valid!"
	default:
		return ""
	}
}

// CashierPageQueryHandler renders the cashier screen with the active
// product catalog and an empty cart.
func CashierPageQueryHandler(db *sqlite.DB, settingsCache *cache.SettingsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		products, err := listActiveProducts(r.Context(), db)
		if err != nil {
			slog.Error("list active products failed", slog.Any("err", err))
			http.Error(w, "failed to load products", http.StatusInternalServerError)
			return
		}

		setting, err := settings.LoadSettings(r.Context(), db, settingsCache)
		if err != nil {
			slog.Error("load settings failed", slog.Any("err", err))
			http.Error(w, "failed to load settings", http.StatusInternalServerError)
			return
		}

		currentTheme := theme.FromRequest(r)
		data := CashierPageData{
			Nav:          nav.BuildTopNavData(session, setting.StoreName, currentTheme),
			Theme:        currentTheme,
			Products:     products,
			Cart:         NewCart().Render(),
			ErrorMessage: errorMessageFor(r.URL.Query().Get("err")),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := CashierPage(data).Render(r.Context(), w); err != nil {
			slog.Error("render cashier page failed", slog.Any("err", err))
		}
	}
}

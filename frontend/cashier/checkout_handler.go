package cashier

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
	"github.com/Jwfathoni/kasir-pos/frontend/settings"
	"github.com/Jwfathoni/kasir-pos/infrastructure/audit"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

// CheckoutCommandHandler re-validates the submitted cart and records
// the transaction. Every client-side check runs again here.
func CheckoutCommandHandler(db *sqlite.DB, settingsCache *cache.SettingsCache, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/cashier?err=invalid", http.StatusSeeOther)
			return
		}

		items, err := ParseCartPayload(r.FormValue("cart_json"))
		if err != nil {
			http.Redirect(w, r, "/cashier?err=invalid", http.StatusSeeOther)
			return
		}
		if len(items) == 0 {
			http.Redirect(w, r, "/cashier?err=empty", http.StatusSeeOther)
			return
		}
		for _, it := range items {
			if it.Code == "" || it.Price < 0 || it.Qty <= 0 {
				http.Redirect(w, r, "/cashier?err=invalid", http.StatusSeeOther)
				return
			}
		}

		var total int64
		for _, it := range items {
			total += it.Price * it.Qty
		}
		paid := money.ParseUserInput(r.FormValue("paid"))
		if paid < total {
			http.Redirect(w, r, "/cashier?err=paid-less", http.StatusSeeOther)
			return
		}

		paymentMethod := strings.TrimSpace(r.FormValue("payment_method"))
		if paymentMethod == "" {
			paymentMethod = "cash"
		}

		setting, err := settings.LoadSettings(r.Context(), db, settingsCache)
		if err != nil {
			slog.Error("load settings failed", slog.Any("err", err))
			http.Redirect(w, r, "/cashier?err=invalid", http.StatusSeeOther)
			return
		}
		now := time.Now().In(settings.Location(setting.Timezone))

		cashierName := session.User.DisplayName
		if cashierName == "" {
			cashierName = session.User.Username
		}

		trx, err := createTransaction(r.Context(), db, auditSvc, session.UserID, cashierName, paymentMethod, paid, items, now)
		if err != nil {
			slog.Error("checkout failed", slog.String("user", session.User.Username), slog.Any("err", err))
			http.Redirect(w, r, "/cashier?err=invalid", http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/receipt/%d", trx.ID), http.StatusSeeOther)
	}
}

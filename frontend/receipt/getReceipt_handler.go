package receipt

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/theme"
	"github.com/Jwfathoni/kasir-pos/frontend/settings"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

// backURL decides where the back link points: the cashier by default,
// or the reports page the receipt was opened from.
func backURL(fromPage, mode string) string {
	if fromPage == "reports" {
		return fmt.Sprintf("/reports?mode=%s", mode)
	}
	return "/cashier"
}

// ReceiptPageQueryHandler renders the receipt for one transaction.
// Unknown transaction ids go back to the cashier screen.
func ReceiptPageQueryHandler(db *sqlite.DB, settingsCache *cache.SettingsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		trxID, err := strconv.ParseInt(chi.URLParam(r, "trxID"), 10, 64)
		if err != nil {
			http.Redirect(w, r, "/cashier", http.StatusSeeOther)
			return
		}

		trx, err := loadTransaction(r.Context(), db, trxID)
		if errors.Is(err, sql.ErrNoRows) {
			http.Redirect(w, r, "/cashier", http.StatusSeeOther)
			return
		}
		if err != nil {
			slog.Error("load transaction failed", slog.Any("err", err))
			http.Error(w, "failed to load receipt", http.StatusInternalServerError)
			return
		}

		setting, err := settings.LoadSettings(r.Context(), db, settingsCache)
		if err != nil {
			slog.Error("load settings failed", slog.Any("err", err))
			http.Error(w, "failed to load settings", http.StatusInternalServerError)
			return
		}
		loc := settings.Location(setting.Timezone)

		mode := r.URL.Query().Get("mode")
		if mode == "" {
			mode = "daily"
		}

		lines := make([]ReceiptLine, 0, len(trx.Items))
		for _, item := range trx.Items {
			lines = append(lines, ReceiptLine{
				Name:          item.ProductName,
				Qty:           item.Qty,
				PriceLabel:    money.Format(item.Price),
				SubtotalLabel: money.Format(item.Subtotal),
			})
		}

		currentTheme := theme.FromRequest(r)
		data := ReceiptPageData{
			Nav:          nav.BuildTopNavData(session, setting.StoreName, currentTheme),
			Theme:        currentTheme,
			StoreName:    setting.StoreName,
			StoreAddress: setting.StoreAddress,
			StorePhone:   setting.StorePhone,
			TrxID:        trx.ID,
			TrxNo:        trx.TrxNo,
			CreatedAt:    trx.CreatedAt.In(loc).Format("02/01/2006 15:04"),
			Cashier:      trx.Cashier,
			Lines:        lines,
			TotalLabel:   money.Format(trx.Total),
			PaidLabel:    money.Format(trx.Paid),
			ChangeLabel:  money.Format(trx.Change),
			BackURL:      backURL(r.URL.Query().Get("from"), mode),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ReceiptPage(data).Render(r.Context(), w); err != nil {
			slog.Error("render receipt page failed", slog.Any("err", err))
		}
	}
}

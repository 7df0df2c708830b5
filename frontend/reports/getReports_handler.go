package reports

import (
	"log/slog"
	"net/http"
	"time"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/nav"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/theme"
	"github.com/Jwfathoni/kasir-pos/frontend/settings"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

// PeriodTotals are the money figures shown above the transaction list.
type PeriodTotals struct {
	// Omzet is the summed transaction totals of the period.
	Omzet int64
	// PendapatanRiil is omzet minus the cost of the goods sold.
	PendapatanRiil int64
	// PengeluaranStok is the expense accrued by stock updates in the
	// same period.
	PengeluaranStok int64
	// Jumlah counts the transactions.
	Jumlah int64
}

func computePeriodTotals(trxList []models.Transaction, stockUpdates []models.StockUpdate) PeriodTotals {
	var totals PeriodTotals
	totals.Jumlah = int64(len(trxList))
	var modal int64
	for _, t := range trxList {
		totals.Omzet += t.Total
		for _, item := range t.Items {
			modal += item.CostPrice * item.Qty
		}
	}
	totals.PendapatanRiil = totals.Omzet - modal
	for _, su := range stockUpdates {
		totals.PengeluaranStok += su.Expense
	}
	return totals
}

// ReportsPageQueryHandler renders the reports screen for the chosen
// mode. The five analysis panels are fetched by the page afterwards
// via /api/reports/*.
func ReportsPageQueryHandler(db *sqlite.DB, settingsCache *cache.SettingsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		setting, err := settings.LoadSettings(r.Context(), db, settingsCache)
		if err != nil {
			slog.Error("load settings failed", slog.Any("err", err))
			http.Error(w, "failed to load settings", http.StatusInternalServerError)
			return
		}
		loc := settings.Location(setting.Timezone)
		period := PeriodFor(r.URL.Query().Get("mode"), time.Now().In(loc))

		trxList, err := periodTransactions(r.Context(), db, period)
		if err != nil {
			slog.Error("load period transactions failed", slog.Any("err", err))
			http.Error(w, "failed to load report", http.StatusInternalServerError)
			return
		}
		stockUpdates, err := periodStockUpdates(r.Context(), db, period)
		if err != nil {
			slog.Error("load period stock updates failed", slog.Any("err", err))
			http.Error(w, "failed to load report", http.StatusInternalServerError)
			return
		}

		totals := computePeriodTotals(trxList, stockUpdates)
		rows := make([]TransactionRow, 0, len(trxList))
		for _, t := range trxList {
			rows = append(rows, TransactionRow{
				TrxNo:         t.TrxNo,
				CreatedAt:     t.CreatedAt.In(loc).Format("2006-01-02 15:04"),
				Cashier:       t.Cashier,
				PaymentMethod: t.PaymentMethod,
				TotalLabel:    money.Format(t.Total),
				ID:            t.ID,
			})
		}

		currentTheme := theme.FromRequest(r)
		data := ReportsPageData{
			Nav:             nav.BuildTopNavData(session, setting.StoreName, currentTheme),
			Theme:           currentTheme,
			Title:           period.Title,
			Mode:            period.Mode,
			Transactions:    rows,
			Omzet:           money.Format(totals.Omzet),
			PendapatanRiil:  money.Format(totals.PendapatanRiil),
			PengeluaranStok: money.Format(totals.PengeluaranStok),
			Jumlah:          totals.Jumlah,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ReportsPage(data).Render(r.Context(), w); err != nil {
			slog.Error("render reports page failed", slog.Any("err", err))
		}
	}
}

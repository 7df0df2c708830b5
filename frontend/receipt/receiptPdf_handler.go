package receipt

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Jwfathoni/kasir-pos/frontend/settings"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

// ReceiptPdfQueryHandler serves GET /receipt/{trxID}/pdf as a
// downloadable PDF copy of the receipt.
func ReceiptPdfQueryHandler(db *sqlite.DB, settingsCache *cache.SettingsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trxID, err := strconv.ParseInt(chi.URLParam(r, "trxID"), 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		trx, err := loadTransaction(r.Context(), db, trxID)
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
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

		pdfBytes, err := renderReceiptPDF(trx, setting, settings.Location(setting.Timezone))
		if err != nil {
			slog.Error("render receipt pdf failed", slog.Any("err", err))
			http.Error(w, "failed to render receipt", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Struk_%s.pdf", trx.TrxNo))
		if _, err := w.Write(pdfBytes); err != nil {
			slog.Error("write receipt pdf failed", slog.Any("err", err))
		}
	}
}

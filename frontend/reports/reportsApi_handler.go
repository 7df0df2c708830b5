package reports

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

func writeReportJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode report failed", slog.Any("err", err))
	}
}

func reportError(w http.ResponseWriter, name string, err error) {
	slog.Error("report query failed", slog.String("report", name), slog.Any("err", err))
	http.Error(w, "report unavailable", http.StatusInternalServerError)
}

// SummaryReportQueryHandler serves GET /api/reports/summary. The
// sold-this-month window follows the store timezone.
func SummaryReportQueryHandler(db *sqlite.DB, settingsCache *cache.SettingsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().In(storeLocation(r.Context(), db, settingsCache))
		out, err := summaryReport(r.Context(), db, now)
		if err != nil {
			reportError(w, "summary", err)
			return
		}
		writeReportJSON(w, out)
	}
}

// TopProductsReportQueryHandler serves GET /api/reports/top_products.
func TopProductsReportQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := topProductsReport(r.Context(), db)
		if err != nil {
			reportError(w, "top_products", err)
			return
		}
		writeReportJSON(w, out)
	}
}

// ProblemProductsReportQueryHandler serves GET /api/reports/problem_products.
func ProblemProductsReportQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := problemProductsReport(r.Context(), db)
		if err != nil {
			reportError(w, "problem_products", err)
			return
		}
		writeReportJSON(w, out)
	}
}

// StockReportQueryHandler serves GET /api/reports/stock.
func StockReportQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := stockReport(r.Context(), db)
		if err != nil {
			reportError(w, "stock", err)
			return
		}
		writeReportJSON(w, out)
	}
}

// SalesTrendReportQueryHandler serves GET /api/reports/sales_trend.
func SalesTrendReportQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := salesTrendReport(r.Context(), db)
		if err != nil {
			reportError(w, "sales_trend", err)
			return
		}
		writeReportJSON(w, out)
	}
}

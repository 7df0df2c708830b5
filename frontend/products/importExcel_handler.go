package products

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

const maxImportBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func isExcelFilename(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls")
}

// ImportProductsCommandHandler receives the product sheet upload and
// answers the JSON shape the upload flow expects: {message} on
// success, {message, detail} when rows failed, {detail} when the file
// itself is rejected.
func ImportProductsCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Upload tidak valid"})
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "File wajib diupload"})
			return
		}
		defer file.Close()

		if !isExcelFilename(header.Filename) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Hanya file Excel (.xlsx, .xls) yang diizinkan!"})
			return
		}

		summary, err := ImportProductsFromExcel(r.Context(), db, file)
		if err != nil {
			var se *sheetError
			if errors.As(err, &se) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"detail": se.detail})
				return
			}
			slog.Error("product import failed", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "Gagal mengimpor produk"})
			return
		}

		message := fmt.Sprintf("Berhasil mengimpor %d produk baru dan memperbarui %d produk.", summary.Added, summary.Updated)
		if len(summary.Errors) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": fmt.Sprintf("Berhasil mengimpor %d produk baru dan memperbarui %d produk. Namun, ada beberapa kesalahan:", summary.Added, summary.Updated),
				"detail":  "Beberapa produk gagal diimpor:\n" + strings.Join(summary.Errors, "\n"),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": message})
	}
}

// ImportStockUpdatesCommandHandler receives the stock sheet upload.
// The response carries total_pengeluaran on both outcomes so the page
// can show the accrued expense.
func ImportStockUpdatesCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		updatedBy := session.User.DisplayName
		if updatedBy == "" {
			updatedBy = session.User.Username
		}
		if updatedBy == "" {
			updatedBy = "System"
		}

		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Upload tidak valid"})
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "File wajib diupload"})
			return
		}
		defer file.Close()

		if !isExcelFilename(header.Filename) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Hanya file Excel (.xlsx, .xls) yang diizinkan!"})
			return
		}

		summary, err := ImportStockUpdatesFromExcel(r.Context(), db, file, updatedBy)
		if err != nil {
			var se *sheetError
			if errors.As(err, &se) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"detail": se.detail})
				return
			}
			slog.Error("stock import failed", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "Gagal mengupdate stok"})
			return
		}

		message := fmt.Sprintf("Berhasil mengupdate %d produk.", summary.Updated)
		if summary.TotalPengeluaran > 0 {
			message += fmt.Sprintf(" Total pengeluaran untuk update stok: %s", money.Format(summary.TotalPengeluaran))
		}

		if len(summary.Errors) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message":           message,
				"detail":            "Beberapa produk gagal diupdate:\n" + strings.Join(summary.Errors, "\n"),
				"total_pengeluaran": summary.TotalPengeluaran,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":           message,
			"total_pengeluaran": summary.TotalPengeluaran,
		})
	}
}

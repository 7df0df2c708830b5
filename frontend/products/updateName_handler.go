package products

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

type updateNameResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeUpdateNameJSON(w http.ResponseWriter, status int, resp updateNameResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// UpdateProductNameCommandHandler backs the inline rename. The form
// arrives as multipart (pid, name) and the answer is always JSON.
func UpdateProductNameCommandHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			if err := r.ParseForm(); err != nil {
				writeUpdateNameJSON(w, http.StatusBadRequest, updateNameResponse{Message: "Data form tidak valid"})
				return
			}
		}

		pid, err := strconv.ParseInt(r.FormValue("pid"), 10, 64)
		if err != nil || pid <= 0 {
			writeUpdateNameJSON(w, http.StatusNotFound, updateNameResponse{Message: "Produk tidak ditemukan"})
			return
		}

		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			writeUpdateNameJSON(w, http.StatusBadRequest, updateNameResponse{Message: "Nama produk tidak boleh kosong"})
			return
		}

		found, err := updateProductName(r.Context(), db, pid, name)
		if err != nil {
			slog.Error("update product name failed", slog.Int64("pid", pid), slog.Any("err", err))
			writeUpdateNameJSON(w, http.StatusInternalServerError, updateNameResponse{Message: "Gagal mengupdate nama produk"})
			return
		}
		if !found {
			writeUpdateNameJSON(w, http.StatusNotFound, updateNameResponse{Message: "Produk tidak ditemukan"})
			return
		}

		writeUpdateNameJSON(w, http.StatusOK, updateNameResponse{Success: true, Message: "Nama produk berhasil diupdate"})
	}
}

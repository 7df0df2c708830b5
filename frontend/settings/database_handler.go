package settings

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uptrace/bun"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/infrastructure/audit"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/session"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

const maxDatabaseUploadBytes = 64 << 20

func isSQLiteFilename(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".db") ||
		strings.HasSuffix(lower, ".sqlite") ||
		strings.HasSuffix(lower, ".sqlite3")
}

// ExportDatabaseQueryHandler streams the database file as a backup
// download.
func ExportDatabaseQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(db.Path); err != nil {
			http.Error(w, "File database tidak ditemukan.", http.StatusNotFound)
			return
		}

		fileName := fmt.Sprintf("pos_backup_%s.db", time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
		http.ServeFile(w, r, db.Path)
	}
}

// ImportDatabaseCommandHandler replaces the database with an uploaded
// backup. The upload lands in a temp file first so a failed transfer
// never touches the live database.
func ImportDatabaseCommandHandler(db *sqlite.DB, settingsCache *cache.SettingsCache, sessionCache *cache.UserSessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxDatabaseUploadBytes); err != nil {
			http.Redirect(w, r, "/settings?msg=error_import", http.StatusSeeOther)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Redirect(w, r, "/settings?msg=error_import", http.StatusSeeOther)
			return
		}
		defer file.Close()

		if !isSQLiteFilename(header.Filename) {
			http.Redirect(w, r, "/settings?msg=error_import", http.StatusSeeOther)
			return
		}

		tmpPath := filepath.Join(filepath.Dir(db.Path), "pos_import_tmp.db")
		tmp, err := os.Create(tmpPath)
		if err != nil {
			slog.Error("create import temp file failed", slog.Any("err", err))
			http.Redirect(w, r, "/settings?msg=error_import", http.StatusSeeOther)
			return
		}
		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			slog.Error("write import temp file failed", slog.Any("err", err))
			http.Redirect(w, r, "/settings?msg=error_import", http.StatusSeeOther)
			return
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpPath)
			http.Redirect(w, r, "/settings?msg=error_import", http.StatusSeeOther)
			return
		}

		if err := db.ReplaceFromFile(r.Context(), tmpPath); err != nil {
			os.Remove(tmpPath)
			slog.Error("replace database failed", slog.Any("err", err))
			http.Redirect(w, r, "/settings?msg=error_import", http.StatusSeeOther)
			return
		}

		// The imported file carries its own settings and sessions.
		settingsCache.Invalidate()
		invalidateSession(r, sessionCache)

		http.Redirect(w, r, "/settings?msg=imported", http.StatusSeeOther)
	}
}

// ClearDatabaseCommandHandler wipes the operational data. Users and
// settings survive so the store can keep working after the reset.
func ClearDatabaseCommandHandler(db *sqlite.DB, settingsCache *cache.SettingsCache, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessioncontext.GetSessionFromContext(r.Context())

		err := db.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
			// Children first to keep foreign keys happy.
			for _, table := range []string{"transaction_items", "stock_updates", "transactions", "products"} {
				if _, err := tx.NewDelete().Table(table).Where("1 = 1").Exec(ctx); err != nil {
					return err
				}
			}
			return auditSvc.Write(ctx, tx, sess.UserID, "database.clear", "database", "all", nil, nil)
		})
		if err != nil {
			slog.Error("clear database failed", slog.Any("err", err))
			http.Redirect(w, r, "/settings?msg=error_clear", http.StatusSeeOther)
			return
		}

		settingsCache.Invalidate()
		http.Redirect(w, r, "/settings?msg=database_cleared", http.StatusSeeOther)
	}
}

func invalidateSession(r *http.Request, sessionCache *cache.UserSessionCache) {
	c, err := r.Cookie(session.CookieName)
	if err != nil || c.Value == "" {
		return
	}
	sessionCache.DeleteSessionBySessionToken(c.Value)
}

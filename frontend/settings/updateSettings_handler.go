package settings

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/bun"

	sessioncontext "github.com/Jwfathoni/kasir-pos/frontend/shared/context"
	"github.com/Jwfathoni/kasir-pos/infrastructure/audit"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/session"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

var validate = validator.New()

// settingsForm is validated after sanitizing, so the name/timezone
// fallbacks still apply; only payloads that cannot be coerced into a
// sane profile are rejected.
type settingsForm struct {
	StoreName    string `validate:"required,max=120"`
	StoreAddress string `validate:"omitempty,max=255"`
	StorePhone   string `validate:"omitempty,max=32"`
	Timezone     string `validate:"oneof=WIB WITA WIT"`
}

// UpdateSettingsCommandHandler saves the store profile. Unknown
// timezones fall back to WIB rather than failing the save.
func UpdateSettingsCommandHandler(db *sqlite.DB, settingsCache *cache.SettingsCache, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessioncontext.GetSessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/settings?msg=error", http.StatusSeeOther)
			return
		}

		before, err := LoadSettings(r.Context(), db, nil)
		if err != nil {
			slog.Error("load settings failed", slog.Any("err", err))
			http.Redirect(w, r, "/settings?msg=error", http.StatusSeeOther)
			return
		}

		updated := models.Setting{
			StoreName:    r.FormValue("store_name"),
			StoreAddress: r.FormValue("store_address"),
			StorePhone:   r.FormValue("store_phone"),
			Timezone:     r.FormValue("timezone"),
		}
		sanitizeProfile(&updated)

		form := settingsForm{
			StoreName:    updated.StoreName,
			StoreAddress: updated.StoreAddress,
			StorePhone:   updated.StorePhone,
			Timezone:     updated.Timezone,
		}
		if err := validate.Struct(form); err != nil {
			http.Redirect(w, r, "/settings?msg=error", http.StatusSeeOther)
			return
		}

		if err := saveSettings(r.Context(), db, updated); err != nil {
			slog.Error("save settings failed", slog.Any("err", err))
			http.Redirect(w, r, "/settings?msg=error", http.StatusSeeOther)
			return
		}
		settingsCache.Invalidate()

		err = db.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
			return auditSvc.Write(ctx, tx, sess.UserID, "settings.update", "setting", "1", before, updated)
		})
		if err != nil {
			slog.Error("audit settings update failed", slog.Any("err", err))
		}

		http.Redirect(w, r, "/settings?msg=updated", http.StatusSeeOther)
	}
}

// UpdateDisplayNameCommandHandler changes the logged-in user's display
// name and refreshes the cached session so the nav shows it at once.
func UpdateDisplayNameCommandHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/settings?msg=error", http.StatusSeeOther)
			return
		}

		newName := strings.TrimSpace(r.FormValue("new_display_name"))
		if newName == "" {
			http.Redirect(w, r, "/settings?msg=error", http.StatusSeeOther)
			return
		}

		err := db.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.NewUpdate().
				Model((*models.User)(nil)).
				Set("display_name = ?", newName).
				Where("id = ?", sess.UserID).
				Exec(ctx)
			return err
		})
		if err != nil {
			slog.Error("update display name failed", slog.Any("err", err))
			http.Redirect(w, r, "/settings?msg=error", http.StatusSeeOther)
			return
		}

		sess.User.DisplayName = newName
		refreshCachedSession(r, sessionCache, sess)
		userCache.Add(sess.User.Username, sess.User)

		http.Redirect(w, r, "/settings?msg=display_name_updated", http.StatusSeeOther)
	}
}

// refreshCachedSession re-caches the session under its token so later
// requests in the same session see the updated user row.
func refreshCachedSession(r *http.Request, sessionCache *cache.UserSessionCache, sess models.Session) {
	c, err := r.Cookie(session.CookieName)
	if err != nil || c.Value == "" {
		return
	}
	sess.ID = c.Value
	sessionCache.AddSession(sess)
}

package login

import (
	"net/http"

	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	sessioncookie "github.com/Jwfathoni/kasir-pos/infrastructure/session"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

// LogoutHandler removes session state and clears the cookie.
func LogoutHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessioncookie.CookieName)
		if err == nil && cookie.Value != "" {
			sessionCache.DeleteSessionBySessionToken(cookie.Value)
			_ = DeleteSessionByToken(r.Context(), db, cookie.Value)
		}
		http.SetCookie(w, sessioncookie.ExpiredCookie())
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

package session

import (
	"net/http"
	"time"
)

// CookieName carries the opaque session token for a logged-in kasir.
const CookieName = "X-Session-Token"

// ShiftDuration is how long a login stays valid. Sized to cover one
// full cashier shift so nobody is logged out mid-queue.
const ShiftDuration = 12 * time.Hour

func SessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// ExpiredCookie immediately invalidates the session cookie on logout.
func ExpiredCookie() *http.Cookie {
	return SessionCookie("", -1)
}

func DefaultExpiry() time.Time {
	return time.Now().Add(ShiftDuration)
}

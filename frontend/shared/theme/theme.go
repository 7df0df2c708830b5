package theme

import "net/http"

const (
	CookieName = "theme"

	Light = "light"
	Dark  = "dark"
)

// FromRequest reads the persisted theme preference; anything but an
// explicit "light" is dark.
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value != Light {
		return Dark
	}
	return Light
}

// Toggle flips between the two themes.
func Toggle(current string) string {
	if current == Light {
		return Dark
	}
	return Light
}

// Cookie persists the preference across sessions.
func Cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	}
}

// ToggleHandler flips the theme cookie and returns to the referring
// page.
func ToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := Toggle(FromRequest(r))
		http.SetCookie(w, Cookie(next))
		target := r.Referer()
		if target == "" {
			target = "/"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

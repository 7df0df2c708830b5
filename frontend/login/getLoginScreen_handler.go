package login

import "net/http"

// GetLoginScreenHandler renders the standalone login page. The error
// query param carries the message from a failed login attempt.
func GetLoginScreenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := GetLoginScreen(r.URL.Query().Get("error")).Render(r.Context(), w); err != nil {
		http.Error(w, "gagal menampilkan halaman login", http.StatusInternalServerError)
		return
	}
}

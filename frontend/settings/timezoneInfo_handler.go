package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

// TimezoneInfo is the payload of GET /api/timezone-info.
type TimezoneInfo struct {
	Timezone             string `json:"timezone"`
	CurrentTime          string `json:"current_time"`
	CurrentTimeFormatted string `json:"current_time_formatted"`
}

// TimezoneInfoQueryHandler reports the store timezone and the current
// store-local time for the page clock.
func TimezoneInfoQueryHandler(db *sqlite.DB, settingsCache *cache.SettingsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setting, err := LoadSettings(r.Context(), db, settingsCache)
		if err != nil {
			slog.Error("load settings failed", slog.Any("err", err))
			http.Error(w, "gagal memuat pengaturan", http.StatusInternalServerError)
			return
		}

		now := time.Now().In(Location(setting.Timezone))
		out := TimezoneInfo{
			Timezone:             setting.Timezone,
			CurrentTime:          now.Format("02-01-2006 15:04:05"),
			CurrentTimeFormatted: now.Format("Monday, 02 January 2006 15:04:05"),
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			slog.Error("encode timezone info failed", slog.Any("err", err))
		}
	}
}

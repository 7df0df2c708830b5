package reports

import (
	"context"
	"time"

	"github.com/Jwfathoni/kasir-pos/frontend/settings"
	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
)

// storeLocation resolves the store timezone, falling back to WIB when
// the settings row cannot be read.
func storeLocation(ctx context.Context, db *sqlite.DB, settingsCache *cache.SettingsCache) *time.Location {
	setting, err := settings.LoadSettings(ctx, db, settingsCache)
	if err != nil {
		return settings.Location(settings.TimezoneWIB)
	}
	return settings.Location(setting.Timezone)
}

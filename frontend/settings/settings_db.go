package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/Jwfathoni/kasir-pos/infrastructure/cache"
	"github.com/Jwfathoni/kasir-pos/infrastructure/sqlite"
	"github.com/Jwfathoni/kasir-pos/models"
)

// LoadSettings returns the store profile row, served from cache when
// warm. A missing row yields the defaults.
func LoadSettings(ctx context.Context, db *sqlite.DB, settingsCache *cache.SettingsCache) (models.Setting, error) {
	if settingsCache != nil {
		if s, ok := settingsCache.Get(); ok {
			return s, nil
		}
	}

	var setting models.Setting
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&setting).OrderExpr("id ASC").Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			setting = defaultSettings()
		} else {
			return models.Setting{}, fmt.Errorf("load settings: %w", err)
		}
	}
	setting.Timezone = NormalizeTimezone(setting.Timezone)

	if settingsCache != nil {
		settingsCache.Set(setting)
	}
	return setting, nil
}

func defaultSettings() models.Setting {
	return models.Setting{
		StoreName:    "Nama Toko Anda",
		StoreAddress: "Alamat Toko Anda",
		Timezone:     TimezoneWIB,
	}
}

func saveSettings(ctx context.Context, db *sqlite.DB, updated models.Setting) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var current models.Setting
		err := tx.NewSelect().Model(&current).OrderExpr("id ASC").Limit(1).Scan(ctx)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			_, err = tx.NewInsert().Model(&updated).Exec(ctx)
			return err
		}

		updated.ID = current.ID
		_, err = tx.NewUpdate().
			Model(&updated).
			Column("store_name", "store_address", "store_phone", "timezone").
			WherePK().
			Exec(ctx)
		return err
	})
}

func sanitizeProfile(s *models.Setting) {
	s.StoreName = strings.TrimSpace(s.StoreName)
	s.StoreAddress = strings.TrimSpace(s.StoreAddress)
	s.StorePhone = strings.TrimSpace(s.StorePhone)
	s.Timezone = NormalizeTimezone(strings.TrimSpace(s.Timezone))
	if s.StoreName == "" {
		s.StoreName = "Nama Toko Anda"
	}
}

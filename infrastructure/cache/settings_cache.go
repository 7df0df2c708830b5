package cache

import (
	"sync"

	"github.com/Jwfathoni/kasir-pos/models"
)

// SettingsCache holds the single store profile row; every page header reads it.
type SettingsCache struct {
	mu       sync.RWMutex
	settings models.Setting
	loaded   bool
}

func NewSettingsCache() *SettingsCache {
	return &SettingsCache{}
}

func (c *SettingsCache) Set(s models.Setting) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
	c.loaded = true
}

func (c *SettingsCache) Get() (models.Setting, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings, c.loaded
}

// Invalidate forces the next reader to reload from the database.
func (c *SettingsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/types"
)

// SettingRepository keeps site settings in memory. Keys are unique
// among live records; Create refuses a duplicate key so that two
// concurrent creates for the same key cannot both succeed.
type SettingRepository struct {
	mu       sync.RWMutex
	seq      int
	settings map[int]types.SiteSetting
}

func NewSettingRepository() *SettingRepository {
	return &SettingRepository{settings: make(map[int]types.SiteSetting)}
}

func (r *SettingRepository) List(ctx context.Context) ([]types.SiteSetting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings := make([]types.SiteSetting, 0, len(r.settings))
	for _, setting := range r.settings {
		settings = append(settings, setting)
	}
	sortByID(settings, func(s types.SiteSetting) int { return s.ID })
	return settings, nil
}

// GetByKey does a linear scan with an exact, case-sensitive match.
func (r *SettingRepository) GetByKey(ctx context.Context, key string) (types.SiteSetting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, setting := range r.settings {
		if setting.Key == key {
			return setting, nil
		}
	}
	return types.SiteSetting{}, store.ErrNotFound
}

func (r *SettingRepository) Create(ctx context.Context, setting types.SiteSetting) (types.SiteSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.settings {
		if existing.Key == setting.Key {
			return types.SiteSetting{}, store.ErrConflict
		}
	}

	r.seq++
	setting.ID = r.seq
	setting.UpdatedAt = time.Now()
	r.settings[setting.ID] = setting
	return setting, nil
}

// UpdateByKey rewrites the value of an existing setting and refreshes
// the audit pair (updated_by, updated_at). Identity is preserved.
func (r *SettingRepository) UpdateByKey(ctx context.Context, key, value string, updatedBy int) (types.SiteSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, setting := range r.settings {
		if setting.Key == key {
			setting.Value = value
			setting.UpdatedBy = updatedBy
			setting.UpdatedAt = time.Now()
			r.settings[id] = setting
			return setting, nil
		}
	}
	return types.SiteSetting{}, store.ErrNotFound
}

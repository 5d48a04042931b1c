package services

import (
	"context"
	"errors"

	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/types"
)

// SettingRepository defines persistence operations for site settings.
type SettingRepository interface {
	List(ctx context.Context) ([]types.SiteSetting, error)
	GetByKey(ctx context.Context, key string) (types.SiteSetting, error)
	Create(ctx context.Context, setting types.SiteSetting) (types.SiteSetting, error)
	UpdateByKey(ctx context.Context, key, value string, updatedBy int) (types.SiteSetting, error)
}

// SettingService encapsulates site-setting use-cases.
type SettingService struct {
	repo SettingRepository
}

func NewSettingService(repo SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

func (s *SettingService) List(ctx context.Context) ([]types.SiteSetting, error) {
	return s.repo.List(ctx)
}

func (s *SettingService) GetByKey(ctx context.Context, key string) (types.SiteSetting, error) {
	return s.repo.GetByKey(ctx, key)
}

// Upsert updates the setting if the key exists, otherwise creates it.
// The returned bool is true when a new record was created. A create
// that loses a race to a concurrent create for the same key falls back
// to updating, so exactly one record per key ever exists.
func (s *SettingService) Upsert(ctx context.Context, key, value string, updatedBy int) (types.SiteSetting, bool, error) {
	if _, err := s.repo.GetByKey(ctx, key); err == nil {
		setting, err := s.repo.UpdateByKey(ctx, key, value, updatedBy)
		return setting, false, err
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.SiteSetting{}, false, err
	}

	setting, err := s.repo.Create(ctx, types.SiteSetting{Key: key, Value: value, UpdatedBy: updatedBy})
	if errors.Is(err, store.ErrConflict) {
		setting, err = s.repo.UpdateByKey(ctx, key, value, updatedBy)
		return setting, false, err
	}
	return setting, true, err
}

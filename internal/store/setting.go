package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/churchhub/apiserver/types"
)

// SettingRepository handles persistence for site settings in PostgreSQL.
// The key column carries a UNIQUE constraint, so a lost create race
// surfaces as ErrConflict rather than a duplicate row.
type SettingRepository struct {
	db *sql.DB
}

func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

const settingColumns = `id, key, value, updated_by, updated_at`

func (r *SettingRepository) List(ctx context.Context) ([]types.SiteSetting, error) {
	query := `SELECT ` + settingColumns + ` FROM site_settings ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make([]types.SiteSetting, 0)
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

func (r *SettingRepository) GetByKey(ctx context.Context, key string) (types.SiteSetting, error) {
	query := `SELECT ` + settingColumns + ` FROM site_settings WHERE key = $1`
	return scanSetting(r.db.QueryRowContext(ctx, query, key))
}

func (r *SettingRepository) Create(ctx context.Context, setting types.SiteSetting) (types.SiteSetting, error) {
	const query = `
		INSERT INTO site_settings (key, value, updated_by, updated_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, updated_at`
	err := r.db.QueryRowContext(
		ctx,
		query,
		setting.Key,
		setting.Value,
		setting.UpdatedBy,
	).Scan(&setting.ID, &setting.UpdatedAt)
	if err != nil {
		return types.SiteSetting{}, translateConstraint(err)
	}
	return setting, nil
}

func (r *SettingRepository) UpdateByKey(ctx context.Context, key, value string, updatedBy int) (types.SiteSetting, error) {
	const query = `
		UPDATE site_settings
		SET value = $1, updated_by = $2, updated_at = now()
		WHERE key = $3
		RETURNING ` + settingColumns
	setting, err := scanSetting(r.db.QueryRowContext(ctx, query, value, updatedBy, key))
	if err != nil {
		return types.SiteSetting{}, err
	}
	return setting, nil
}

func scanSetting(row rowScanner) (types.SiteSetting, error) {
	var setting types.SiteSetting
	err := row.Scan(
		&setting.ID,
		&setting.Key,
		&setting.Value,
		&setting.UpdatedBy,
		&setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.SiteSetting{}, ErrNotFound
		}
		return types.SiteSetting{}, err
	}
	return setting, nil
}

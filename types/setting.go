package types

import "time"

// SiteSetting is one entry of the site-wide key/value configuration
// store (site name, banner text, theme colors and so on). Keys are
// unique among live records; lookups are exact and case-sensitive.
type SiteSetting struct {
	ID    int    `json:"id" db:"id"`
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`

	// UpdatedBy is the id of the user who last wrote the setting.
	UpdatedBy int       `json:"updated_by" db:"updated_by"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

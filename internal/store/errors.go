package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a create would violate a uniqueness
// constraint (username, site-setting key).
var ErrConflict = errors.New("already exists")

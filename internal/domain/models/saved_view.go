package models

import "time"

// SavedView is a user's persisted dashboard-filter snapshot, stored as an
// opaque JSON payload.
type SavedView struct {
	UserID    string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

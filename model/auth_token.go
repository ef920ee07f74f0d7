package model

import "time"

// AuthToken is one issued bearer credential. A user can hold several at
// once (one per device); revoking one leaves the others alive
type AuthToken struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index;not null"`
	Name       string
	LastUsedAt *time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

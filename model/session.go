package model

import "time"

// Session is a server-side web session. The ID travels in a cookie and
// is minted fresh on every login, never carried over from before
// authentication
type Session struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	CSRFToken string
	ExpiresAt time.Time
	CreatedAt time.Time
}

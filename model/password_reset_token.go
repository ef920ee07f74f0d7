package model

import "time"

type PasswordResetToken struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"index;not null"`
	Token     string `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time
	Used      bool `gorm:"default:false"`
	CreatedAt time.Time
}

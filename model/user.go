// Package model defines database models
package model

import "time"

type User struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// Nil for accounts created through an OAuth provider until the
	// user sets a password themselves
	PasswordHash    *string    `json:"-"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`

	GoogleID   *string `gorm:"uniqueIndex" json:"-"`
	FacebookID *string `gorm:"uniqueIndex" json:"-"`
	GithubID   *string `gorm:"uniqueIndex" json:"-"`

	// Last provider used to create or link this account. Informational only
	OAuthProvider *string `gorm:"column:oauth_provider" json:"oauth_provider,omitempty"`

	RememberToken string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Articles []Article `gorm:"foreignKey:UserID" json:"-"`
}

// HasPassword reports whether the user can authenticate with a password.
// Guards provider disconnects so an account can't end up with zero
// login methods
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

package model

import "time"

type Article struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`

	// Storage reference returned by the image store, empty when the
	// article has no image
	Image string `json:"image,omitempty"`

	// Public location of the image, resolved from the storage backend
	// on the way out. Never persisted
	ImageURL string `gorm:"-" json:"image_url,omitempty"`

	// Display name of the creating user, snapshotted at creation time
	Author string `json:"author"`

	CategoryID uint   `gorm:"not null;index" json:"category_id"`
	UserID     string `gorm:"index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

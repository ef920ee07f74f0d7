package service

import (
	"errors"
	"time"

	"newshub/news-api/model"
	"newshub/news-api/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IssueToken mints a new bearer credential for one device. Tokens from
// other devices stay valid, revocation is per token
func IssueToken(db *gorm.DB, user *model.User, name string) (string, error) {
	if name == "" {
		name = "api-token"
	}

	expiresAt := time.Now().Add(time.Hour * time.Duration(viper.GetInt("auth.token_ttl_hours")))

	token := model.AuthToken{
		ID:        gonanoid.Must(24),
		UserID:    user.ID,
		Name:      name,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := db.Create(&token).Error; err != nil {
		return "", err
	}

	return security.SignToken(token.ID, user.ID, expiresAt)
}

// ResolveToken turns a presented bearer token back into a user. The
// JWT must verify and its id must still have a live row, so revoked
// tokens fail even before their signature expires
func ResolveToken(db *gorm.DB, raw string) (*model.User, *model.AuthToken, error) {
	tokenID, userID, err := security.ParseToken(raw)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	var token model.AuthToken
	if err := db.Where("id = ? AND user_id = ?", tokenID, userID).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if time.Now().After(token.ExpiresAt) {
		return nil, nil, ErrInvalidCredentials
	}

	var user model.User
	if err := db.Where("id = ?", token.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	// Bookkeeping only, a failure here shouldn't fail the request
	if err := db.Model(&token).Update("last_used_at", time.Now()).Error; err != nil {
		zap.L().Warn("Failed to update token last_used_at", zap.Error(err))
	}

	return &user, &token, nil
}

// RevokeToken removes exactly the presented token
func RevokeToken(db *gorm.DB, tokenID string) error {
	return db.Where("id = ?", tokenID).Delete(model.AuthToken{}).Error
}

// RevokeAllTokens logs a user out of every device, used after a
// password reset
func RevokeAllTokens(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(model.AuthToken{}).Error
}

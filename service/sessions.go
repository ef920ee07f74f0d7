package service

import (
	"errors"
	"time"

	"newshub/news-api/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// CreateSession starts a fresh web session. The id is always newly
// minted, a pre-auth session id never survives the login boundary
func CreateSession(db *gorm.DB, user *model.User, remember bool) (*model.Session, error) {
	ttlKey := "auth.session_ttl_hours"
	if remember {
		ttlKey = "auth.remember_ttl_hours"
	}

	session := model.Session{
		ID:        gonanoid.Must(32),
		UserID:    user.ID,
		CSRFToken: gonanoid.Must(32),
		ExpiresAt: time.Now().Add(time.Hour * time.Duration(viper.GetInt(ttlKey))),
		CreatedAt: time.Now(),
	}

	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func ResolveSession(db *gorm.DB, id string) (*model.User, *model.Session, error) {
	if id == "" {
		return nil, nil, ErrInvalidCredentials
	}

	var session model.Session
	if err := db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		// Expired rows are removed lazily here and in the sweeper
		db.Delete(&session)
		return nil, nil, ErrInvalidCredentials
	}

	var user model.User
	if err := db.Where("id = ?", session.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	return &user, &session, nil
}

// DestroySession deletes the server-side record, not just the cookie
func DestroySession(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(model.Session{}).Error
}

// DestroyAllSessions ends every web session of a user
func DestroyAllSessions(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(model.Session{}).Error
}

package service

import (
	"time"

	"newshub/news-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CredentialCleanup periodically removes expired bearer tokens and
// sessions plus spent reset tokens so the credential tables don't grow
// forever
func CredentialCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Credential cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			now := time.Now()

			err := db.Where("expires_at < ?", now).Delete(model.AuthToken{}).Error
			if err != nil {
				zap.L().Error("Failed to cleanup expired auth tokens", zap.Error(err))
			}

			err = db.Where("expires_at < ?", now).Delete(model.Session{}).Error
			if err != nil {
				zap.L().Error("Failed to cleanup expired sessions", zap.Error(err))
			}

			err = db.Where("used = ? OR expires_at < ?", true, now).Delete(model.PasswordResetToken{}).Error
			if err != nil {
				zap.L().Error("Failed to cleanup reset tokens", zap.Error(err))
			}
		}
	}()
}

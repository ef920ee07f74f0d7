package service

import (
	"errors"
	"time"

	"newshub/news-api/model"
	"newshub/news-api/security"
	"newshub/news-api/validators"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequestPasswordReset stores a single-use reset token for the address.
// It succeeds whether or not the account exists, callers must answer
// with the same wording either way. There is no mail pipeline, the
// reset link lands in the log
func RequestPasswordReset(db *gorm.DB, email string) error {
	email = NormalizeEmail(email)

	if err := validators.EmailValidator(email); err != nil {
		verr := &ValidationError{}
		verr.add("email", err.Error())
		return verr
	}

	var count int64
	if err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return nil
	}

	token := model.PasswordResetToken{
		Email:     email,
		Token:     gonanoid.Must(40),
		ExpiresAt: time.Now().Add(time.Minute * time.Duration(viper.GetInt("auth.reset_ttl_minutes"))),
		CreatedAt: time.Now(),
	}

	if err := db.Create(&token).Error; err != nil {
		return err
	}

	zap.L().Info("Password reset link generated",
		zap.String("email", email),
		zap.String("link", "/reset-password/"+token.Token))
	return nil
}

// ResetPassword consumes a reset token and sets a new password. The
// token row flips to used in the same statement that checks expiry, so
// two concurrent resets can't both succeed. All bearer tokens and
// sessions die with the old password
func ResetPassword(db *gorm.DB, argon *security.ArgonHash, email, token, password, confirmation string) error {
	email = NormalizeEmail(email)

	var verr ValidationError
	if err := validators.StrongPasswordValidator(password); err != nil {
		verr.add("password", err.Error())
	}
	if err := validators.ConfirmationValidator(password, confirmation); err != nil {
		verr.add("password", err.Error())
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	hash, err := argon.GenerateFromPassword(password)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(model.PasswordResetToken{}).
			Where("token = ? AND email = ? AND used = ? AND expires_at > ?", token, email, false, time.Now()).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrResetInvalid
		}

		var user model.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResetInvalid
			}
			return err
		}

		err := tx.Model(&user).Updates(map[string]any{
			"password_hash":  hash,
			"remember_token": gonanoid.Must(32),
		}).Error
		if err != nil {
			return err
		}

		if err := RevokeAllTokens(tx, user.ID); err != nil {
			return err
		}

		if err := DestroyAllSessions(tx, user.ID); err != nil {
			return err
		}

		zap.L().Info("Password reset", zap.String("userID", user.ID))
		return nil
	})
}

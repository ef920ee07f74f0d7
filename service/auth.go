package service

import (
	"errors"
	"strings"
	"time"

	"newshub/news-api/model"
	"newshub/news-api/security"
	"newshub/news-api/validators"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NormalizeEmail lower-cases an address so the unique index is
// effectively case-insensitive
func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register creates a password account. The strong flag switches on the
// web-form rule (mixed case plus digit); the JSON API keeps the base
// length rule only. Password registrations are auto-verified, there is
// no confirmation mail in this system
func Register(db *gorm.DB, argon *security.ArgonHash, name, email, password, confirmation string, strong bool) (*model.User, error) {
	email = NormalizeEmail(email)

	var verr ValidationError

	if err := validators.NameValidator(name); err != nil {
		verr.add("name", err.Error())
	}

	if err := validators.EmailValidator(email); err != nil {
		verr.add("email", err.Error())
	}

	pwCheck := validators.PasswordValidator
	if strong {
		pwCheck = validators.StrongPasswordValidator
	}

	if err := pwCheck(password); err != nil {
		verr.add("password", err.Error())
	}

	if err := validators.ConfirmationValidator(password, confirmation); err != nil {
		verr.add("password", err.Error())
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := argon.GenerateFromPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:              gonanoid.MustGenerate(userIDAlphabet, 16),
		Name:            strings.TrimSpace(name),
		Email:           email,
		PasswordHash:    &hash,
		EmailVerifiedAt: &now,
		RememberToken:   gonanoid.Must(32),
	}

	if err := db.Create(user).Error; err != nil {
		// Lost a registration race for the same address
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	zap.L().Info("New user registered", zap.String("userID", user.ID))

	return user, nil
}

// Login checks a password credential. Every failure path returns the
// same ErrInvalidCredentials so responses can't be used to enumerate
// accounts
func Login(db *gorm.DB, argon *security.ArgonHash, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	ok, err := argon.VerifyPasswd(password, *user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	// A linked provider identity counts as verification
	if user.EmailVerifiedAt == nil && user.GoogleID == nil && user.FacebookID == nil && user.GithubID == nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

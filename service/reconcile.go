package service

import (
	"errors"
	"strings"
	"time"

	"newshub/news-api/model"
	"newshub/news-api/oauth"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// providerColumn maps the typed provider to its dedicated user column.
// The column names never come from request input
func providerColumn(p oauth.Name) string {
	switch p {
	case oauth.Google:
		return "google_id"
	case oauth.Facebook:
		return "facebook_id"
	case oauth.Github:
		return "github_id"
	}

	return ""
}

// Reconcile maps a provider callback onto exactly one local user:
//
//  1. a user already linked to (provider, id) is returned as-is
//  2. a user with the same email gets the provider linked, and their
//     email counts as verified from then on
//  3. otherwise a new, passwordless, verified account is created
//
// Everything runs in one transaction; losing a creation race against a
// concurrent callback or registration falls back to the link path
// instead of surfacing the constraint violation
func Reconcile(db *gorm.DB, provider oauth.Name, id oauth.Identity) (*model.User, error) {
	col := providerColumn(provider)
	if col == "" || id.ID == "" || id.Email == "" {
		return nil, ErrProviderAuth
	}

	email := NormalizeEmail(id.Email)

	var user model.User
	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := findOrLink(tx, col, provider, id, email, &user)
		if err != nil {
			return err
		}
		if found {
			return nil
		}

		now := time.Now()
		name := strings.TrimSpace(id.Name)
		if name == "" {
			// Providers may send no display name, and the email is
			// not guaranteed to be well-formed either
			name = email
			if at := strings.Index(email, "@"); at > 0 {
				name = email[:at]
			}
		}

		user = model.User{
			ID:              gonanoid.MustGenerate(userIDAlphabet, 16),
			Name:            name,
			Email:           email,
			EmailVerifiedAt: &now,
			OAuthProvider:   (*string)(nil),
			RememberToken:   gonanoid.Must(32),
		}
		setProviderID(&user, provider, id.ID)

		// Postgres aborts the whole transaction after a failed insert,
		// so the retry below needs a savepoint to roll back to
		if err := tx.SavePoint("create_user").Error; err != nil {
			return err
		}

		if err := tx.Create(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			if err := tx.RollbackTo("create_user").Error; err != nil {
				return err
			}

			// Someone else inserted this email or provider id between
			// our lookups. Link against whatever won the race. The
			// unsaved primary key has to go first, First would treat
			// it as a condition
			user = model.User{}
			found, err = findOrLink(tx, col, provider, id, email, &user)
			if err != nil {
				return err
			}
			if !found {
				return ErrProviderAuth
			}
			return nil
		}

		zap.L().Info("New user created via OAuth",
			zap.String("userID", user.ID),
			zap.String("provider", string(provider)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// findOrLink covers steps 1 and 2 of the reconciliation order. Reports
// whether a user was resolved
func findOrLink(tx *gorm.DB, col string, provider oauth.Name, id oauth.Identity, email string, user *model.User) (bool, error) {
	// Fast path, identity already linked
	err := tx.Where(col+" = ?", id.ID).First(user).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	// Same email, existing account. Link the provider so no duplicate
	// account appears
	err = tx.Where("email = ?", email).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	updates := map[string]any{
		col:              id.ID,
		"oauth_provider": string(provider),
	}
	if user.EmailVerifiedAt == nil {
		updates["email_verified_at"] = time.Now()
	}

	if err := tx.Model(user).Updates(updates).Error; err != nil {
		return false, err
	}

	setProviderID(user, provider, id.ID)

	zap.L().Info("Provider linked to existing user",
		zap.String("userID", user.ID),
		zap.String("provider", string(provider)))
	return true, nil
}

func setProviderID(u *model.User, p oauth.Name, id string) {
	prov := string(p)
	u.OAuthProvider = &prov

	switch p {
	case oauth.Google:
		u.GoogleID = &id
	case oauth.Facebook:
		u.FacebookID = &id
	case oauth.Github:
		u.GithubID = &id
	}
}

// Disconnect unlinks one provider. Rejected while the account has no
// password, otherwise it could lose its last login method
func Disconnect(db *gorm.DB, user *model.User, provider oauth.Name) error {
	col := providerColumn(provider)
	if col == "" {
		return oauth.ErrProviderNotFound
	}

	if !user.HasPassword() {
		return ErrNoPassword
	}

	if err := db.Model(user).Update(col, nil).Error; err != nil {
		return err
	}

	switch provider {
	case oauth.Google:
		user.GoogleID = nil
	case oauth.Facebook:
		user.FacebookID = nil
	case oauth.Github:
		user.GithubID = nil
	}

	zap.L().Info("Provider disconnected",
		zap.String("userID", user.ID),
		zap.String("provider", string(provider)))
	return nil
}

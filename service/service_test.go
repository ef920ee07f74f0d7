package service

import (
	"fmt"
	"testing"

	"newshub/news-api/model"
	"newshub/news-api/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testHasher = security.New()

// testDB opens a throwaway in-memory database with the same settings
// the real connection uses
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	viper.Set("jwt.secret", "test-secret-test-secret")
	viper.Set("auth.token_ttl_hours", 720)
	viper.Set("auth.session_ttl_hours", 12)
	viper.Set("auth.remember_ttl_hours", 720)
	viper.Set("auth.reset_ttl_minutes", 60)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", gonanoid.MustGenerate("abcdefghijklmnopqrstuvwxyz", 10))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		model.User{},
		model.Category{},
		model.Article{},
		model.AuthToken{},
		model.Session{},
		model.PasswordResetToken{},
	)
	require.NoError(t, err)

	return db
}

func mustRegister(t *testing.T, db *gorm.DB, name, email, password string) *model.User {
	t.Helper()

	user, err := Register(db, testHasher, name, email, password, password, false)
	require.NoError(t, err)
	return user
}

func userCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model.User{}).Count(&n).Error)
	return n
}

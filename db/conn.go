// Package db contains things related to the relational database
package db

import (
	"errors"
	"fmt"
	"newshub/news-api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the database selected in the config and migrates all
// tables. TranslateError is on so unique-constraint races surface as
// gorm.ErrDuplicatedKey on both drivers
func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch viper.GetString("db.driver") {
	case "sqlite":
		dial = sqlite.Open(viper.GetString("db.dsn"))
	case "postgres":
		dial = postgres.Open(viper.GetString("db.dsn"))
	default:
		return nil, errors.New("unsupported database driver")
	}

	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(
		model.User{},
		model.Category{},
		model.Article{},
		model.AuthToken{},
		model.Session{},
		model.PasswordResetToken{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

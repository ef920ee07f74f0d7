// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	migrateOnly       = pflag.Bool("migrate-only", false, "Runs database migrations and exits")
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validStorageTypes = []string{"local", "s3"}
	validDBDrivers    = []string{"sqlite", "postgres"}
)

// MigrateOnly reports whether the process should stop after running
// database migrations
func MigrateOnly() bool {
	return *migrateOnly
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")
	v.BindEnv("app.page_size", "app_page_size")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.local_path", "storage_local_path")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("s3.access_key_id", "s3_access_key_id")
	v.BindEnv("s3.secret_access_key", "s3_secret_access_key")
	v.BindEnv("s3.region", "s3_region")
	v.BindEnv("s3.bucket", "s3_bucket")

	v.BindEnv("oauth.google.client_id", "oauth_google_client_id")
	v.BindEnv("oauth.google.client_secret", "oauth_google_client_secret")
	v.BindEnv("oauth.google.redirect_url", "oauth_google_redirect_url")

	v.BindEnv("oauth.facebook.client_id", "oauth_facebook_client_id")
	v.BindEnv("oauth.facebook.client_secret", "oauth_facebook_client_secret")
	v.BindEnv("oauth.facebook.redirect_url", "oauth_facebook_redirect_url")

	v.BindEnv("oauth.github.client_id", "oauth_github_client_id")
	v.BindEnv("oauth.github.client_secret", "oauth_github_client_secret")
	v.BindEnv("oauth.github.redirect_url", "oauth_github_redirect_url")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.page_size", 15)
	v.SetDefault("app.cleanup_interval_minutes", 30)

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "news-images")

	v.SetDefault("upload.max_size", 2)

	v.SetDefault("auth.token_ttl_hours", 24*30)
	v.SetDefault("auth.session_ttl_hours", 12)
	v.SetDefault("auth.remember_ttl_hours", 24*30)
	v.SetDefault("auth.reset_ttl_minutes", 60)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("app.page_size") <= 0 {
		return errors.New("app.page_size must be bigger than 0")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("database dsn can't be empty")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("max upload size must be bigger than 0")
	}

	switch v.GetString("storage.type") {
	case "s3":
		{
			if v.GetString("s3.access_key_id") == "" {
				return errors.New("s3 access key id can't be empty")
			}
			if v.GetString("s3.secret_access_key") == "" {
				return errors.New("s3 secret access key can't be empty")
			}
			if v.GetString("s3.region") == "" {
				return errors.New("s3 region can't be empty")
			}
			if v.GetString("s3.bucket") == "" {
				return errors.New("s3 bucket can't be empty")
			}
		}
	case "local":
		{
			if v.GetString("storage.local_path") == "" {
				return errors.New("local storage path can't be empty")
			}
		}
	default:
		return errors.New("invalid storage type provided")
	}

	if !slices.Contains(validStorageTypes, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}

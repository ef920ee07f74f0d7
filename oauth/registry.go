package oauth

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewRegistryFromConfig wires up every provider that has credentials in
// the config. Providers without a client id are skipped, not fatal, so
// a deployment can enable only the ones it wants
func NewRegistryFromConfig(ctx context.Context) (*Registry, error) {
	r := NewRegistry()

	if id := viper.GetString("oauth.google.client_id"); id != "" {
		g, err := NewGoogle(ctx, GoogleConfig{
			ClientID:     id,
			ClientSecret: viper.GetString("oauth.google.client_secret"),
			RedirectURL:  viper.GetString("oauth.google.redirect_url"),
		})
		if err != nil {
			return nil, err
		}

		r.Register(Google, g)
	}

	if id := viper.GetString("oauth.facebook.client_id"); id != "" {
		r.Register(Facebook, NewFacebook(FacebookConfig{
			ClientID:     id,
			ClientSecret: viper.GetString("oauth.facebook.client_secret"),
			RedirectURL:  viper.GetString("oauth.facebook.redirect_url"),
		}))
	}

	if id := viper.GetString("oauth.github.client_id"); id != "" {
		r.Register(Github, NewGithub(GithubConfig{
			ClientID:     id,
			ClientSecret: viper.GetString("oauth.github.client_secret"),
			RedirectURL:  viper.GetString("oauth.github.redirect_url"),
		}))
	}

	if len(r.providers) == 0 {
		zap.L().Warn("No OAuth providers configured, social login disabled")
	}

	return r, nil
}

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const facebookUserInfoURL = "https://graph.facebook.com/v19.0/me?fields=id,name,email,picture"

type FacebookProvider struct {
	cfg *oauth2.Config
}

type FacebookConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type facebookUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

func NewFacebook(c FacebookConfig) *FacebookProvider {
	return &FacebookProvider{
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     endpoints.Facebook,
		},
	}
}

func (f *FacebookProvider) AuthURL(state string) string {
	return f.cfg.AuthCodeURL(state)
}

func (f *FacebookProvider) Exchange(ctx context.Context, code string) (Identity, error) {
	tok, err := f.cfg.Exchange(ctx, code)
	if err != nil {
		return Identity{}, exchangeErr(err)
	}

	resp, err := f.cfg.Client(ctx, tok).Get(facebookUserInfoURL)
	if err != nil {
		return Identity{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, ErrExchangeFailed
	}

	var usr facebookUser
	if err := json.NewDecoder(resp.Body).Decode(&usr); err != nil {
		return Identity{}, fmt.Errorf("decode userinfo: %w", err)
	}

	return Identity{
		ID:        usr.ID,
		Email:     usr.Email,
		Name:      usr.Name,
		AvatarURL: usr.Picture.Data.URL,
	}, nil
}

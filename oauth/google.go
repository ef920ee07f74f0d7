package oauth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// GoogleProvider authenticates through Google's OIDC flow and reads the
// identity from the verified id_token instead of a userinfo call
type GoogleProvider struct {
	cfg      *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type googleClaims struct {
	Sub     string `json:"sub,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

func NewGoogle(ctx context.Context, c GoogleConfig) (*GoogleProvider, error) {
	p, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, fmt.Errorf("new oidc provider: %w", err)
	}

	return &GoogleProvider{
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			Endpoint:     endpoints.Google,
		},
		verifier: p.Verifier(&oidc.Config{ClientID: c.ClientID}),
	}, nil
}

func (g *GoogleProvider) AuthURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *GoogleProvider) Exchange(ctx context.Context, code string) (Identity, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return Identity{}, exchangeErr(err)
	}

	raw, ok := tok.Extra("id_token").(string)
	if !ok {
		return Identity{}, ErrExchangeFailed
	}

	idTok, err := g.verifier.Verify(ctx, raw)
	if err != nil {
		return Identity{}, fmt.Errorf("verify id token: %w", err)
	}

	var claims googleClaims
	if err := idTok.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("read claims: %w", err)
	}

	return Identity{
		ID:        claims.Sub,
		Email:     claims.Email,
		Name:      claims.Name,
		AvatarURL: claims.Picture,
	}, nil
}

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

type GithubProvider struct {
	cfg *oauth2.Config
}

type GithubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func NewGithub(c GithubConfig) *GithubProvider {
	return &GithubProvider{
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoints.GitHub,
		},
	}
}

func (g *GithubProvider) AuthURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *GithubProvider) Exchange(ctx context.Context, code string) (Identity, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return Identity{}, exchangeErr(err)
	}

	client := g.cfg.Client(ctx, tok)

	usr, err := fetchGithubUser(client)
	if err != nil {
		return Identity{}, err
	}

	// The profile email is often hidden, the emails endpoint has the
	// primary one
	if usr.Email == "" {
		usr.Email, err = fetchGithubPrimaryEmail(client)
		if err != nil {
			return Identity{}, err
		}
	}

	name := usr.Name
	if name == "" {
		name = usr.Login
	}

	return Identity{
		ID:        strconv.FormatInt(usr.ID, 10),
		Email:     usr.Email,
		Name:      name,
		AvatarURL: usr.AvatarURL,
	}, nil
}

func fetchGithubUser(client *http.Client) (githubUser, error) {
	resp, err := client.Get(githubUserURL)
	if err != nil {
		return githubUser{}, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return githubUser{}, ErrExchangeFailed
	}

	var usr githubUser
	if err := json.NewDecoder(resp.Body).Decode(&usr); err != nil {
		return githubUser{}, fmt.Errorf("decode user: %w", err)
	}

	return usr, nil
}

func fetchGithubPrimaryEmail(client *http.Client) (string, error) {
	resp, err := client.Get(githubEmailsURL)
	if err != nil {
		return "", fmt.Errorf("fetch emails: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrExchangeFailed
	}

	var emails []githubEmail
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", fmt.Errorf("decode emails: %w", err)
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}

	return "", ErrExchangeFailed
}

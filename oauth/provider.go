// Package oauth implements the external identity providers users can
// log in with
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

var (
	ErrProviderConflict = errors.New("provider already registered")
	ErrProviderNotFound = errors.New("provider not found")
	ErrExchangeFailed   = errors.New("authentication failed")
)

// Name is one of the supported identity providers. Keeping this a
// dedicated type means provider-specific user columns are picked with a
// switch instead of building field names from strings
type Name string

const (
	Google   Name = "google"
	Facebook Name = "facebook"
	Github   Name = "github"
)

// ParseName validates a provider taken from a URL parameter
func ParseName(s string) (Name, error) {
	switch Name(s) {
	case Google, Facebook, Github:
		return Name(s), nil
	}

	return "", ErrProviderNotFound
}

// Identity is what a provider tells us about the authenticated user
type Identity struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

type Provider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (Identity, error)
}

type Registry struct {
	providers map[Name]Provider
	mu        sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[Name]Provider),
	}
}

func (r *Registry) Register(n Name, p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[n]; ok {
		return ErrProviderConflict
	}

	r.providers[n] = p
	return nil
}

func (r *Registry) Get(n Name) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[n]
	if !ok {
		return nil, ErrProviderNotFound
	}

	return p, nil
}

// exchangeErr collapses provider rejections into the single user-facing
// failure while keeping genuine transport errors wrapped for the logs
func exchangeErr(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.Response != nil {
		if rerr.Response.StatusCode == http.StatusBadRequest || rerr.Response.StatusCode == http.StatusUnauthorized {
			return ErrExchangeFailed
		}
	}

	return fmt.Errorf("exchange: %w", err)
}

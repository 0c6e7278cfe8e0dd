package provider

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/Dmc0125/task-app/internal/auth"
)

var ErrUnknownProvider = errors.New("unknown provider")

// Config carries everything needed to run one provider's authorization-code
// flow: the fixed endpoints from the catalog plus the deployment-specific
// client credentials and callback URL. Built once at startup, never
// persisted.
type Config struct {
	Provider auth.Provider

	AuthURL    string
	TokenURL   string
	ProfileURL string
	Scopes     []string

	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Credentials are the per-provider client id/secret from deployment
// configuration.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// OAuth2 returns the oauth2 configuration for the provider. AuthStyleInParams
// forces client_id and client_secret into the form body of the token
// exchange, which is what Discord and Google both accept.
func (c Config) OAuth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       c.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthURL,
			TokenURL:  c.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthCodeURL builds the provider authorization URL with response_type,
// client_id, redirect_uri and scope embedded.
func (c Config) AuthCodeURL() string {
	return c.OAuth2().AuthCodeURL("")
}

// Catalog holds the runtime configuration of every supported provider,
// keyed by provider tag. It is immutable after construction and safe for
// concurrent use.
type Catalog struct {
	configs map[auth.Provider]Config
}

// callbackPath is the fixed path template joined with the base URL to
// produce each provider's redirect_uri.
const callbackPath = "/api/v1/auth/callback/%s"

// NewCatalog builds the catalog from the deployment base URL and the
// per-provider client credentials.
func NewCatalog(baseURL string, creds map[auth.Provider]Credentials) *Catalog {
	redirectURL := func(p auth.Provider) string {
		return baseURL + fmt.Sprintf(callbackPath, p)
	}

	return &Catalog{configs: map[auth.Provider]Config{
		auth.ProviderDiscord: {
			Provider:     auth.ProviderDiscord,
			AuthURL:      "https://discord.com/api/oauth2/authorize",
			TokenURL:     "https://discord.com/api/oauth2/token",
			ProfileURL:   "https://discord.com/api/users/@me",
			Scopes:       []string{"identify"},
			ClientID:     creds[auth.ProviderDiscord].ClientID,
			ClientSecret: creds[auth.ProviderDiscord].ClientSecret,
			RedirectURL:  redirectURL(auth.ProviderDiscord),
		},
		auth.ProviderGoogle: {
			Provider:     auth.ProviderGoogle,
			AuthURL:      "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL:     "https://oauth2.googleapis.com/token",
			ProfileURL:   "https://openidconnect.googleapis.com/v1/userinfo",
			Scopes:       []string{"openid"},
			ClientID:     creds[auth.ProviderGoogle].ClientID,
			ClientSecret: creds[auth.ProviderGoogle].ClientSecret,
			RedirectURL:  redirectURL(auth.ProviderGoogle),
		},
	}}
}

// Resolve returns the runtime configuration for the given provider key or
// ErrUnknownProvider when the key is not one of the supported tags.
func (c *Catalog) Resolve(key string) (Config, error) {
	p, ok := auth.ParseProvider(key)
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownProvider, key)
	}
	cfg, ok := c.configs[p]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownProvider, key)
	}
	return cfg, nil
}

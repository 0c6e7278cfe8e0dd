// Package oauth executes the authorization-code-for-access-token exchange
// and the profile fetch against a provider's fixed endpoints. Providers
// return different profile shapes; decoding is a closed switch over the
// supported provider tags.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/Dmc0125/task-app/internal/auth"
	"github.com/Dmc0125/task-app/internal/auth/provider"
)

var (
	ErrTokenExchange = errors.New("token exchange failed")
	ErrProfileFetch  = errors.New("profile fetch failed")
)

type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Exchange posts the authorization code to the provider's token endpoint
// (form-encoded, grant_type=authorization_code, credentials in the body)
// and returns the access token. A login is a one-shot interactive flow, so
// nothing here is retried.
func (c *Client) Exchange(ctx context.Context, cfg provider.Config, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	token, err := cfg.OAuth2().Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: response carried no access_token", ErrTokenExchange)
	}
	return token.AccessToken, nil
}

// FetchProfile performs a bearer-authenticated GET against the provider's
// profile endpoint and decodes the response into the canonical identity.
// Transport failures, non-2xx statuses and malformed payloads are all
// reported as ErrProfileFetch; callers do not distinguish them.
func (c *Client) FetchProfile(ctx context.Context, cfg provider.Config, accessToken string) (*auth.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.ProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProfileFetch, resp.StatusCode)
	}

	return decodeProfile(cfg.Provider, resp.Body)
}

func decodeProfile(p auth.Provider, r io.Reader) (*auth.Identity, error) {
	switch p {
	case auth.ProviderDiscord:
		var body struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r).Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProfileFetch, err)
		}
		if body.ID == "" {
			return nil, fmt.Errorf("%w: discord profile missing id", ErrProfileFetch)
		}
		return &auth.Identity{
			Provider:         p,
			ProviderID:       body.ID,
			ProviderUsername: body.Username,
		}, nil

	case auth.ProviderGoogle:
		// OpenID Connect userinfo. Only the subject is guaranteed here,
		// so the canonical username stays empty.
		var body struct {
			Sub string `json:"sub"`
		}
		if err := json.NewDecoder(r).Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProfileFetch, err)
		}
		if body.Sub == "" {
			return nil, fmt.Errorf("%w: google userinfo missing sub", ErrProfileFetch)
		}
		return &auth.Identity{
			Provider:   p,
			ProviderID: body.Sub,
		}, nil
	}

	return nil, fmt.Errorf("%w: no decoder for provider %q", ErrProfileFetch, p)
}

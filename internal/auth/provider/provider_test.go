package provider

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dmc0125/task-app/internal/auth"
)

func testCatalog() *Catalog {
	return NewCatalog("https://api.example.com", map[auth.Provider]Credentials{
		auth.ProviderDiscord: {ClientID: "discord-id", ClientSecret: "discord-secret"},
		auth.ProviderGoogle:  {ClientID: "google-id", ClientSecret: "google-secret"},
	})
}

func TestResolve_KnownProviders(t *testing.T) {
	catalog := testCatalog()

	discord, err := catalog.Resolve("discord")
	require.NoError(t, err)
	assert.Equal(t, auth.ProviderDiscord, discord.Provider)
	assert.Equal(t, "discord-id", discord.ClientID)
	assert.Equal(t, []string{"identify"}, discord.Scopes)
	assert.Equal(t, "https://api.example.com/api/v1/auth/callback/discord", discord.RedirectURL)

	google, err := catalog.Resolve("google")
	require.NoError(t, err)
	assert.Equal(t, auth.ProviderGoogle, google.Provider)
	assert.Equal(t, []string{"openid"}, google.Scopes)
	assert.Equal(t, "https://api.example.com/api/v1/auth/callback/google", google.RedirectURL)
}

func TestResolve_UnknownProvider(t *testing.T) {
	catalog := testCatalog()

	for _, key := range []string{"mastodon", "", "Discord", "GOOGLE", "discord "} {
		_, err := catalog.Resolve(key)
		assert.ErrorIs(t, err, ErrUnknownProvider, "key %q", key)
	}
}

func TestAuthCodeURL_Discord(t *testing.T) {
	catalog := testCatalog()
	cfg, err := catalog.Resolve("discord")
	require.NoError(t, err)

	u, err := url.Parse(cfg.AuthCodeURL())
	require.NoError(t, err)

	assert.Equal(t, "discord.com", u.Host)
	assert.Equal(t, "/api/oauth2/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "discord-id", q.Get("client_id"))
	assert.Equal(t, "identify", q.Get("scope"))
	assert.Equal(t, "https://api.example.com/api/v1/auth/callback/discord", q.Get("redirect_uri"))
}

func TestAuthCodeURL_Google(t *testing.T) {
	catalog := testCatalog()
	cfg, err := catalog.Resolve("google")
	require.NoError(t, err)

	u, err := url.Parse(cfg.AuthCodeURL())
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "openid", u.Query().Get("scope"))
}

package config

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Dmc0125/task-app/internal/auth"
	"github.com/Dmc0125/task-app/internal/auth/provider"
)

// Config is the process-wide configuration, loaded once at startup and
// injected into the components that need it. Rotating SIGNATURE_KEY or the
// provider credentials requires a restart and invalidates every
// outstanding session credential.
type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"local"`
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	BaseURL                string `env:"BASE_URL"`
	ClientURL              string `env:"CLIENT_URL"`
	ClientSigninSuccessURL string `env:"CLIENT_SIGNIN_SUCCESS_URL"`
	ClientSigninFailURL    string `env:"CLIENT_SIGNIN_FAIL_URL"`

	SignatureKey string `env:"SIGNATURE_KEY"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	DiscordClientID     string `env:"DISCORD_CLIENT_ID"`
	DiscordClientSecret string `env:"DISCORD_CLIENT_SECRET"`
	GoogleClientID      string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string `env:"GOOGLE_CLIENT_SECRET"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing required key at once; missing
// configuration is startup-fatal.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"BASE_URL", c.BaseURL},
		{"CLIENT_URL", c.ClientURL},
		{"CLIENT_SIGNIN_SUCCESS_URL", c.ClientSigninSuccessURL},
		{"CLIENT_SIGNIN_FAIL_URL", c.ClientSigninFailURL},
		{"SIGNATURE_KEY", c.SignatureKey},
		{"DATABASE_DSN", c.DatabaseDSN},
		{"DISCORD_CLIENT_ID", c.DiscordClientID},
		{"DISCORD_CLIENT_SECRET", c.DiscordClientSecret},
		{"GOOGLE_CLIENT_ID", c.GoogleClientID},
		{"GOOGLE_CLIENT_SECRET", c.GoogleClientSecret},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key+" is required")
		}
	}
	if len(missing) > 0 {
		return errors.New(strings.Join(missing, "; "))
	}
	return nil
}

// ProviderCredentials returns the per-provider client credentials in the
// shape the catalog expects.
func (c *Config) ProviderCredentials() map[auth.Provider]provider.Credentials {
	return map[auth.Provider]provider.Credentials{
		auth.ProviderDiscord: {ClientID: c.DiscordClientID, ClientSecret: c.DiscordClientSecret},
		auth.ProviderGoogle:  {ClientID: c.GoogleClientID, ClientSecret: c.GoogleClientSecret},
	}
}

// Package config loads playground settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Protocol-Lattice/hue-playground/src/session"
)

const (
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderLattice = "lattice"
)

var ErrUnknownProvider = errors.New("unknown provider")

type Config struct {
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY"`
	ViteGeminiAPIKey string `envconfig:"VITE_GEMINI_API_KEY"`
	GoogleAPIKey     string `envconfig:"GOOGLE_API_KEY"`

	Provider      string `envconfig:"HUE_PROVIDER" default:"gemini"`
	Model         string `envconfig:"HUE_MODEL"`
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	Project       string `envconfig:"HUE_PROJECT"`
	LogFile       string `envconfig:"HUE_LOG_FILE" default:"hue.log"`
	LogLevel      string `envconfig:"HUE_LOG_LEVEL" default:"info"`
	UTCPProviders string `envconfig:"HUE_UTCP_PROVIDERS"`
	ExportDir     string `envconfig:"HUE_EXPORT_DIR" default:"hue-export"`
}

// Load reads .env.local and .env when present, then the process
// environment. Variables already set win over the files.
func Load() (Config, error) {
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize lower-cases the provider and restores the defaults of settings
// that are set but blank. envconfig treats an empty variable as set and
// skips its default tag.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	for _, f := range []struct {
		v   *string
		def string
	}{
		{&c.Provider, ProviderGemini},
		{&c.LogFile, "hue.log"},
		{&c.LogLevel, "info"},
		{&c.ExportDir, "hue-export"},
	} {
		if strings.TrimSpace(*f.v) == "" {
			*f.v = f.def
		}
	}
}

func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderLattice:
		return nil
	default:
		return fmt.Errorf("%w %q (want gemini, openai or lattice)", ErrUnknownProvider, c.Provider)
	}
}

// GeminiKey returns the first configured Gemini credential.
func (c Config) GeminiKey() string {
	for _, k := range []string{c.GeminiAPIKey, c.ViteGeminiAPIKey, c.GoogleAPIKey} {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}

// ModelName returns HUE_MODEL or the provider's default model.
func (c Config) ModelName() string {
	if m := strings.TrimSpace(c.Model); m != "" {
		return m
	}
	if c.Provider == ProviderOpenAI {
		return "gpt-4o-mini"
	}
	return "gemini-2.5-flash"
}

// BuildBackend returns the chat backend for the configured provider.
// A missing credential yields session.ErrMissingCredential.
func BuildBackend(ctx context.Context, c Config) (session.Backend, error) {
	switch c.Provider {
	case ProviderGemini:
		return session.NewGemini(ctx, c.GeminiKey())
	case ProviderOpenAI:
		return session.NewOpenAI(c.OpenAIAPIKey, c.OpenAIBaseURL)
	case ProviderLattice:
		key := c.GeminiKey()
		if key == "" {
			return nil, session.ErrMissingCredential
		}
		// The Lattice Gemini model reads its key from the environment.
		if os.Getenv("GOOGLE_API_KEY") == "" {
			_ = os.Setenv("GOOGLE_API_KEY", key)
		}
		return session.NewLattice(c.UTCPProviders), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownProvider, c.Provider)
	}
}

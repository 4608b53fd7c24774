package config

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/hue-playground/src/session"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "VITE_GEMINI_API_KEY", "GOOGLE_API_KEY",
		"HUE_PROVIDER", "HUE_MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"HUE_PROJECT", "HUE_LOG_FILE", "HUE_LOG_LEVEL", "HUE_UTCP_PROVIDERS", "HUE_EXPORT_DIR",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "hue.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "hue-export", cfg.ExportDir)
	assert.Equal(t, "gemini-2.5-flash", cfg.ModelName())
	assert.Empty(t, cfg.GeminiKey())
}

func TestLoadBlankDotEnvValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	for _, k := range []string{"HUE_PROVIDER", "HUE_LOG_FILE", "HUE_LOG_LEVEL", "HUE_EXPORT_DIR"} {
		require.NoError(t, os.Unsetenv(k))
	}
	require.NoError(t, os.WriteFile(".env", []byte("HUE_PROVIDER=\nHUE_LOG_FILE=\nHUE_LOG_LEVEL=\nHUE_EXPORT_DIR=\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "hue.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "hue-export", cfg.ExportDir)
}

func TestNormalizeProvider(t *testing.T) {
	cases := map[string]string{
		" Gemini ": ProviderGemini,
		"OPENAI":   ProviderOpenAI,
		"Lattice":  ProviderLattice,
		"":         ProviderGemini,
	}
	for in, want := range cases {
		cfg := Config{Provider: in}
		cfg.Normalize()
		assert.Equal(t, want, cfg.Provider, in)
		assert.NoError(t, cfg.Validate(), in)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("HUE_PROVIDER", "claude")

	_, err := Load()
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestGeminiKeyFallbacks(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"primary", Config{GeminiAPIKey: "a", ViteGeminiAPIKey: "b", GoogleAPIKey: "c"}, "a"},
		{"vite", Config{ViteGeminiAPIKey: "b", GoogleAPIKey: "c"}, "b"},
		{"google", Config{GeminiAPIKey: "  ", GoogleAPIKey: "c"}, "c"},
		{"none", Config{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cfg.GeminiKey())
		})
	}
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", Config{Provider: ProviderOpenAI}.ModelName())
	assert.Equal(t, "custom", Config{Provider: ProviderOpenAI, Model: "custom"}.ModelName())
}

func TestBuildBackendMissingCredential(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()
	for _, p := range []string{ProviderGemini, ProviderOpenAI, ProviderLattice} {
		_, err := BuildBackend(ctx, Config{Provider: p})
		assert.ErrorIs(t, err, session.ErrMissingCredential, p)
	}
}

func TestBuildBackendOpenAI(t *testing.T) {
	b, err := BuildBackend(context.Background(), Config{Provider: ProviderOpenAI, OpenAIAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", b.Name())
}

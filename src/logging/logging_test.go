package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hue.log")
	c, err := Setup("debug", path)
	require.NoError(t, err)
	t.Cleanup(func() { log.Logger = zerolog.New(os.Stderr) })

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	log.Info().Str("project", "counterApp").Msg("switched")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"project":"counterApp"`)
	assert.Contains(t, string(data), `"message":"switched"`)
}

func TestSetupBadLevelFallsBackToInfo(t *testing.T) {
	c, err := Setup("loud", "")
	require.NoError(t, err)
	assert.NoError(t, c.Close())
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupStderrCloserIsReusable(t *testing.T) {
	c, err := Setup("info", "")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

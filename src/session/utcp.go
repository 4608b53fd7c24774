package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	utcp "github.com/universal-tool-calling-protocol/go-utcp"
)

// BuildUTCP loads UTCP tool providers for the Lattice agent. An empty path
// falls back to ~/utcp/provider.json. A missing file or a client error
// leaves the agent without UTCP tools.
func BuildUTCP(ctx context.Context, providersPath string) utcp.UtcpClientInterface {
	if strings.TrimSpace(providersPath) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		providersPath = filepath.Join(home, "utcp", "provider.json")
	}

	if _, err := os.Stat(providersPath); err != nil {
		log.Debug().Str("path", providersPath).Msg("UTCP providers file not found")
		return nil
	}

	client, err := utcp.NewUTCPClient(ctx, &utcp.UtcpClientConfig{ProvidersFilePath: providersPath}, nil, nil)
	if err != nil {
		log.Warn().Err(err).Str("path", providersPath).Msg("UTCP unavailable")
		return nil
	}
	return client
}

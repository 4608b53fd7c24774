package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	. "github.com/Protocol-Lattice/hue-playground/src"
	"github.com/Protocol-Lattice/hue-playground/src/config"
	"github.com/Protocol-Lattice/hue-playground/src/logging"
	"github.com/Protocol-Lattice/hue-playground/src/mcpserver"
)

// Standalone MCP entry point for clients that expect a dedicated binary.
// It behaves like `hue mcp`.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ config:", err)
		os.Exit(1)
	}
	if _, err := logging.Setup(cfg.LogLevel, ""); err != nil {
		fmt.Fprintln(os.Stderr, "❌ logging:", err)
		os.Exit(1)
	}

	pg, err := NewPlayground(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build playground")
	}
	defer pg.Close()

	if err := LoadProject(ctx, pg, cfg.Project); err != nil {
		log.Error().Err(err).Msg("initial project load failed")
	}

	if err := mcpserver.Serve(mcpserver.New(pg, cfg.ExportDir, "1.0.0")); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

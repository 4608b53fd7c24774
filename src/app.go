package src

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Protocol-Lattice/hue-playground/src/config"
	"github.com/Protocol-Lattice/hue-playground/src/playground"
	"github.com/Protocol-Lattice/hue-playground/src/projects"
	"github.com/Protocol-Lattice/hue-playground/src/session"
)

// NewPlayground wires the bundled projects to the configured chat backend.
// A missing credential is not an error here: the playground is returned
// without a session and reports the problem through ConfigErr.
func NewPlayground(ctx context.Context, cfg config.Config) (*playground.Playground, error) {
	cat, err := projects.Bundled()
	if err != nil {
		return nil, err
	}
	backend, err := config.BuildBackend(ctx, cfg)
	if errors.Is(err, session.ErrMissingCredential) {
		log.Warn().Str("provider", cfg.Provider).Msg("no API key configured")
		return playground.New(cat, nil), nil
	}
	if err != nil {
		return nil, err
	}
	sess, err := session.New(backend, cfg.ModelName())
	if err != nil {
		return nil, err
	}
	log.Info().Str("provider", backend.Name()).Str("model", cfg.ModelName()).Msg("chat backend ready")
	return playground.New(cat, sess), nil
}

// LoadProject opens key, or the default project when key is empty.
func LoadProject(ctx context.Context, pg *playground.Playground, key string) error {
	if key == "" {
		return pg.Initialize(ctx)
	}
	return pg.SwitchProject(ctx, key)
}

package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	agent "github.com/Protocol-Lattice/go-agent"
	adk "github.com/Protocol-Lattice/go-agent/src/adk"
	adkmodules "github.com/Protocol-Lattice/go-agent/src/adk/modules"
	"github.com/Protocol-Lattice/go-agent/src/memory"
	"github.com/Protocol-Lattice/go-agent/src/models"
	"github.com/Protocol-Lattice/go-agent/src/tools"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Lattice runs chats through a Lattice agent. The agent answers in one
// piece, so each reply arrives as a single chunk.
type Lattice struct {
	utcpProviders string
}

// NewLattice returns a backend whose agents optionally load UTCP tools from
// the providers file at utcpProviders.
func NewLattice(utcpProviders string) *Lattice {
	return &Lattice{utcpProviders: utcpProviders}
}

func (l *Lattice) Name() string { return "lattice" }

func (l *Lattice) Open(ctx context.Context, cfg Config) (Chat, error) {
	if cfg.Model == "" {
		return nil, ErrNoModel
	}
	ag, err := buildAgent(ctx, cfg.Model, cfg.SystemInstruction, l.utcpProviders)
	if err != nil {
		return nil, err
	}
	return &latticeChat{agent: ag, sessionID: uuid.NewString(), seed: cfg.History}, nil
}

func buildAgent(ctx context.Context, model, systemPrompt, utcpProviders string) (*agent.Agent, error) {
	u := BuildUTCP(ctx, utcpProviders)
	memOpts := memory.DefaultOptions()
	builder, err := adk.New(
		ctx,
		adk.WithDefaultSystemPrompt(systemPrompt),
		adk.WithModules(
			adkmodules.InMemoryMemoryModule(10000, memory.AutoEmbedder(), &memOpts),
			adkmodules.NewModelModule("gemini", func(_ context.Context) (models.Agent, error) {
				return models.NewGeminiLLM(ctx, model, "Hue playground coding assistant")
			}),
			adkmodules.NewToolModule("essentials",
				adkmodules.StaticToolProvider([]agent.Tool{&tools.EchoTool{}}, nil),
			),
		),
		adk.WithUTCP(u),
	)
	if err != nil {
		return nil, fmt.Errorf("build lattice agent: %w", err)
	}
	return builder.BuildAgent(ctx)
}

type latticeChat struct {
	agent     *agent.Agent
	sessionID string

	mu   sync.Mutex
	seed []Turn
}

func (c *latticeChat) SendStream(ctx context.Context, text string, onChunk func(string)) error {
	c.mu.Lock()
	prompt := text
	if len(c.seed) > 0 {
		prompt = renderSeed(c.seed) + "\n\n" + text
	}
	c.mu.Unlock()

	resp, err := c.agent.Generate(ctx, c.sessionID, prompt)
	if err != nil {
		return err
	}

	// The agent's memory holds the conversation once the seed was delivered.
	c.mu.Lock()
	c.seed = nil
	c.mu.Unlock()

	log.Debug().Str("session", c.sessionID).Int("bytes", len(resp)).Msg("lattice reply")
	onChunk(resp)
	return nil
}

func renderSeed(turns []Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", t.Role, t.Text)
	}
	return b.String()
}

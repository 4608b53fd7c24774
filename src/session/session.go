// Package session owns the network-facing chat with the hosted model.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrNotInitialized    = errors.New("chat session not initialized")
	ErrNoModel           = errors.New("model must be specified")
)

// Role is the author of a seeded history turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one seeded history entry.
type Turn struct {
	Role Role
	Text string
}

// Config describes a chat to open.
type Config struct {
	Model             string
	SystemInstruction string
	History           []Turn
}

// Chat is one open conversation. SendStream sends a user turn and calls
// onChunk for every text fragment received, in order.
type Chat interface {
	SendStream(ctx context.Context, text string, onChunk func(string)) error
}

// Backend opens chats against a hosted model API.
type Backend interface {
	Name() string
	Open(ctx context.Context, cfg Config) (Chat, error)
}

// Handlers receive the outcome of one send. Exactly one of OnError and
// OnComplete is called.
type Handlers struct {
	OnChunk    func(string)
	OnError    func(error)
	OnComplete func()
}

// Session wraps a Backend with a single initialization entry point.
type Session struct {
	backend Backend
	model   string

	mu   sync.Mutex
	chat Chat
}

// New returns a session for backend. A nil backend means no credential was
// configured.
func New(backend Backend, model string) (*Session, error) {
	if backend == nil {
		return nil, ErrMissingCredential
	}
	return &Session{backend: backend, model: model}, nil
}

func (s *Session) Backend() string { return s.backend.Name() }
func (s *Session) Model() string   { return s.model }

// Initialize opens a fresh chat seeded with the system instruction and
// history, replacing any previous chat.
func (s *Session) Initialize(ctx context.Context, systemInstruction string, history []Turn) error {
	if strings.TrimSpace(s.model) == "" {
		return ErrNoModel
	}
	chat, err := s.backend.Open(ctx, Config{
		Model:             s.model,
		SystemInstruction: systemInstruction,
		History:           history,
	})
	if err != nil {
		return fmt.Errorf("open %s chat: %w", s.backend.Name(), err)
	}
	s.mu.Lock()
	s.chat = chat
	s.mu.Unlock()
	log.Debug().Str("backend", s.backend.Name()).Str("model", s.model).Int("history", len(history)).Msg("chat initialized")
	return nil
}

// Ready reports whether a chat is open.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat != nil
}

// SendStream sends text and blocks until the stream ends.
func (s *Session) SendStream(ctx context.Context, text string, h Handlers) {
	s.mu.Lock()
	chat := s.chat
	s.mu.Unlock()

	fail := func(err error) {
		if h.OnError != nil {
			h.OnError(err)
		}
	}
	if chat == nil {
		fail(ErrNotInitialized)
		return
	}

	onChunk := func(c string) {
		if c != "" && h.OnChunk != nil {
			h.OnChunk(c)
		}
	}
	if err := chat.SendStream(ctx, text, onChunk); err != nil {
		log.Warn().Err(err).Str("backend", s.backend.Name()).Msg("stream failed")
		fail(err)
		return
	}
	if err := ctx.Err(); err != nil {
		fail(err)
		return
	}
	if h.OnComplete != nil {
		h.OnComplete()
	}
}

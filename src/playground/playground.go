// Package playground is the controller shared by the TUI, headless mode and
// the MCP server. It owns the workspace, drives the chat session and applies
// parsed replies.
package playground

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Protocol-Lattice/hue-playground/src/directive"
	"github.com/Protocol-Lattice/hue-playground/src/projects"
	"github.com/Protocol-Lattice/hue-playground/src/session"
	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

var (
	ErrBusy        = errors.New("a request is already in progress")
	ErrEmptyPrompt = errors.New("prompt is empty")
	ErrUnknownFile = errors.New("no such file in project")
)

const (
	msgInitFailed     = "AI functionality failed to initialize. Please try restarting or ensure your connection is stable."
	msgNotInitialized = "Cannot send: AI not initialized. Check API Key & logs."
)

// EventKind tells chunk events from the final event of a send.
type EventKind int

const (
	EventChunk EventKind = iota
	EventDone
)

// Event is delivered on the channel returned by Send. The last event on
// every channel is an EventDone.
type Event struct {
	Kind  EventKind
	Chunk string

	// Set on EventDone.
	Reply   string
	Summary directive.Summary
	Err     error
	// Stale is true when the project was switched while the reply was in
	// flight. Nothing from a stale reply is applied.
	Stale bool
}

// Option configures a Playground.
type Option func(*Playground)

// WithColorDiffs colors recorded diffs with ANSI escapes.
func WithColorDiffs(on bool) Option {
	return func(p *Playground) { p.ws = workspace.New(workspace.NewDiffTracker(on)) }
}

// WithIDs replaces the message id generator.
func WithIDs(newID func() string) Option {
	return func(p *Playground) {
		p.newID = newID
		p.parser = &directive.Parser{NewID: newID}
	}
}

type Playground struct {
	catalog *projects.Catalog
	sess    *session.Session
	parser  *directive.Parser
	newID   func() string

	// switchMu serializes project switches so chat re-initialization
	// happens in generation order.
	switchMu sync.Mutex

	mu        sync.Mutex
	ws        *workspace.Workspace
	gen       uint64
	ready     bool
	busy      bool
	cancel    context.CancelFunc
	streamBuf strings.Builder
}

// New returns a playground over catalog. A nil sess means no credential is
// configured: projects can still be browsed but nothing can be sent.
func New(catalog *projects.Catalog, sess *session.Session, opts ...Option) *Playground {
	p := &Playground{
		catalog: catalog,
		sess:    sess,
		parser:  directive.New(),
		newID:   uuid.NewString,
		ws:      workspace.New(nil),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ConfigErr reports the blocking configuration error, if any.
func (p *Playground) ConfigErr() error {
	if p.sess == nil {
		return session.ErrMissingCredential
	}
	return nil
}

func (p *Playground) Projects() []projects.Project { return p.catalog.List() }

// Initialize loads the catalog's default project.
func (p *Playground) Initialize(ctx context.Context) error {
	return p.SwitchProject(ctx, p.catalog.Default)
}

// SwitchProject replaces the whole workspace with the project's files and
// opens a fresh chat seeded with them. Any reply still in flight is
// cancelled and will be discarded.
func (p *Playground) SwitchProject(ctx context.Context, key string) error {
	project, err := p.catalog.Get(key)
	if err != nil {
		return err
	}

	p.switchMu.Lock()
	defer p.switchMu.Unlock()

	p.mu.Lock()
	p.gen++
	gen := p.gen
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.busy = false
	p.ready = false
	p.streamBuf.Reset()
	p.ws.Load(project.Key, project.Name, project.Files)
	p.mu.Unlock()

	log.Info().Str("project", project.Key).Uint64("generation", gen).Msg("project loaded")

	if p.sess == nil {
		return nil
	}

	initErr := p.sess.Initialize(ctx,
		session.SystemInstruction(project.FileNames()),
		session.SeedHistory(project.Files),
	)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return nil
	}
	if initErr != nil {
		log.Error().Err(initErr).Str("project", project.Key).Msg("chat initialization failed")
		p.ws.ResetMessages(p.system(msgInitFailed, workspace.KindError))
		return fmt.Errorf("initialize chat for %s: %w", project.Key, initErr)
	}
	p.ready = true
	p.ws.ResetMessages(p.system(
		fmt.Sprintf("AI context initialized for %s. Ready for your request.", project.Name),
		workspace.KindStatus,
	))
	return nil
}

// Send posts a user prompt and streams the reply. The returned channel
// carries chunk events followed by one EventDone, then closes; callers
// must drain it. The reply is parsed once, when the stream completes.
func (p *Playground) Send(ctx context.Context, text string) (<-chan Event, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyPrompt
	}
	if p.sess == nil {
		return nil, session.ErrMissingCredential
	}

	p.mu.Lock()
	if !p.ready {
		p.ws.AppendMessages([]workspace.Message{p.system(msgNotInitialized, workspace.KindError)})
		p.mu.Unlock()
		return nil, session.ErrNotInitialized
	}
	if p.busy {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.ws.AppendMessages([]workspace.Message{{ID: p.newID(), Sender: workspace.SenderUser, Text: text}})
	p.ws.BeginTask(text)
	p.busy = true
	p.streamBuf.Reset()
	sctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	gen := p.gen
	p.mu.Unlock()

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer cancel()

		var (
			reply     strings.Builder
			streamErr error
		)
		p.sess.SendStream(sctx, text, session.Handlers{
			OnChunk: func(c string) {
				reply.WriteString(c)
				p.preview(gen, c)
				select {
				case events <- Event{Kind: EventChunk, Chunk: c}:
				case <-sctx.Done():
				}
			},
			OnError:    func(err error) { streamErr = err },
			OnComplete: func() {},
		})
		events <- p.finish(gen, reply.String(), streamErr)
	}()
	return events, nil
}

// SendAndWait sends text and blocks until the reply has been applied.
func (p *Playground) SendAndWait(ctx context.Context, text string) (Event, error) {
	events, err := p.Send(ctx, text)
	if err != nil {
		return Event{}, err
	}
	var last Event
	for ev := range events {
		last = ev
	}
	return last, last.Err
}

func (p *Playground) preview(gen uint64, chunk string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen == p.gen {
		p.streamBuf.WriteString(chunk)
	}
}

func (p *Playground) finish(gen uint64, reply string, streamErr error) Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		log.Debug().Uint64("generation", gen).Uint64("current", p.gen).Msg("discarding stale reply")
		return Event{Kind: EventDone, Reply: reply, Err: streamErr, Stale: true}
	}
	p.busy = false
	p.cancel = nil
	p.streamBuf.Reset()

	if streamErr != nil {
		p.ws.AppendMessages([]workspace.Message{p.system("API Stream Error: "+streamErr.Error(), workspace.KindError)})
		return Event{Kind: EventDone, Reply: reply, Err: streamErr}
	}
	sum := p.parser.Parse(reply, p.ws)
	log.Info().
		Int("messages", sum.Messages).
		Int("plan_steps", sum.PlanSteps).
		Strs("files", sum.Files).
		Int("warnings", sum.Warnings).
		Msg("reply applied")
	return Event{Kind: EventDone, Reply: reply, Summary: sum}
}

// ParseResponse applies text as if the model had replied with it.
func (p *Playground) ParseResponse(text string) directive.Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.parser.Parse(text, p.ws)
}

// Close cancels any reply in flight.
func (p *Playground) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Playground) SelectFile(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ws.HasFile(path) {
		return fmt.Errorf("%w: %s", ErrUnknownFile, path)
	}
	p.ws.SelectFile(path)
	return nil
}

func (p *Playground) File(path string) (workspace.FileEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ws.Files().Get(path)
}

func (p *Playground) Diff(path string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ws.LastDiff(path)
}

// TakeChanges returns the file upserts applied since the last call.
func (p *Playground) TakeChanges() []workspace.FileChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ws.TakeChanges()
}

// Export writes the current file set under dir.
func (p *Playground) Export(ctx context.Context, dir string) ([]string, error) {
	p.mu.Lock()
	entries := p.ws.Files().Entries()
	p.mu.Unlock()
	return workspace.Export(ctx, dir, entries)
}

func (p *Playground) system(text string, kind workspace.Kind) workspace.Message {
	return workspace.Message{ID: p.newID(), Sender: workspace.SenderSystem, Text: text, Kind: kind}
}

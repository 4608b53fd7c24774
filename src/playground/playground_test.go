package playground

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Protocol-Lattice/hue-playground/src/projects"
	"github.com/Protocol-Lattice/hue-playground/src/session"
	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type respondFunc func(ctx context.Context, text string, onChunk func(string)) error

type fakeBackend struct {
	openErr error
	opens   atomic.Int32
	respond respondFunc
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Open(_ context.Context, _ session.Config) (session.Chat, error) {
	f.opens.Add(1)
	if f.openErr != nil {
		return nil, f.openErr
	}
	return fakeChat{f}, nil
}

type fakeChat struct{ b *fakeBackend }

func (c fakeChat) SendStream(ctx context.Context, text string, onChunk func(string)) error {
	return c.b.respond(ctx, text, onChunk)
}

func reply(chunks ...string) respondFunc {
	return func(_ context.Context, _ string, onChunk func(string)) error {
		for _, c := range chunks {
			onChunk(c)
		}
		return nil
	}
}

func counter() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newPlayground(t *testing.T, b *fakeBackend) *Playground {
	t.Helper()
	cat, err := projects.Bundled()
	require.NoError(t, err)
	var sess *session.Session
	if b != nil {
		sess, err = session.New(b, "test-model")
		require.NoError(t, err)
	}
	p := New(cat, sess, WithIDs(counter()))
	t.Cleanup(p.Close)
	return p
}

func TestInitializeLoadsDefaultProject(t *testing.T) {
	p := newPlayground(t, &fakeBackend{respond: reply()})
	require.NoError(t, p.Initialize(context.Background()))

	st := p.Snapshot()
	assert.Equal(t, "counterApp", st.ProjectKey)
	assert.Equal(t, "App.tsx", st.Selected)
	assert.True(t, st.Ready)
	assert.NoError(t, st.ConfigErr)
	require.Len(t, st.Messages, 1)
	assert.Equal(t, "AI context initialized for Counter App (React/TS). Ready for your request.", st.Messages[0].Text)
	assert.Equal(t, workspace.SenderSystem, st.Messages[0].Sender)
}

func TestSendAppliesParsedReply(t *testing.T) {
	b := &fakeBackend{respond: reply(
		"PLAN: Add a reset button\n",
		"CODE_UPDATE: components/Reset.tsx\n```tsx\nexport const Reset = () => null;\n",
		"```\nSIMULATING_TEST: click reset\n",
	)}
	p := newPlayground(t, b)
	require.NoError(t, p.Initialize(context.Background()))

	ev, err := p.SendAndWait(context.Background(), "  add a reset button ")
	require.NoError(t, err)
	assert.False(t, ev.Stale)
	assert.Equal(t, []string{"components/Reset.tsx"}, ev.Summary.Files)

	st := p.Snapshot()
	assert.False(t, st.Busy)
	assert.Empty(t, st.Streaming)
	assert.Equal(t, "add a reset button", st.Task)
	require.Len(t, st.Plan, 1)
	assert.Equal(t, "Add a reset button", st.Plan[0].Description)
	assert.Equal(t, "components/Reset.tsx", st.Selected)
	assert.Equal(t, "export const Reset = () => null;", st.Content)
	assert.Contains(t, st.Diff, "new file mode")

	f, ok := p.File("components/Reset.tsx")
	require.True(t, ok)
	assert.True(t, f.IsNew)

	var texts []string
	for _, m := range st.Messages {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{
		"AI context initialized for Counter App (React/TS). Ready for your request.",
		"add a reset button",
		"Add a reset button",
		"Updated file: components/Reset.tsx",
		"Simulating test: click reset",
	}, texts)

	changes := p.TakeChanges()
	require.Len(t, changes, 1)
	assert.Equal(t, "created", changes[0].Status)
	assert.Empty(t, p.TakeChanges())
}

func TestChunksAreStreamedBeforeDone(t *testing.T) {
	p := newPlayground(t, &fakeBackend{respond: reply("Hel", "lo")})
	require.NoError(t, p.Initialize(context.Background()))

	events, err := p.Send(context.Background(), "hi")
	require.NoError(t, err)
	var kinds []EventKind
	var last Event
	for ev := range events {
		kinds = append(kinds, ev.Kind)
		last = ev
	}
	assert.Equal(t, []EventKind{EventChunk, EventChunk, EventDone}, kinds)
	assert.Equal(t, "Hello", last.Reply)
}

func TestSendValidation(t *testing.T) {
	p := newPlayground(t, &fakeBackend{respond: reply()})
	require.NoError(t, p.Initialize(context.Background()))

	_, err := p.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestMissingCredentialBlocksSending(t *testing.T) {
	p := newPlayground(t, nil)
	require.NoError(t, p.Initialize(context.Background()))

	st := p.Snapshot()
	assert.ErrorIs(t, st.ConfigErr, session.ErrMissingCredential)
	assert.False(t, st.Ready)
	assert.Len(t, st.Files, 5)

	_, err := p.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, session.ErrMissingCredential)
}

func TestInitFailureRefusesSend(t *testing.T) {
	b := &fakeBackend{openErr: errors.New("offline")}
	p := newPlayground(t, b)
	require.Error(t, p.Initialize(context.Background()))

	_, err := p.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, session.ErrNotInitialized)

	st := p.Snapshot()
	require.Len(t, st.Messages, 2)
	assert.Equal(t, msgInitFailed, st.Messages[0].Text)
	assert.Equal(t, msgNotInitialized, st.Messages[1].Text)
	assert.Equal(t, workspace.KindError, st.Messages[1].Kind)
}

func TestStreamErrorClearsBusy(t *testing.T) {
	var calls atomic.Int32
	b := &fakeBackend{}
	b.respond = func(_ context.Context, _ string, onChunk func(string)) error {
		if calls.Add(1) == 1 {
			return errors.New("quota exceeded")
		}
		onChunk("All good.")
		return nil
	}
	p := newPlayground(t, b)
	require.NoError(t, p.Initialize(context.Background()))

	_, err := p.SendAndWait(context.Background(), "first")
	require.Error(t, err)
	st := p.Snapshot()
	assert.False(t, st.Busy)
	last := st.Messages[len(st.Messages)-1]
	assert.Equal(t, "API Stream Error: quota exceeded", last.Text)
	assert.Equal(t, workspace.KindError, last.Kind)

	_, err = p.SendAndWait(context.Background(), "again")
	require.NoError(t, err)
	st = p.Snapshot()
	assert.Equal(t, "All good.", st.Messages[len(st.Messages)-1].Text)
}

func TestBusyRejectsSecondSend(t *testing.T) {
	release := make(chan struct{})
	b := &fakeBackend{respond: func(_ context.Context, _ string, onChunk func(string)) error {
		<-release
		onChunk("done")
		return nil
	}}
	p := newPlayground(t, b)
	require.NoError(t, p.Initialize(context.Background()))

	events, err := p.Send(context.Background(), "one")
	require.NoError(t, err)
	assert.True(t, p.Snapshot().Busy)

	_, err = p.Send(context.Background(), "two")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	for range events {
	}
	assert.False(t, p.Snapshot().Busy)
}

func TestSwitchDiscardsStaleReply(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	b := &fakeBackend{respond: func(_ context.Context, _ string, onChunk func(string)) error {
		close(started)
		<-release
		onChunk("CODE_UPDATE: App.tsx\n```tsx\nstale\n```\n")
		return nil
	}}
	p := newPlayground(t, b)
	require.NoError(t, p.Initialize(context.Background()))

	events, err := p.Send(context.Background(), "change the app")
	require.NoError(t, err)
	<-started

	require.NoError(t, p.SwitchProject(context.Background(), "todoApp"))
	close(release)

	var last Event
	for ev := range events {
		last = ev
	}
	assert.True(t, last.Stale)
	assert.Zero(t, last.Summary.Messages)

	st := p.Snapshot()
	assert.Equal(t, "todoApp", st.ProjectKey)
	assert.Equal(t, "TodoApp.tsx", st.Selected)
	assert.True(t, st.Ready)
	assert.False(t, st.Busy)
	assert.Empty(t, st.Task)
	assert.Empty(t, st.Plan)
	_, ok := p.File("App.tsx")
	assert.False(t, ok)
	require.Len(t, st.Messages, 1)
	assert.Equal(t, "AI context initialized for Todo App (React/TS). Ready for your request.", st.Messages[0].Text)
	assert.EqualValues(t, 2, b.opens.Load())
}

func TestSwitchCancelsInFlightStream(t *testing.T) {
	started := make(chan struct{})
	b := &fakeBackend{respond: func(ctx context.Context, _ string, _ func(string)) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}}
	p := newPlayground(t, b)
	require.NoError(t, p.Initialize(context.Background()))

	events, err := p.Send(context.Background(), "slow")
	require.NoError(t, err)
	<-started
	require.NoError(t, p.SwitchProject(context.Background(), "todoApp"))

	var last Event
	for ev := range events {
		last = ev
	}
	assert.True(t, last.Stale)
	assert.ErrorIs(t, last.Err, context.Canceled)
	for _, m := range p.Snapshot().Messages {
		assert.NotContains(t, m.Text, "API Stream Error")
	}
}

func TestSwitchUnknownProject(t *testing.T) {
	p := newPlayground(t, &fakeBackend{respond: reply()})
	require.NoError(t, p.Initialize(context.Background()))
	assert.ErrorIs(t, p.SwitchProject(context.Background(), "nope"), projects.ErrUnknownProject)
	assert.Equal(t, "counterApp", p.Snapshot().ProjectKey)
}

func TestParseResponseWithoutModel(t *testing.T) {
	p := newPlayground(t, nil)
	require.NoError(t, p.Initialize(context.Background()))

	sum := p.ParseResponse("CODE_UPDATE: types.ts\n```ts\nexport type Theme = 'light';\n```\nTASK_COMPLETE")
	assert.True(t, sum.TaskComplete)
	f, ok := p.File("types.ts")
	require.True(t, ok)
	assert.Equal(t, "export type Theme = 'light';", f.Content)
	assert.False(t, f.IsNew)
	assert.Contains(t, p.Diff("types.ts"), "+export type Theme = 'light';")
}

func TestSelectFile(t *testing.T) {
	p := newPlayground(t, nil)
	require.NoError(t, p.Initialize(context.Background()))

	require.NoError(t, p.SelectFile("types.ts"))
	assert.Equal(t, "types.ts", p.Snapshot().Selected)
	assert.ErrorIs(t, p.SelectFile("missing.ts"), ErrUnknownFile)
}

func TestExport(t *testing.T) {
	p := newPlayground(t, nil)
	require.NoError(t, p.Initialize(context.Background()))

	dir := t.TempDir()
	written, err := p.Export(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, written, 5)

	data, err := os.ReadFile(filepath.Join(dir, "contexts", "ThemeContext.tsx"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

package src

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/hue-playground/src/playground"
	"github.com/Protocol-Lattice/hue-playground/src/projects"
	"github.com/Protocol-Lattice/hue-playground/src/session"
)

func TestRunHeadless(t *testing.T) {
	cat, err := projects.Bundled()
	require.NoError(t, err)
	reply := "PLAN: Track completed count\nCODE_UPDATE: types.ts\n```ts\nexport interface Todo { id: number; done: boolean }\n```\nTEST_RESULT: passes\nTASK_COMPLETE"
	sess, err := session.New(stubBackend{reply: reply}, "stub-model")
	require.NoError(t, err)
	pg := playground.New(cat, sess)
	t.Cleanup(pg.Close)

	dir := filepath.Join(t.TempDir(), "out")
	res, err := RunHeadless(context.Background(), pg, "todoApp", "count completed todos", dir)
	require.NoError(t, err)

	assert.Equal(t, reply, res.Response)
	require.Len(t, res.Actions, 1)
	assert.Equal(t, FileAction{Path: "types.ts", Action: "updated", Diff: res.Actions[0].Diff}, res.Actions[0])
	assert.Len(t, res.Exported, 5)

	var out bytes.Buffer
	PrintHeadless(&out, res)
	text := out.String()
	assert.Contains(t, text, "You: count completed todos")
	assert.Contains(t, text, "📋 Track completed count")
	assert.Contains(t, text, "🛠️  Updated file: types.ts")
	assert.Contains(t, text, "🧪 Test result: passes")
	assert.Contains(t, text, "✅ Task Complete!")
	assert.Contains(t, text, "💾 Updated types.ts")
	assert.Contains(t, text, "```diff")
}

func TestRunHeadlessWithoutCredential(t *testing.T) {
	cat, err := projects.Bundled()
	require.NoError(t, err)
	pg := playground.New(cat, nil)

	_, err = RunHeadless(context.Background(), pg, "", "hello", "")
	assert.ErrorIs(t, err, session.ErrMissingCredential)
}

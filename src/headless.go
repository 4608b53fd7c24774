// path: src/headless.go
package src

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Protocol-Lattice/hue-playground/src/playground"
	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

type FileAction struct {
	Path, Action string
	Diff         string
}

type HeadlessResult struct {
	Response string
	Messages []workspace.Message
	Actions  []FileAction
	Exported []string
}

// RunHeadless loads a project, sends one prompt and waits until the reply
// is applied. When exportDir is set the resulting file set is written there.
func RunHeadless(ctx context.Context, pg *playground.Playground, project, prompt, exportDir string) (*HeadlessResult, error) {
	if err := pg.ConfigErr(); err != nil {
		return nil, err
	}
	if err := LoadProject(ctx, pg, project); err != nil {
		return nil, err
	}

	before := len(pg.Snapshot().Messages)
	pg.TakeChanges()

	ev, err := pg.SendAndWait(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	msgs := pg.Snapshot().Messages
	res := &HeadlessResult{Response: ev.Reply, Messages: msgs[before:]}
	for _, c := range pg.TakeChanges() {
		res.Actions = append(res.Actions, FileAction{Path: c.Path, Action: c.Status, Diff: c.Diff})
	}

	if exportDir != "" {
		res.Exported, err = pg.Export(ctx, exportDir)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// PrintHeadless writes the transcript and file actions of a run.
func PrintHeadless(w io.Writer, res *HeadlessResult) {
	for _, m := range res.Messages {
		switch m.Kind {
		case workspace.KindCodeUpdate:
			fmt.Fprintf(w, "🛠️  %s\n", m.Text)
		case workspace.KindPlanStep:
			fmt.Fprintf(w, "📋 %s\n", m.Text)
		case workspace.KindTestLog:
			fmt.Fprintf(w, "🧪 %s\n", m.Text)
		case workspace.KindError:
			fmt.Fprintf(w, "❌ %s\n", m.Text)
		case workspace.KindTaskComplete:
			fmt.Fprintf(w, "✅ %s\n", m.Text)
		default:
			if m.Sender == workspace.SenderUser {
				fmt.Fprintf(w, "You: %s\n", m.Text)
			} else {
				fmt.Fprintf(w, "Hue: %s\n", m.Text)
			}
		}
	}

	if len(res.Actions) > 0 {
		fmt.Fprintln(w, "\n---")
	}
	for _, a := range res.Actions {
		switch a.Action {
		case "created":
			fmt.Fprintf(w, "💾 Created %s\n", a.Path)
		case "updated":
			fmt.Fprintf(w, "💾 Updated %s\n", a.Path)
		default:
			fmt.Fprintf(w, "ℹ️ %s unchanged\n", a.Path)
		}
		if strings.TrimSpace(a.Diff) != "" && a.Action != "unchanged" {
			fmt.Fprintln(w, "```diff")
			fmt.Fprint(w, a.Diff)
			if !strings.HasSuffix(a.Diff, "\n") {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, "```")
		}
	}
	for _, p := range res.Exported {
		fmt.Fprintf(w, "📦 %s\n", p)
	}
}

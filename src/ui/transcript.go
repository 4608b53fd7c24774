package ui

import (
	"strings"

	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

// RenderTranscript formats the chat log for the transcript viewport.
// streaming is the reply received so far while a stream is open.
func RenderTranscript(msgs []workspace.Message, streaming string, styles Styles) string {
	var blocks []string
	for _, m := range msgs {
		blocks = append(blocks, renderMessage(m, styles))
	}
	if streaming != "" {
		blocks = append(blocks, styles.AI.Render("Hue: ")+styles.Subtle.Render(streaming))
	}
	return strings.Join(blocks, "\n\n")
}

func renderMessage(m workspace.Message, styles Styles) string {
	switch m.Kind {
	case workspace.KindPlanStep:
		return styles.PlanStep.Render("📋 " + m.Text)
	case workspace.KindCodeUpdate:
		var b strings.Builder
		b.WriteString(styles.AI.Render("Hue: "))
		b.WriteString("Code update for " + m.FileName + ":")
		for _, line := range strings.Split(m.CodeContent, "\n") {
			b.WriteString("\n" + styles.Code.Render(line))
		}
		return b.String()
	case workspace.KindTestLog:
		return styles.TestLog.Render("🧪 " + m.Text)
	case workspace.KindError:
		return styles.Error.Render("❌ " + m.Text)
	case workspace.KindTaskComplete:
		return styles.Success.Render("✅ " + m.Text)
	case workspace.KindStatus:
		return styles.System.Render("ℹ️ " + m.Text)
	}

	switch m.Sender {
	case workspace.SenderUser:
		return styles.User.Render("You: ") + m.Text
	case workspace.SenderSystem:
		return styles.System.Render(m.Text)
	default:
		return styles.AI.Render("Hue: ") + m.Text
	}
}

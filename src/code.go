package src

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// codeRenderer highlights file content and diffs for the code pane.
// Glamour renderers are rebuilt only when the wrap width changes.
type codeRenderer struct {
	width    int
	renderer *glamour.TermRenderer

	lastKey string
	lastOut string
}

func (c *codeRenderer) render(path, body string, diff bool, width int) string {
	if width < 20 {
		width = 20
	}
	lang := fenceLangFromExt(filepath.Ext(path))
	if diff {
		lang = "diff"
	}
	key := lang + "\x00" + path + "\x00" + body
	if key == c.lastKey && width == c.width {
		return c.lastOut
	}

	if c.renderer == nil || width != c.width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Warn().Err(err).Msg("code highlighter unavailable")
			c.renderer = nil
		} else {
			c.renderer = r
		}
		c.width = width
	}

	out := body
	if c.renderer != nil {
		md := "```" + lang + "\n" + body + "\n```\n"
		if rendered, err := c.renderer.Render(md); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	c.lastKey, c.lastOut = key, out
	return out
}

func fenceLangFromExt(ext string) string {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "ts":
		return "ts"
	case "tsx":
		return "tsx"
	case "js":
		return "javascript"
	case "jsx":
		return "jsx"
	case "css":
		return "css"
	case "html":
		return "html"
	case "json":
		return "json"
	case "go":
		return "go"
	case "py":
		return "python"
	case "yaml", "yml":
		return "yaml"
	case "md":
		return "md"
	case "sh":
		return "bash"
	default:
		return ""
	}
}

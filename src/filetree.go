package src

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/Protocol-Lattice/hue-playground/src/projects"
	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

type fileItem struct {
	row workspace.TreeRow
}

func (f fileItem) Title() string {
	indent := strings.Repeat("  ", f.row.Depth)
	if f.row.IsDir {
		return indent + "📁 " + f.row.Name + "/"
	}
	name := indent + "📄 " + f.row.Name
	if f.row.IsNew {
		name += " ✨"
	}
	return name
}

func (f fileItem) Description() string {
	if f.row.IsNew {
		return "new"
	}
	return ""
}

func (f fileItem) FilterValue() string { return f.row.Path }

type projectItem struct {
	key, name string
	files     int
	current   bool
}

func (p projectItem) Title() string {
	if p.current {
		return "✅ " + p.name
	}
	return p.name
}
func (p projectItem) Description() string { return fmt.Sprintf("%s · %d files", p.key, p.files) }
func (p projectItem) FilterValue() string { return p.name }

// fileItems turns the explorer tree into list items. The second result is
// the index of selected, or -1.
func fileItems(rows []workspace.TreeRow, selected string) ([]list.Item, int) {
	items := make([]list.Item, 0, len(rows))
	at := -1
	for i, r := range rows {
		items = append(items, fileItem{row: r})
		if !r.IsDir && r.Path == selected {
			at = i
		}
	}
	return items, at
}

func projectItems(ps []projects.Project, current string) []list.Item {
	items := make([]list.Item, 0, len(ps))
	for _, p := range ps {
		items = append(items, projectItem{key: p.Key, name: p.Name, files: len(p.Files), current: p.Key == current})
	}
	return items
}

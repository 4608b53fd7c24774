// path: src/workspace/tracker.go
package workspace

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffTracker keeps the most recent unified diff produced for each path.
type DiffTracker struct {
	mu    sync.Mutex
	last  map[string]string
	color bool
}

func NewDiffTracker(color bool) *DiffTracker {
	return &DiffTracker{last: make(map[string]string), color: color}
}

// Record computes the diff between old and new content and stores it.
// An identical rewrite stores an empty diff.
func (t *DiffTracker) Record(path, oldContent, newContent string, existed bool) string {
	d := UnifiedDiff(path, oldContent, newContent, existed, t.color)
	t.mu.Lock()
	t.last[path] = d
	t.mu.Unlock()
	return d
}

// Last returns the most recent diff for path.
func (t *DiffTracker) Last(path string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last[path]
}

func (t *DiffTracker) Reset() {
	t.mu.Lock()
	t.last = make(map[string]string)
	t.mu.Unlock()
}

// edit represents a single line change in a diff.
type edit struct {
	tag  byte // ' ' same, '+' add, '-' del
	txt  string
	oldN int
	newN int
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// UnifiedDiff renders a git-style unified diff with three lines of context.
func UnifiedDiff(path, oldContent, newContent string, existed, color bool) string {
	if existed && oldContent == newContent {
		return ""
	}
	paint := func(c, s string) string {
		if !color {
			return s
		}
		return c + s + colorReset
	}

	seq := lineEdits(splitLines(oldContent), splitLines(newContent))

	var out strings.Builder
	out.WriteString(paint(colorBold+colorCyan, fmt.Sprintf("diff --git a/%s b/%s", path, path)) + "\n")
	if !existed {
		out.WriteString("new file mode 100644\n")
	}
	out.WriteString(fmt.Sprintf("index %s..%s 100644\n", shortSHA(oldContent), shortSHA(newContent)))
	if existed {
		out.WriteString(paint(colorCyan, "--- a/"+path) + "\n")
	} else {
		out.WriteString(paint(colorCyan, "--- /dev/null") + "\n")
	}
	out.WriteString(paint(colorCyan, "+++ b/"+path) + "\n")

	const ctx = 3
	for _, h := range hunks(seq, ctx) {
		var oldCount, newCount int
		for _, e := range h {
			if e.tag != '+' {
				oldCount++
			}
			if e.tag != '-' {
				newCount++
			}
		}
		oldStart, newStart := h[0].oldN, h[0].newN
		if oldCount == 0 {
			oldStart--
		}
		if newCount == 0 {
			newStart--
		}
		out.WriteString(paint(colorCyan, fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)) + "\n")
		for _, e := range h {
			switch e.tag {
			case '+':
				out.WriteString(paint(colorGreen, "+"+e.txt) + "\n")
			case '-':
				out.WriteString(paint(colorRed, "-"+e.txt) + "\n")
			default:
				out.WriteString(paint(colorGray, " "+e.txt) + "\n")
			}
		}
	}
	return out.String()
}

// lineEdits builds the edit script with diffmatchpatch in line mode. Each
// edit carries the 1-based line numbers it sits at in the old and new files.
func lineEdits(a, b []string) []edit {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	ca, cb, lines := dmp.DiffLinesToChars(joinLines(a), joinLines(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var seq []edit
	i, j := 1, 1
	for _, d := range diffs {
		for _, l := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				seq = append(seq, edit{' ', l, i, j})
				i++
				j++
			case diffmatchpatch.DiffDelete:
				seq = append(seq, edit{'-', l, i, j})
				i++
			case diffmatchpatch.DiffInsert:
				seq = append(seq, edit{'+', l, i, j})
				j++
			}
		}
	}
	return seq
}

// joinLines terminates every line so the last one diffs like the rest.
func joinLines(ls []string) string {
	if len(ls) == 0 {
		return ""
	}
	return strings.Join(ls, "\n") + "\n"
}

// hunks groups changed edits with up to ctx lines of surrounding context.
func hunks(seq []edit, ctx int) [][]edit {
	var out [][]edit
	start, end := -1, -1
	for idx, e := range seq {
		if e.tag == ' ' {
			continue
		}
		lo := max(0, idx-ctx)
		hi := min(len(seq), idx+ctx+1)
		if start >= 0 && lo <= end {
			end = hi
			continue
		}
		if start >= 0 {
			out = append(out, seq[start:end])
		}
		start, end = lo, hi
	}
	if start >= 0 {
		out = append(out, seq[start:end])
	}
	return out
}

// shortSHA returns a short SHA1-like index label for diff headers.
func shortSHA(s string) string {
	h := sha1.Sum([]byte(s))
	return fmt.Sprintf("%x", h[:3])
}

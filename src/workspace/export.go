package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

const exportConcurrency = 4

// Export writes every entry under dir, creating parent directories as
// needed. Paths that would escape dir are rejected.
func Export(ctx context.Context, dir string, entries []FileEntry) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve export dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	targets := make([]string, len(entries))
	for i, e := range entries {
		target := filepath.Join(abs, filepath.FromSlash(e.Path))
		if rel, err := filepath.Rel(abs, target); err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("export %q: path escapes %s", e.Path, abs)
		}
		targets[i] = target
	}

	written := make([]string, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)
	for i, e := range entries {
		target := targets[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("export %s: %w", e.Path, err)
			}
			if err := os.WriteFile(target, []byte(e.Content), 0o644); err != nil {
				return fmt.Errorf("export %s: %w", e.Path, err)
			}
			written[i] = target
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return written, nil
}

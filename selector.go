package dropzone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/gobeaver/dropzone/filevalidator"
)

// Selector is the explicit chooser behind TriggerSelection. An empty,
// nil-error result means the user cancelled.
type Selector interface {
	Select(ctx context.Context) ([]*filevalidator.Candidate, error)
}

// SelectorFunc adapts a function to the Selector interface
type SelectorFunc func(ctx context.Context) ([]*filevalidator.Candidate, error)

// Select calls f(ctx)
func (f SelectorFunc) Select(ctx context.Context) ([]*filevalidator.Candidate, error) {
	return f(ctx)
}

// PathSelector selects a fixed list of files
func PathSelector(paths ...string) Selector {
	return SelectorFunc(func(ctx context.Context) ([]*filevalidator.Candidate, error) {
		batch := make([]*filevalidator.Candidate, 0, len(paths))
		for _, p := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			c, err := filevalidator.FromPath(p)
			if err != nil {
				return nil, err
			}
			batch = append(batch, c)
		}
		return batch, nil
	})
}

// GlobSelector selects the regular files of dir whose base name matches
// pattern, sorted by name.
func GlobSelector(dir, pattern string) (Selector, error) {
	g, err := compileGlob(pattern)
	if err != nil {
		return nil, err
	}
	return SelectorFunc(func(ctx context.Context) ([]*filevalidator.Candidate, error) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		var batch []*filevalidator.Candidate
		for _, e := range entries {
			if e.IsDir() || !g.Match(e.Name()) {
				continue
			}
			c, err := filevalidator.FromPath(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, err
			}
			batch = append(batch, c)
		}
		return batch, nil
	}), nil
}

func compileGlob(pattern string) (glob.Glob, error) {
	if pattern == "" {
		pattern = "*"
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return g, nil
}

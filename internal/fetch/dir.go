package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Dir serves sources from files under a root directory. Targets are
// slash-separated and resolved relative to the root; ascent segments in a
// target may address files above the root, mirroring how a URL-based
// transport treats "../" against its base.
type Dir struct {
	root string
}

// NewDir creates a filesystem transport rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Fetch implements Fetcher.
func (d *Dir) Fetch(_ context.Context, target string) ([]byte, error) {
	path := filepath.Join(d.root, filepath.FromSlash(target))
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return src, nil
}

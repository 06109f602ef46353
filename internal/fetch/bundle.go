package fetch

import (
	"context"
	"fmt"
)

// Bundle serves sources from an in-memory map of target → text. It backs
// pre-bundled deployments and is the transport of choice in tests.
type Bundle map[string][]byte

// NewBundle builds a Bundle from string sources.
func NewBundle(sources map[string]string) Bundle {
	b := make(Bundle, len(sources))
	for target, src := range sources {
		b[target] = []byte(src)
	}
	return b
}

// Fetch implements Fetcher.
func (b Bundle) Fetch(_ context.Context, target string) ([]byte, error) {
	src, ok := b[target]
	if !ok {
		return nil, fmt.Errorf("target %q not present in bundle", target)
	}
	return src, nil
}

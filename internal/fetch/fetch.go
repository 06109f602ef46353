// Package fetch defines the source-transport boundary of the loader and
// its built-in implementations: an in-memory bundle, a filesystem
// directory, and an HTTP transport.
//
// The loader forms a fetch target by appending its configured source
// suffix to a canonical identifier; everything past that point is opaque
// to it, so transports are freely substitutable.
package fetch

import "context"

// Fetcher retrieves the raw source text for a fetch target. A failed fetch
// returns an error describing the transport failure; the loader wraps it
// into its own error taxonomy.
type Fetcher interface {
	Fetch(ctx context.Context, target string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, target string) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, target string) ([]byte, error) {
	return f(ctx, target)
}

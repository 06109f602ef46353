package fetch

import (
	"context"
	"fmt"
	"strings"

	"resty.dev/v3"
)

// HTTP fetches sources over HTTP(S) relative to a base URL.
type HTTP struct {
	client *resty.Client
	base   string
}

// NewHTTP creates an HTTP transport for the given base URL.
func NewHTTP(baseURL string) *HTTP {
	return &HTTP{
		client: resty.New(),
		base:   strings.TrimSuffix(baseURL, "/"),
	}
}

// Fetch implements Fetcher.
func (h *HTTP) Fetch(ctx context.Context, target string) ([]byte, error) {
	url := h.base + "/" + target
	res, err := h.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, res.Status())
	}
	return res.Bytes(), nil
}

// Close releases the underlying client's resources.
func (h *HTTP) Close() error {
	return h.client.Close()
}

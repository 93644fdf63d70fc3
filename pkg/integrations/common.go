package integrations

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultTimeout bounds a single registry request when no timeout is configured.
const DefaultTimeout = 20 * time.Second

var (
	// ErrNotFound is returned when a manifest or package doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures (DNS, refused connections, resets).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given request timeout.
// A non-positive timeout falls back to [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Fetcher retrieves a JSON document. [Client] is the production implementation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (gjson.Result, error)
}

// Package observability provides hooks for progress reporting and logging.
//
// Scans and HTTP clients emit events through hook interfaces. The defaults
// are no-ops; the CLI registers implementations at startup that drive the
// progress bar and debug logging.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScanHooks(&progressHooks{})
//	    observability.SetHTTPHooks(&logHooks{})
//	    // ... run scan
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scan().OnSourceStart(ctx, name)
//	// ... fetch and extract ...
//	observability.Scan().OnSourceComplete(ctx, name, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from a scan run.
type ScanHooks interface {
	// Discovery events (package scans only)
	OnDiscoveryStart(ctx context.Context, url string)
	OnDiscoveryComplete(ctx context.Context, url string, count int, duration time.Duration, err error)

	// OnScanStart is called once the source list is known.
	OnScanStart(ctx context.Context, scan string, sources int)

	// Per-source events
	OnSourceStart(ctx context.Context, name string)
	OnSourceComplete(ctx context.Context, name string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnDiscoveryStart(context.Context, string) {}
func (NoopScanHooks) OnDiscoveryComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopScanHooks) OnScanStart(context.Context, string, int)                       {}
func (NoopScanHooks) OnSourceStart(context.Context, string)                          {}
func (NoopScanHooks) OnSourceComplete(context.Context, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scanHooks ScanHooks = NoopScanHooks{}
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetScanHooks registers custom scan hooks.
// This should be called once at application startup before any scan runs.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
	httpHooks = NoopHTTPHooks{}
}

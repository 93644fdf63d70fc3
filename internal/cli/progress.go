package cli

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/matzehuels/extscan/pkg/observability"
)

// progressHooks renders scan progress: a spinner while the popular list is
// fetched, then a bar advancing once per source.
type progressHooks struct {
	observability.NoopScanHooks

	w       io.Writer
	mu      sync.Mutex
	spinner *Spinner
	bar     *progressbar.ProgressBar
}

func newProgressHooks(w io.Writer) *progressHooks {
	return &progressHooks{w: w}
}

func (p *progressHooks) OnDiscoveryStart(ctx context.Context, url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.spinner = newSpinner(ctx, p.w, "Fetching popular packages")
	p.spinner.Start()
}

func (p *progressHooks) OnDiscoveryComplete(context.Context, string, int, time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
}

func (p *progressHooks) OnScanStart(_ context.Context, scan string, sources int) {
	if sources == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar = newProgressBar(p.w, sources, "Scanning "+scan)
}

func (p *progressHooks) OnSourceStart(_ context.Context, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		p.bar.Describe(name)
	}
}

func (p *progressHooks) OnSourceComplete(context.Context, string, time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// close stops whatever is still rendering and clears it.
func (p *progressHooks) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
	if p.bar != nil {
		_ = p.bar.Clear()
		p.bar = nil
	}
}

func (p *progressHooks) stopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}

// newProgressBar creates a consistently styled bar on w.
func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
}

// httpLogHooks logs every registry request at debug level through the
// logger carried in the request context.
type httpLogHooks struct {
	observability.NoopHTTPHooks
}

func (httpLogHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	loggerFromContext(ctx).Debug("http", "method", method, "host", host, "path", path,
		"status", status, "duration", d.Round(time.Millisecond))
}

func (httpLogHooks) OnError(ctx context.Context, method, host, path string, err error) {
	loggerFromContext(ctx).Debug("http failed", "method", method, "host", host, "path", path, "err", err)
}

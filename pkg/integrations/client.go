package integrations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	exterrors "github.com/matzehuels/extscan/pkg/errors"
	"github.com/matzehuels/extscan/pkg/observability"
)

// maxBodySize caps how much of a response is read. Packagist package
// documents for large projects run to a few megabytes.
const maxBodySize = 64 << 20

// Client fetches JSON documents from manifest and registry endpoints.
// Every request is bounded by the client's timeout and every failure is
// returned as a coded [exterrors.Error].
type Client struct {
	http    *http.Client
	timeout time.Duration
	headers map[string]string
}

// NewClient creates a Client with the given per-request timeout and default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    NewHTTPClient(timeout),
		timeout: timeout,
		headers: headers,
	}
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Fetch performs an HTTP GET and parses the body as a JSON document.
//
// The body must be valid UTF-8 and valid JSON. Failures are classified as:
//   - [exterrors.ErrCodeTimeout]: the request exceeded the client timeout
//   - [exterrors.ErrCodeNetwork]: the transport failed (wraps [ErrNetwork])
//   - [exterrors.ErrCodeHTTPStatus]: any status outside 2xx (404 wraps [ErrNotFound])
//   - [exterrors.ErrCodeDecode]: the body is not UTF-8 or not JSON
//
// Cancellation of ctx itself is returned unclassified so callers can stop.
func (c *Client) Fetch(ctx context.Context, url string) (gjson.Result, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.doRequest(reqCtx, url)
	if err != nil {
		if ctx.Err() != nil {
			return gjson.Result{}, ctx.Err()
		}
		return gjson.Result{}, err
	}

	if !utf8.Valid(data) {
		return gjson.Result{}, exterrors.New(exterrors.ErrCodeDecode, "GET %s: response is not valid UTF-8", url)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, exterrors.New(exterrors.ErrCodeDecode, "GET %s: response is not valid JSON", url)
	}
	return gjson.ParseBytes(data), nil
}

// Ensure Client implements Fetcher.
var _ Fetcher = (*Client)(nil)

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, exterrors.Wrap(exterrors.ErrCodeInvalidInput, err, "GET %s", url)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, classify(url, err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, classify(url, err)
	}
	return data, nil
}

// classify maps a transport error to a timeout or network error.
func classify(url string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return exterrors.Wrap(exterrors.ErrCodeTimeout, err, "GET %s", url)
	}
	return exterrors.Wrap(exterrors.ErrCodeNetwork, fmt.Errorf("%w: %w", ErrNetwork, err), "GET %s", url)
}

// checkStatus accepts any 2xx status.
func checkStatus(url string, code int) error {
	switch {
	case code/100 == 2:
		return nil
	case code == http.StatusNotFound:
		return exterrors.Wrap(exterrors.ErrCodeHTTPStatus, fmt.Errorf("%w: status %d", ErrNotFound, code), "GET %s", url)
	default:
		return exterrors.Wrap(exterrors.ErrCodeHTTPStatus, fmt.Errorf("status %d", code), "GET %s", url)
	}
}

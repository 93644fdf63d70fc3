package scan

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/extscan/pkg/aggregate"
	exterrors "github.com/matzehuels/extscan/pkg/errors"
	"github.com/matzehuels/extscan/pkg/integrations"
	"github.com/matzehuels/extscan/pkg/manifest"
	"github.com/matzehuels/extscan/pkg/observability"
)

// DiscoveryName labels the discovery failure in error listings.
const DiscoveryName = "popular list"

// ManifestRecord is the result of successfully querying one source.
type ManifestRecord struct {
	Name       string   // Source name
	URL        string   // Source URL
	Version    string   // Selected version (empty for static sources)
	Runtime    string   // PHP constraint (empty if not declared)
	Extensions []string // Sorted, distinct, unprefixed extension names
}

// ErrorRecord is the failure of one source.
type ErrorRecord struct {
	Name    string         // Source name, or DiscoveryName
	Code    exterrors.Code // Classification label
	Message string         // Human-readable detail without the code
}

// NewErrorRecord converts err into an ErrorRecord for the named source.
func NewErrorRecord(name string, err error) ErrorRecord {
	return ErrorRecord{
		Name:    name,
		Code:    exterrors.GetCode(err),
		Message: exterrors.UserMessage(err),
	}
}

// Outcome is the result of one source: exactly one of Record and Err is set.
type Outcome struct {
	Source Source
	Record *ManifestRecord
	Err    *ErrorRecord
}

// OK reports whether the source was queried successfully.
func (o Outcome) OK() bool { return o.Record != nil }

// Run holds everything a scan produced, in enumeration order.
type Run struct {
	ID        string
	Scan      string
	Started   time.Time
	Duration  time.Duration
	Sources   []Source
	Records   []ManifestRecord
	Errors    []ErrorRecord
	Discovery *ErrorRecord // Set when the source list could not be produced
}

// Summary aggregates the extension lists of all successful sources.
func (r *Run) Summary() aggregate.Summary {
	lists := make([][]string, len(r.Records))
	for i, rec := range r.Records {
		lists[i] = rec.Extensions
	}
	return aggregate.Aggregate(lists)
}

// AllErrors returns the discovery error, if any, followed by per-source errors.
func (r *Run) AllErrors() []ErrorRecord {
	if r.Discovery == nil {
		return r.Errors
	}
	return append([]ErrorRecord{*r.Discovery}, r.Errors...)
}

func (r *Run) add(o Outcome) {
	if o.Record != nil {
		r.Records = append(r.Records, *o.Record)
		return
	}
	r.Errors = append(r.Errors, *o.Err)
}

// Scanner queries sources sequentially.
type Scanner struct {
	Fetcher integrations.Fetcher
	Logger  *log.Logger
	Hooks   observability.ScanHooks
}

// NewScanner creates a scanner that fetches through f.
// If logger is nil, log.Default() is used. Hooks default to the registered
// [observability.Scan] hooks.
func NewScanner(f integrations.Fetcher, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{
		Fetcher: f,
		Logger:  logger,
		Hooks:   observability.Scan(),
	}
}

// Run enumerates sources and inspects each of them in order.
//
// Failures of individual sources and of discovery are recorded in the
// returned Run. The only error Run returns is the cancellation of ctx.
func (s *Scanner) Run(ctx context.Context, e Enumerator) (*Run, error) {
	run := &Run{
		ID:      uuid.NewString(),
		Scan:    e.Name(),
		Started: time.Now().UTC(),
	}
	logger := s.Logger.With("scan", run.Scan, "run", run.ID)

	sources, err := e.Sources(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rec := NewErrorRecord(DiscoveryName, err)
		run.Discovery = &rec
		logger.Warn("source discovery failed, continuing with no sources", "err", err)
	}
	run.Sources = sources
	s.Hooks.OnScanStart(ctx, run.Scan, len(sources))
	logger.Debug("scanning sources", "count", len(sources))

	for _, src := range sources {
		o := s.Inspect(ctx, e, src)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run.add(o)
	}

	run.Duration = time.Since(run.Started)
	logger.Info("scan finished",
		"sources", len(run.Sources),
		"ok", len(run.Records),
		"failed", len(run.Errors),
		"duration", run.Duration.Round(time.Millisecond))
	return run, nil
}

// Inspect fetches one source and extracts its requirements.
func (s *Scanner) Inspect(ctx context.Context, e Enumerator, src Source) Outcome {
	s.Hooks.OnSourceStart(ctx, src.Name)
	start := time.Now()

	rec, err := s.inspect(ctx, e, src)
	s.Hooks.OnSourceComplete(ctx, src.Name, time.Since(start), err)

	if err != nil {
		er := NewErrorRecord(src.Name, err)
		// A cancelled run is discarded by Run, so its last source is not worth a warning.
		if ctx.Err() == nil {
			s.Logger.Warn("source failed", "source", src.Name, "code", er.Code, "err", er.Message)
		}
		return Outcome{Source: src, Err: &er}
	}
	s.Logger.Debug("source inspected",
		"source", src.Name,
		"version", rec.Version,
		"extensions", len(rec.Extensions))
	return Outcome{Source: src, Record: rec}
}

func (s *Scanner) inspect(ctx context.Context, e Enumerator, src Source) (*ManifestRecord, error) {
	if src.Err != nil {
		return nil, src.Err
	}
	doc, err := s.Fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	version, m := e.Locate(doc)
	req := manifest.Extract(m)
	return &ManifestRecord{
		Name:       src.Name,
		URL:        src.URL,
		Version:    version,
		Runtime:    req.Runtime,
		Extensions: req.Extensions,
	}, nil
}

package report

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/extscan/pkg/aggregate"
	exterrors "github.com/matzehuels/extscan/pkg/errors"
	"github.com/matzehuels/extscan/pkg/scan"
)

// TimeFormat is the layout of the "Generated:" line (UTC).
const TimeFormat = "2006-01-02T15:04:05Z"

// Default report file names.
const (
	FrameworksFile = "EXTENSIONS_FRAMEWORKS.md"
	PackagesFile   = "EXTENSIONS_PACKAGES.md"
)

// Placeholders for empty lists.
const (
	NoExtensionsInManifest = "(none found in composer.json)"
	None                   = "(none)"
)

// Style selects how the per-source section is laid out.
type Style string

const (
	StyleBlocks Style = "blocks" // One heading per source
	StyleList   Style = "list"   // One bullet per source
)

// Param is a run parameter echoed under the timestamp.
type Param struct {
	Key   string
	Value string
}

// Meta describes the document around the results.
type Meta struct {
	Title        string
	Generated    time.Time
	Params       []Param
	SourcesNote  string
	SectionTitle string
	Style        Style
}

// Input is everything Render needs.
type Input struct {
	Meta    Meta
	Records []scan.ManifestRecord
	Errors  []scan.ErrorRecord
	Summary aggregate.Summary
}

// FrameworksMeta returns the Meta of a framework scan report.
func FrameworksMeta(generated time.Time, params ...Param) Meta {
	return Meta{
		Title:        "PHP Extension Requirements (Framework Scan)",
		Generated:    generated,
		Params:       params,
		SourcesNote:  "composer.json require ext-* keys (framework repos).",
		SectionTitle: "Per-framework requirements",
		Style:        StyleBlocks,
	}
}

// PackagesMeta returns the Meta of a popular package scan report.
func PackagesMeta(generated time.Time, params ...Param) Meta {
	return Meta{
		Title:        "PHP Extension Requirements (Top Composer Packages)",
		Generated:    generated,
		Params:       params,
		SourcesNote:  "packagist popular list + package.json require ext-* keys.",
		SectionTitle: "Per-package requirements",
		Style:        StyleList,
	}
}

// FromRun builds an Input from a finished scan.
func FromRun(meta Meta, run *scan.Run) Input {
	return Input{
		Meta:    meta,
		Records: run.Records,
		Errors:  run.AllErrors(),
		Summary: run.Summary(),
	}
}

// Render formats in as a Markdown document ending in a newline.
func Render(in Input) string {
	w := &writer{}

	w.line("# ", in.Meta.Title)
	w.blank()
	w.line("Generated: ", in.Meta.Generated.UTC().Format(TimeFormat))
	for _, p := range in.Meta.Params {
		w.line(p.Key, ": ", p.Value)
	}
	w.blank()
	w.line("Sources: ", in.Meta.SourcesNote)
	w.blank()

	if len(in.Errors) > 0 {
		w.line("## Fetch errors")
		w.blank()
		for _, e := range in.Errors {
			w.line("- ", e.Name, ": ", string(e.Code), ": ", e.Message)
		}
		w.blank()
	}

	w.line("## ", in.Meta.SectionTitle)
	w.blank()
	switch in.Meta.Style {
	case StyleList:
		renderList(w, in.Records)
	default:
		renderBlocks(w, in.Records)
	}

	w.line("## Aggregate (union)")
	w.blank()
	w.line(joinOr(in.Summary.Union, None))
	w.blank()

	w.line("## Frequency")
	w.blank()
	w.line("| Extension | Count |")
	w.line("| --- | --- |")
	for _, row := range in.Summary.Rows() {
		w.line("| ", escapeCell(row.Extension), " | ", strconv.Itoa(row.Count), " |")
	}

	return w.String()
}

func renderBlocks(w *writer, records []scan.ManifestRecord) {
	for _, r := range records {
		w.line("### ", r.Name)
		w.blank()
		w.line("Source: ", r.URL)
		if r.Version != "" {
			w.line("Version: ", r.Version)
		}
		if r.Runtime != "" {
			w.line("PHP: ", r.Runtime)
		}
		w.line("Extensions:")
		w.line(joinOr(r.Extensions, NoExtensionsInManifest))
		w.blank()
	}
}

func renderList(w *writer, records []scan.ManifestRecord) {
	for _, r := range records {
		name := r.Name
		if r.Version != "" {
			name += " (" + r.Version + ")"
		}
		w.line("- ", name, ": ", joinOr(r.Extensions, None))
	}
	if len(records) > 0 {
		w.blank()
	}
}

// WriteFile writes text to path in one call, creating parent directories.
// Any failure is returned as an [exterrors.ErrCodeFatalIO] error.
func WriteFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exterrors.Wrap(exterrors.ErrCodeFatalIO, err, "create report directory")
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return exterrors.Wrap(exterrors.ErrCodeFatalIO, err, "write report")
	}
	return nil
}

// writer accumulates lines separated by "\n".
type writer struct {
	b strings.Builder
}

func (w *writer) line(parts ...string) {
	for _, p := range parts {
		w.b.WriteString(p)
	}
	w.b.WriteByte('\n')
}

func (w *writer) blank() { w.b.WriteByte('\n') }

func (w *writer) String() string { return w.b.String() }

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}

var cellEscaper = strings.NewReplacer("|", `\|`)

func escapeCell(s string) string { return cellEscaper.Replace(s) }

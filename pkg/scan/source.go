package scan

import (
	"context"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"

	exterrors "github.com/matzehuels/extscan/pkg/errors"
)

// Source is a named endpoint to query.
type Source struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`

	// Err is set when the source is known to be unusable before any fetch,
	// e.g. a discovered package name that cannot form a URL.
	Err error `toml:"-"`
}

// Enumerator produces the sources of one scan.
type Enumerator interface {
	// Name identifies the scan in logs and hooks ("frameworks", "packages").
	Name() string

	// Sources returns the ordered sources to query. An error means the
	// source list itself could not be produced.
	Sources(ctx context.Context) ([]Source, error)

	// Locate returns the manifest object inside a fetched document and the
	// version it belongs to (empty when the document is the manifest).
	Locate(doc gjson.Result) (version string, manifest gjson.Result)
}

// DefaultFrameworks is the built-in framework table, in report order.
var DefaultFrameworks = []Source{
	{Name: "Laravel", URL: "https://raw.githubusercontent.com/laravel/framework/11.x/composer.json"},
	{Name: "Symfony", URL: "https://raw.githubusercontent.com/symfony/symfony/7.2/composer.json"},
	{Name: "Magento", URL: "https://raw.githubusercontent.com/magento/magento2/2.4-develop/composer.json"},
	{Name: "Drupal", URL: "https://raw.githubusercontent.com/drupal/drupal/10.3.x/composer.json"},
	{Name: "WordPress", URL: "https://raw.githubusercontent.com/WordPress/wordpress-develop/trunk/composer.json"},
}

// Static enumerates a fixed table of manifests.
type Static struct {
	sources []Source
}

// NewStatic validates sources and returns an enumerator over them.
func NewStatic(sources []Source) (*Static, error) {
	if err := ValidateSources(sources); err != nil {
		return nil, err
	}
	return &Static{sources: slices.Clone(sources)}, nil
}

// MustStatic is like NewStatic but panics on invalid input.
// Intended for tables known at build time such as [DefaultFrameworks].
func MustStatic(sources []Source) *Static {
	s, err := NewStatic(sources)
	if err != nil {
		panic(err)
	}
	return s
}

// Name implements Enumerator.
func (s *Static) Name() string { return "frameworks" }

// Sources implements Enumerator. The table order is preserved.
func (s *Static) Sources(context.Context) ([]Source, error) {
	return slices.Clone(s.sources), nil
}

// Locate implements Enumerator. Static sources point straight at a manifest.
func (s *Static) Locate(doc gjson.Result) (string, gjson.Result) {
	return "", doc
}

// ValidateSources checks that a table is non-empty, every entry has a name
// and an http(s) URL, and names are unique.
func ValidateSources(sources []Source) error {
	if len(sources) == 0 {
		return exterrors.New(exterrors.ErrCodeInvalidInput, "source table is empty")
	}
	seen := make(map[string]bool, len(sources))
	for i, src := range sources {
		if src.Name == "" {
			return exterrors.New(exterrors.ErrCodeInvalidInput, "source %d has no name", i+1)
		}
		if seen[src.Name] {
			return exterrors.New(exterrors.ErrCodeInvalidInput, "duplicate source name %q", src.Name)
		}
		seen[src.Name] = true
		if err := exterrors.ValidateURL(src.URL); err != nil {
			return exterrors.Wrap(exterrors.ErrCodeInvalidInput, err, "source %q", src.Name)
		}
	}
	return nil
}

// sourceFile is the on-disk layout of a source table:
//
//	[[source]]
//	name = "Laravel"
//	url = "https://raw.githubusercontent.com/laravel/framework/11.x/composer.json"
type sourceFile struct {
	Source []Source `toml:"source"`
}

// LoadSources reads a TOML source table from path and validates it.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, exterrors.Wrap(exterrors.ErrCodeInvalidInput, err, "read source table")
	}
	var f sourceFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, exterrors.Wrap(exterrors.ErrCodeInvalidInput, err, "parse source table %s", path)
	}
	if err := ValidateSources(f.Source); err != nil {
		return nil, err
	}
	return f.Source, nil
}

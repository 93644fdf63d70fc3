package packagist

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	exterrors "github.com/matzehuels/extscan/pkg/errors"
	"github.com/matzehuels/extscan/pkg/integrations"
)

const (
	// DefaultPopularURL lists the most installed packages, one page of up to 100.
	DefaultPopularURL = "https://packagist.org/explore/popular.json?per_page=100"

	// DefaultPackageURL is the per-package metadata endpoint. {name} is
	// replaced with the "vendor/package" name.
	DefaultPackageURL = "https://packagist.org/packages/{name}.json"

	// NamePlaceholder is substituted in package URL templates.
	NamePlaceholder = "{name}"
)

// Client provides access to the Packagist popular list and package metadata.
// It does not cache and never retries; each call is a single request.
type Client struct {
	fetcher    integrations.Fetcher
	popularURL string
	packageURL string
}

// NewClient creates a Packagist client that fetches through f.
// Empty URLs fall back to [DefaultPopularURL] and [DefaultPackageURL].
func NewClient(f integrations.Fetcher, popularURL, packageURL string) *Client {
	if popularURL == "" {
		popularURL = DefaultPopularURL
	}
	if packageURL == "" {
		packageURL = DefaultPackageURL
	}
	return &Client{
		fetcher:    f,
		popularURL: popularURL,
		packageURL: packageURL,
	}
}

// PopularURL returns the endpoint used by [Client.Popular].
func (c *Client) PopularURL() string { return c.popularURL }

// Popular fetches the popular package list and returns at most limit names,
// in the order the registry ranks them. A non-positive limit returns all names.
//
// Returns the fetch error unchanged; callers decide whether a failed
// discovery is fatal.
func (c *Client) Popular(ctx context.Context, limit int) ([]string, error) {
	doc, err := c.fetcher.Fetch(ctx, c.popularURL)
	if err != nil {
		return nil, err
	}
	return PopularNames(doc, limit), nil
}

// PopularNames reads packages[].name from a popular-list document.
//
// Entries without a string name are skipped, names are normalized with
// [NormalizePkgName], and repeated names keep their first position. The
// result is truncated to limit when limit is positive. A "packages" value
// that is not an array yields no names.
func PopularNames(doc gjson.Result, limit int) []string {
	pkgs := doc.Get("packages")
	if !pkgs.IsArray() {
		return nil
	}

	var names []string
	seen := make(map[string]bool)

	pkgs.ForEach(func(_, item gjson.Result) bool {
		if limit > 0 && len(names) >= limit {
			return false
		}
		name := item.Get("name")
		if name.Type != gjson.String {
			return true
		}
		n := NormalizePkgName(name.String())
		if n == "" || seen[n] {
			return true
		}
		seen[n] = true
		names = append(names, n)
		return true
	})
	return names
}

// PackageURL returns the metadata URL for a package.
//
// The name is validated first so that it cannot escape the URL path.
// Returns an [exterrors.ErrCodeInvalidPackage] error for names that are not
// "vendor/package".
func (c *Client) PackageURL(name string) (string, error) {
	if err := exterrors.ValidateComposerPackageName(name); err != nil {
		return "", err
	}
	return strings.ReplaceAll(c.packageURL, NamePlaceholder, name), nil
}

// Versions returns the package.versions mapping of a package document.
// The result does not exist when the document lacks it.
func Versions(doc gjson.Result) gjson.Result {
	return doc.Get("package.versions")
}

// NormalizePkgName converts a package name to Packagist's canonical form:
// trimmed and lower-cased.
func NormalizePkgName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

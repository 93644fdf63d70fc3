package scan

import (
	"context"
	"time"

	"github.com/tidwall/gjson"

	exterrors "github.com/matzehuels/extscan/pkg/errors"
	"github.com/matzehuels/extscan/pkg/integrations/packagist"
	"github.com/matzehuels/extscan/pkg/manifest"
	"github.com/matzehuels/extscan/pkg/observability"
)

// DefaultTopN is how many popular packages a package scan inspects.
const DefaultTopN = 100

// Discovery enumerates the most popular Packagist packages.
type Discovery struct {
	client *packagist.Client
	topN   int
	order  manifest.Order
}

// NewDiscovery creates an enumerator over the first topN popular packages.
// A non-positive topN falls back to [DefaultTopN].
func NewDiscovery(client *packagist.Client, topN int, order manifest.Order) *Discovery {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if order == "" {
		order = manifest.OrderDocument
	}
	return &Discovery{client: client, topN: topN, order: order}
}

// Name implements Enumerator.
func (d *Discovery) Name() string { return "packages" }

// TopN returns the truncation bound.
func (d *Discovery) TopN() int { return d.topN }

// Order returns the version order used by Locate.
func (d *Discovery) Order() manifest.Order { return d.order }

// Sources implements Enumerator with a single popular-list fetch.
//
// A failed fetch is returned as an [exterrors.ErrCodeDiscovery] error.
// Names that cannot be turned into a package URL are returned with
// Source.Err set so that they are reported without being fetched.
func (d *Discovery) Sources(ctx context.Context) ([]Source, error) {
	hooks := observability.Scan()
	url := d.client.PopularURL()
	hooks.OnDiscoveryStart(ctx, url)
	start := time.Now()

	names, err := d.client.Popular(ctx, d.topN)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		err = exterrors.Wrap(exterrors.ErrCodeDiscovery, err, "fetch %s", url)
		hooks.OnDiscoveryComplete(ctx, url, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnDiscoveryComplete(ctx, url, len(names), time.Since(start), nil)

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		pkgURL, err := d.client.PackageURL(name)
		sources = append(sources, Source{Name: name, URL: pkgURL, Err: err})
	}
	return sources, nil
}

// Locate implements Enumerator by selecting one entry of package.versions.
// A package without versions yields an empty manifest.
func (d *Discovery) Locate(doc gjson.Result) (string, gjson.Result) {
	v, ok := manifest.SelectVersion(packagist.Versions(doc), d.order)
	if !ok {
		return "", gjson.Result{}
	}
	return v.Name, v.Manifest
}

// Package packagist provides a client for the Packagist registry.
//
// # Overview
//
// This package reads two endpoints of Packagist (https://packagist.org),
// the main Composer repository for PHP packages:
//
//   - the popular list (explore/popular.json), ranked by installs
//   - per-package metadata (packages/{name}.json), one manifest per version
//
// # Usage
//
//	client := packagist.NewClient(integrations.NewClient(20*time.Second, nil), "", "")
//
//	names, err := client.Popular(ctx, 100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	url, err := client.PackageURL(names[0])
//
// # Package Names
//
// Names are lower-cased and must be in "vendor/package" form before they are
// substituted into the package URL template; anything else is rejected with
// an INVALID_PACKAGE error rather than fetched.
package packagist

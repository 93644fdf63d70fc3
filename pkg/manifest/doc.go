// Package manifest extracts native-extension requirements from Composer
// manifests.
//
// # Extraction
//
// [Extract] reads the "require" mapping of a composer.json-shaped document.
// Keys beginning with "ext-" name PHP extensions; the prefix is stripped and
// the remainder lower-cased, so "ext-mbstring" and "EXT-MBString" both yield
// "mbstring". The "php" key, when it holds a string, is reported as the
// runtime constraint.
//
//	req := manifest.Extract(gjson.Parse(`{"require": {"php": ">=8.1", "ext-curl": "*"}}`))
//	// req.Runtime == ">=8.1", req.Extensions == []string{"curl"}
//
// A missing or malformed "require" value is treated as empty. Extraction
// never fails.
//
// # Version Selection
//
// Registry package documents carry one manifest per released version.
// [SelectVersion] picks the first version that is not a development build,
// falling back to the first version when all of them are. The order that
// "first" refers to is pinned by [Order]:
//
//   - [OrderDocument]: the order versions appear in the JSON document
//   - [OrderSemver]: highest semantic version first, unparseable names last
package manifest

// Package integrations provides the HTTP client used to fetch manifest and
// registry metadata.
//
// # Overview
//
// [Client.Fetch] issues a single GET, bounded by the client timeout, and
// returns the body as a [gjson.Result]. Registry payloads are loosely typed
// and only partially structured, so callers read optional fields with
// defaulted fallbacks instead of decoding into strict structs:
//
//	client := integrations.NewClient(20*time.Second, nil)
//	doc, err := client.Fetch(ctx, "https://raw.githubusercontent.com/laravel/framework/11.x/composer.json")
//	if err != nil {
//	    // err carries a code: TIMEOUT, NETWORK_ERROR, HTTP_STATUS or DECODE_ERROR
//	}
//	php := doc.Get("require.php").String()
//
// Registry-specific behavior lives in subpackages:
//
//   - [packagist]: PHP Composer popular list and package metadata
//
// Requests are never retried and responses are never cached; each scan is a
// single best-effort pass.
//
// [packagist]: github.com/matzehuels/extscan/pkg/integrations/packagist
// [gjson.Result]: github.com/tidwall/gjson.Result
package integrations

// Package scan runs the fetch → extract loop over an ordered list of sources.
//
// # Enumerators
//
// An [Enumerator] produces the sources of a scan and says where the manifest
// lives inside each fetched document:
//
//   - [Static]: a fixed table of named composer.json URLs (framework scan)
//   - [Discovery]: the top N of the Packagist popular list (package scan)
//
// # Running
//
// [Scanner.Run] visits sources one at a time, in order. Each visit yields an
// [Outcome] holding either a [ManifestRecord] or an [ErrorRecord]; a failed
// source never stops the scan. When discovery itself fails the run carries a
// single discovery error and no sources.
//
//	scanner := scan.NewScanner(integrations.NewClient(20*time.Second, nil), logger)
//	run, err := scanner.Run(ctx, scan.MustStatic(scan.DefaultFrameworks))
//	if err != nil {
//	    return err // only cancellation ends a run early
//	}
//	summary := run.Summary()
//
// Only cancellation of ctx makes Run return an error.
package scan

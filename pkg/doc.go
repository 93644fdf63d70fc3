// Package pkg provides the core libraries for extscan, a scanner that
// reports which PHP extensions popular projects require.
//
// # Overview
//
// extscan reads composer manifests, collects the ext-* entries of their
// require sections, and writes Markdown reports. The pkg directory is
// organized into these areas:
//
//  1. [integrations] - HTTP fetching and the Packagist client
//  2. [manifest] - Requirement extraction and version selection
//  3. [scan] - Source enumeration and the per-source scan loop
//  4. [aggregate] and [report] - Cross-source summary and Markdown output
//  5. [errors] and [observability] - Coded errors and progress hooks
//
// # Architecture
//
// The data flow of one scan:
//
//	Source table / Packagist popular list
//	         ↓
//	    [scan] Enumerator (ordered sources)
//	         ↓
//	    [integrations] Fetcher → [manifest] Extract   (per source)
//	         ↓
//	    results + errors
//	         ↓
//	    [aggregate] union + frequency
//	         ↓
//	    [report] Markdown file
//
// # Quick Start
//
// Scan the built-in framework table and render a report:
//
//	import (
//	    "context"
//	    "time"
//
//	    "github.com/matzehuels/extscan/pkg/integrations"
//	    "github.com/matzehuels/extscan/pkg/report"
//	    "github.com/matzehuels/extscan/pkg/scan"
//	)
//
//	client := integrations.NewClient(integrations.DefaultTimeout, nil)
//	run, err := scan.NewScanner(client, nil).Run(ctx, scan.MustStatic(scan.DefaultFrameworks))
//	if err != nil {
//	    return err // only cancellation
//	}
//	text := report.Render(report.FromRun(report.FrameworksMeta(time.Now()), run))
//	err = report.WriteFile(report.FrameworksFile, text)
//
// [integrations]: https://pkg.go.dev/github.com/matzehuels/extscan/pkg/integrations
// [manifest]: https://pkg.go.dev/github.com/matzehuels/extscan/pkg/manifest
// [scan]: https://pkg.go.dev/github.com/matzehuels/extscan/pkg/scan
// [aggregate]: https://pkg.go.dev/github.com/matzehuels/extscan/pkg/aggregate
// [report]: https://pkg.go.dev/github.com/matzehuels/extscan/pkg/report
// [errors]: https://pkg.go.dev/github.com/matzehuels/extscan/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/extscan/pkg/observability
package pkg

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/extscan/pkg/integrations"
	"github.com/matzehuels/extscan/pkg/report"
	"github.com/matzehuels/extscan/pkg/scan"
)

// metaFunc builds report metadata; report.FrameworksMeta and
// report.PackagesMeta both qualify.
type metaFunc func(generated time.Time, params ...report.Param) report.Meta

// runScan scans every source of e, renders the report, and writes it to path.
//
// Per-source and discovery failures end up in the report. Only cancellation
// and a failed write are returned as errors, and in both cases no report is
// written.
func (c *CLI) runScan(ctx context.Context, e scan.Enumerator, f integrations.Fetcher, path string, meta metaFunc, params ...report.Param) error {
	logger := loggerFromContext(ctx)

	restore := c.registerHooks()
	prog := newProgress(logger)
	run, err := scan.NewScanner(f, logger).Run(ctx, e)
	restore()
	if err != nil {
		return err
	}

	in := report.FromRun(meta(time.Now(), params...), run)
	if err := report.WriteFile(path, report.Render(in)); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d %s", len(run.Sources), e.Name()))

	printSuccess("Wrote %s", path)
	printStats(len(run.Records), len(in.Errors), len(in.Summary.Union))
	return nil
}

// timeoutParam echoes the request timeout in the report header.
func (c *CLI) timeoutParam() report.Param {
	return report.Param{Key: "Timeout", Value: c.cfg.Timeout.String()}
}

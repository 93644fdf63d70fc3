package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/extscan/internal/config"
	"github.com/matzehuels/extscan/pkg/integrations/packagist"
	"github.com/matzehuels/extscan/pkg/report"
	"github.com/matzehuels/extscan/pkg/scan"
)

// packagesCommand creates the popular package scan command.
func (c *CLI) packagesCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Scan the most popular Packagist packages",
		Long: `Fetch the Packagist popular list, then the metadata of each of the top N
packages, and report the PHP extensions the selected version requires.

The selected version is the first one that is not a development build, in
JSON document order by default or highest first with --version-order semver.

Examples:
  extscan packages
  TOP_N=20 extscan packages
  extscan packages --top-n 50 --version-order semver`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			client := c.newClient()
			discovery := scan.NewDiscovery(
				packagist.NewClient(client, c.cfg.PopularURL, c.cfg.PackageURL),
				c.cfg.TopN,
				c.cfg.Order(),
			)
			return c.runScan(cmd.Context(), discovery, client,
				c.outputPath(output, report.PackagesFile),
				report.PackagesMeta,
				report.Param{Key: "Top N", Value: strconv.Itoa(discovery.TopN())},
				report.Param{Key: "Version order", Value: string(discovery.Order())},
				c.timeoutParam())
		},
	}

	cmd.Flags().Int("top-n", config.DefaultTopN, "number of popular packages to scan (env TOP_N)")
	cmd.Flags().String("popular-url", packagist.DefaultPopularURL, "popular package list endpoint")
	cmd.Flags().String("package-url", packagist.DefaultPackageURL, "package metadata endpoint, {name} is replaced")
	cmd.Flags().String("version-order", config.DefaultVersionOrder, "version selection order: document or semver")
	cmd.Flags().StringVarP(&output, "output", "o", "", "report path (default <output-dir>/"+report.PackagesFile+")")

	return cmd
}

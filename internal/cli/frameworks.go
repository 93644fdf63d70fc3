package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/extscan/pkg/report"
)

// frameworksCommand creates the framework scan command.
func (c *CLI) frameworksCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "frameworks",
		Short: "Scan the composer.json of major PHP frameworks",
		Long: `Fetch the composer.json of each framework in the source table and report
the PHP extensions it requires.

The built-in table covers Laravel, Symfony, Magento, Drupal, and WordPress.
Use --sources to scan a different table:

  [[source]]
  name = "Laravel"
  url  = "https://raw.githubusercontent.com/laravel/framework/11.x/composer.json"

Examples:
  extscan frameworks
  extscan frameworks --sources my-frameworks.toml -o reports/frameworks.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			static, err := c.staticSources()
			if err != nil {
				return err
			}
			return c.runScan(cmd.Context(), static, c.newClient(),
				c.outputPath(output, report.FrameworksFile),
				report.FrameworksMeta, c.timeoutParam())
		},
	}

	cmd.Flags().String("sources", "", "TOML file with [[source]] name/url entries (default: built-in frameworks)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "report path (default <output-dir>/"+report.FrameworksFile+")")

	return cmd
}

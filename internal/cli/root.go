package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/extscan/internal/config"
	"github.com/matzehuels/extscan/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "extscan reports which PHP extensions popular projects require",
		Long: `extscan fetches composer manifests from major PHP frameworks and from the
most popular Packagist packages, collects the ext-* entries of their require
sections, and writes Markdown reports with per-project detail, the union of
all extensions, and how often each one is required.

Configuration is read from flags, EXTSCAN_* environment variables (TOP_N is
also honored), and an optional extscan.toml.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file (default ./extscan.toml, then "+config.ConfigDir()+"/extscan.toml)")
	pf.Duration("timeout", config.DefaultTimeout, "per-request timeout")
	pf.String("user-agent", config.DefaultUserAgent(), "User-Agent header sent to registries")
	pf.String("output-dir", config.DefaultOutputDir, "directory reports are written to (default is the working directory, not the binary's location)")

	root.AddCommand(c.frameworksCommand())
	root.AddCommand(c.packagesCommand())
	root.AddCommand(c.sourcesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

package cli

import (
	"github.com/spf13/cobra"
)

// sourcesCommand prints the framework table without fetching anything.
func (c *CLI) sourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the sources a framework scan would query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			static, err := c.staticSources()
			if err != nil {
				return err
			}
			sources, err := static.Sources(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, src := range sources {
				printKeyValue(w, src.Name, src.URL)
			}
			return nil
		},
	}

	cmd.Flags().String("sources", "", "TOML file with [[source]] name/url entries (default: built-in frameworks)")

	return cmd
}

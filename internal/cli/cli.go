package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/matzehuels/extscan/internal/config"
	"github.com/matzehuels/extscan/pkg/integrations"
	"github.com/matzehuels/extscan/pkg/observability"
	"github.com/matzehuels/extscan/pkg/scan"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for commands and display.
const appName = "extscan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stderr     io.Writer
	viper      *viper.Viper
	configFile string
	cfg        *config.Config
}

// New creates a new CLI instance whose logger and progress output go to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
		viper:  config.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig binds the parsed flags of cmd and loads the configuration.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	if err := config.BindFlags(c.viper, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(c.viper, c.configFile)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// newClient creates the registry client used by a scan.
func (c *CLI) newClient() *integrations.Client {
	return integrations.NewClient(c.cfg.Timeout, map[string]string{
		"User-Agent": c.cfg.UserAgent,
	})
}

// staticSources returns the framework table: the --sources file when given,
// the built-in table otherwise.
func (c *CLI) staticSources() (*scan.Static, error) {
	if c.cfg.SourcesFile == "" {
		return scan.NewStatic(scan.DefaultFrameworks)
	}
	sources, err := scan.LoadSources(c.cfg.SourcesFile)
	if err != nil {
		return nil, err
	}
	return scan.NewStatic(sources)
}

// outputPath returns the explicit --output path, or name inside the
// configured output directory.
func (c *CLI) outputPath(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(c.cfg.OutputDir, name)
}

// =============================================================================
// Hooks
// =============================================================================

// registerHooks installs debug logging for HTTP calls and, on a terminal,
// a progress display. The returned function restores the defaults.
func (c *CLI) registerHooks() func() {
	observability.SetHTTPHooks(httpLogHooks{})

	var bar *progressHooks
	if isTerminal(c.stderr) {
		bar = newProgressHooks(c.stderr)
		observability.SetScanHooks(bar)
	}

	return func() {
		if bar != nil {
			bar.close()
		}
		observability.Reset()
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package config

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/extscan/pkg/buildinfo"
	"github.com/matzehuels/extscan/pkg/integrations"
	"github.com/matzehuels/extscan/pkg/manifest"
	"github.com/matzehuels/extscan/pkg/scan"
)

const appName = "extscan"

// Defaults
const (
	DefaultTimeout      = integrations.DefaultTimeout
	DefaultTopN         = scan.DefaultTopN
	DefaultOutputDir    = "." // working directory
	DefaultVersionOrder = string(manifest.OrderDocument)
)

// DefaultUserAgent identifies extscan to registries.
func DefaultUserAgent() string {
	return appName + "/" + buildinfo.Version
}

// ConfigDir returns the config directory using XDG standard (~/.config/extscan/).
func ConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}


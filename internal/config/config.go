// Package config loads extscan settings from defaults, an optional config
// file, the environment, and command-line flags, in increasing precedence.
package config

import (
	"strings"
	"time"

	exterrors "github.com/matzehuels/extscan/pkg/errors"
	"github.com/matzehuels/extscan/pkg/integrations/packagist"
	"github.com/matzehuels/extscan/pkg/manifest"
)

// Config holds the settings shared by all scan commands.
type Config struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	TopN         int           `mapstructure:"top_n"`
	OutputDir    string        `mapstructure:"output_dir"`
	PopularURL   string        `mapstructure:"popular_url"`
	PackageURL   string        `mapstructure:"package_url"`
	VersionOrder string        `mapstructure:"version_order"`
	UserAgent    string        `mapstructure:"user_agent"`
	SourcesFile  string        `mapstructure:"sources_file"`
}

// Validate rejects settings no scan can run with. Unlike a fetch failure,
// a validation error aborts before any request is made.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return exterrors.New(exterrors.ErrCodeInvalidInput, "timeout must be positive, got %s", c.Timeout)
	}
	if c.TopN <= 0 {
		return exterrors.New(exterrors.ErrCodeInvalidInput, "top_n must be positive, got %d", c.TopN)
	}
	if _, err := manifest.ParseOrder(c.VersionOrder); err != nil {
		return exterrors.Wrap(exterrors.ErrCodeInvalidInput, err, "version_order")
	}
	if err := exterrors.ValidateURL(c.PopularURL); err != nil {
		return exterrors.Wrap(exterrors.ErrCodeInvalidInput, err, "popular_url")
	}
	if err := exterrors.ValidateURL(c.PackageURL); err != nil {
		return exterrors.Wrap(exterrors.ErrCodeInvalidInput, err, "package_url")
	}
	if !strings.Contains(c.PackageURL, packagist.NamePlaceholder) {
		return exterrors.New(exterrors.ErrCodeInvalidInput, "package_url must contain %s: %q", packagist.NamePlaceholder, c.PackageURL)
	}
	return nil
}

// Order returns the parsed version order. Call Validate first.
func (c *Config) Order() manifest.Order {
	o, _ := manifest.ParseOrder(c.VersionOrder)
	return o
}

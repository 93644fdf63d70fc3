package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	exterrors "github.com/matzehuels/extscan/pkg/errors"
	"github.com/matzehuels/extscan/pkg/integrations/packagist"
)

// EnvPrefix prefixes every environment variable (EXTSCAN_TIMEOUT, ...).
const EnvPrefix = "EXTSCAN"

// Keys
const (
	KeyTimeout      = "timeout"
	KeyTopN         = "top_n"
	KeyOutputDir    = "output_dir"
	KeyPopularURL   = "popular_url"
	KeyPackageURL   = "package_url"
	KeyVersionOrder = "version_order"
	KeyUserAgent    = "user_agent"
	KeySourcesFile  = "sources_file"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"timeout":       KeyTimeout,
	"top-n":         KeyTopN,
	"output-dir":    KeyOutputDir,
	"popular-url":   KeyPopularURL,
	"package-url":   KeyPackageURL,
	"version-order": KeyVersionOrder,
	"user-agent":    KeyUserAgent,
	"sources":       KeySourcesFile,
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// TOP_N predates the prefixed variables and is still honored.
	_ = v.BindEnv(KeyTopN, EnvPrefix+"_TOP_N", "TOP_N")

	return v
}

// BindFlags binds every known flag present in flags to its config key.
// Flags the command does not define are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return exterrors.Wrap(exterrors.ErrCodeInternal, err, "bind flag --%s", name)
		}
	}
	return nil
}

// Load reads the config file and returns the validated Config.
//
// When file is empty, extscan.toml is looked up in the working directory and
// then in [ConfigDir]; a missing file is not an error. An explicit file must
// exist.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir := ConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, exterrors.Wrap(exterrors.ErrCodeInvalidInput, err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, exterrors.Wrap(exterrors.ErrCodeInvalidInput, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyTopN, DefaultTopN)
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyPopularURL, packagist.DefaultPopularURL)
	v.SetDefault(KeyPackageURL, packagist.DefaultPackageURL)
	v.SetDefault(KeyVersionOrder, DefaultVersionOrder)
	v.SetDefault(KeyUserAgent, DefaultUserAgent())
	v.SetDefault(KeySourcesFile, "")
}

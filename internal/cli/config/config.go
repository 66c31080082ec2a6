package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables overriding configuration keys,
// e.g. SCHEMAPROF_DDL_DIALECT for ddl.dialect.
const EnvPrefix = "SCHEMAPROF"

// Config represents the schemaprof configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Instance InstanceConfig `mapstructure:"instance"`
	DDL      DDLConfig      `mapstructure:"ddl"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level     string `mapstructure:"level"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// ProfileConfig holds defaults for the profile command
type ProfileConfig struct {
	SkipOptional bool `mapstructure:"skip_optional"`
	FixDoc       bool `mapstructure:"fix_doc"`
	// Attributes lists rename overrides as old=new pairs. Pairs keep the
	// case of attribute names, which viper would fold in map keys.
	Attributes []string `mapstructure:"attributes"`
}

// InstanceConfig holds defaults for the example command
type InstanceConfig struct {
	Populate bool `mapstructure:"populate"`
}

// DDLConfig holds defaults for the ddl command
type DDLConfig struct {
	Dialect string `mapstructure:"dialect"`
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", MaxSizeMB: 10},
		Output:  OutputConfig{Format: "yaml"},
		Profile: ProfileConfig{Attributes: []string{}},
		DDL:     DDLConfig{Dialect: "postgres"},
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("output.format", "yaml")
	v.SetDefault("output.no_color", false)
	v.SetDefault("profile.skip_optional", false)
	v.SetDefault("profile.fix_doc", false)
	v.SetDefault("profile.attributes", []string{})
	v.SetDefault("instance.populate", false)
	v.SetDefault("ddl.dialect", "postgres")
	v.SetDefault("ddl.driver", "")
	v.SetDefault("ddl.dsn", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load loads the configuration. An explicit path must exist; otherwise
// schemaprof.yaml (or .yml) in the working directory is read when present.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("schemaprof")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// Config file not found - use defaults
		}
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Profile.Attributes == nil {
		config.Profile.Attributes = []string{}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got: %s", cfg.Log.Level)
	}
	if cfg.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive, got: %d", cfg.Log.MaxSizeMB)
	}
	if !slices.Contains([]string{"yaml", "json"}, cfg.Output.Format) {
		return fmt.Errorf("output.format must be yaml or json, got: %s", cfg.Output.Format)
	}
	if !slices.Contains([]string{"postgres", "sqlite"}, cfg.DDL.Dialect) {
		return fmt.Errorf("ddl.dialect must be postgres or sqlite, got: %s", cfg.DDL.Dialect)
	}
	if _, err := ParseOverrides(cfg.Profile.Attributes); err != nil {
		return fmt.Errorf("profile.attributes: %w", err)
	}
	return nil
}

// ParseOverrides converts old=new pairs to a rename map
func ParseOverrides(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		old, renamed, ok := strings.Cut(pair, "=")
		old, renamed = strings.TrimSpace(old), strings.TrimSpace(renamed)
		if !ok || old == "" || renamed == "" {
			return nil, fmt.Errorf("invalid override %q, expected old=new", pair)
		}
		overrides[old] = renamed
	}
	return overrides, nil
}

// Package config loads ftfold settings from defaults, an optional
// .ftfold.yaml and FTFOLD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Dir          string   `mapstructure:"dir"`
	Database     string   `mapstructure:"database"`
	Extensions   []string `mapstructure:"extensions"`
	LogVerbosity int      `mapstructure:"log_verbosity"`
	LogFile      string   `mapstructure:"log_file"`
}

func Default() *Config {
	return &Config{
		Dir:        "fts",
		Database:   filepath.Join("fts", "ft.db"),
		Extensions: []string{".ft", ".feature"},
	}
}

// Load reads configuration from path, or from .ftfold.yaml in the working
// directory when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FTFOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".ftfold")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("dir", d.Dir)
	v.SetDefault("database", d.Database)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("log_verbosity", d.LogVerbosity)
	v.SetDefault("log_file", d.LogFile)
}

func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("config: dir must not be empty")
	}
	if c.Database == "" {
		return fmt.Errorf("config: database must not be empty")
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("config: at least one extension is required")
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	return nil
}

// IsFeatureFile reports whether path has one of the configured extensions.
func (c *Config) IsFeatureFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/johanforsgren/toolmanager/internal/domain"
	"github.com/johanforsgren/toolmanager/internal/logger"
)

const (
	configDir  = ".toolmanager"
	configName = "config"
	envPrefix  = "TOOLMANAGER"
)

type Config struct {
	Destination   string               `mapstructure:"destination"`    // Directory archives are written to
	ListingSource domain.ListingSource `mapstructure:"listing_source"` // html or api
	Concurrency   int                  `mapstructure:"concurrency"`    // Parallel requirements fetches
	LogFile       string               `mapstructure:"log_file"`       // Empty disables the file sink
}

// Overrides carries CLI flag values. Empty fields leave the loaded value
// untouched.
type Overrides struct {
	Destination   string
	ListingSource string
	LogFile       string
}

// Load resolves defaults, then the config file, then TOOLMANAGER_* env
// vars, then overrides. An explicit path must exist; the default
// ~/.toolmanager/config.yaml is optional.
func Load(path string, overrides Overrides) (*Config, error) {
	v := viper.New()
	v.SetDefault("destination", ".")
	v.SetDefault("listing_source", string(domain.ListingSourceHTML))
	v.SetDefault("concurrency", 4)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		logger.LogFileOpen(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, configDir))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else {
			logger.LogFileOpen(v.ConfigFileUsed())
		}
	}

	if overrides.Destination != "" {
		v.Set("destination", overrides.Destination)
	}
	if overrides.ListingSource != "" {
		v.Set("listing_source", overrides.ListingSource)
	}
	if overrides.LogFile != "" {
		v.Set("log_file", overrides.LogFile)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Log("Config: destination=%s listing_source=%s concurrency=%d", cfg.Destination, cfg.ListingSource, cfg.Concurrency)
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.ListingSource {
	case domain.ListingSourceHTML, domain.ListingSourceAPI:
	default:
		return fmt.Errorf("invalid listing_source '%s': expected html or api", c.ListingSource)
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d: must be at least 1", c.Concurrency)
	}

	if c.Destination == "" {
		return errors.New("destination must not be empty")
	}

	info, err := os.Stat(c.Destination)
	if err != nil {
		return fmt.Errorf("destination %s: %w", c.Destination, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination %s is not a directory", c.Destination)
	}

	return nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/sakif/userdir/internal/repository"
)

// EnvPrefix is prepended to every environment key, e.g. USERDIR_LOG_LEVEL.
const EnvPrefix = "USERDIR"

// Load reads configuration with no config file.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from path (YAML) if non-empty, then applies
// environment overrides and validates the result.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("repository.backend", "memory")
	v.SetDefault("repository.dsn", ":memory:")
	v.SetDefault("repository.max_users", repository.DefaultMaxUsers)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stdout")

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		// An explicit path must exist; only the path itself is optional.
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees env values for keys viper knows about. Every key
	// has a default today, but binding them keeps overrides working if one
	// loses its default.
	for _, key := range []string{
		"repository.backend",
		"repository.dsn",
		"repository.max_users",
		"log.level",
		"log.format",
		"log.output",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return &cfg, nil
}

// Package config loads application settings from defaults, an optional YAML
// file and USERDIR_* environment variables, in increasing precedence.
package config

// Config holds all application configuration.
type Config struct {
	Repository RepositoryConfig `mapstructure:"repository" validate:"required"`
	Log        LogConfig        `mapstructure:"log" validate:"required"`
}

// RepositoryConfig selects and sizes the user store.
type RepositoryConfig struct {
	Backend  string `mapstructure:"backend" validate:"required,oneof=memory sqlite"`
	DSN      string `mapstructure:"dsn" validate:"required_if=Backend sqlite"`
	MaxUsers int    `mapstructure:"max_users" validate:"gt=0"`
}

// LogConfig controls the slog handler built by logging.Setup.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr"`
}

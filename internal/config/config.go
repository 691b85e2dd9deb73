// Package config defines application configuration and its loading rules.
// Values come from defaults, then an optional config file, then environment
// variables, with later sources taking precedence.
package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
}

// DatabaseConfig selects and parameterizes the storage backend.
type DatabaseConfig struct {
	// Driver selects the backend: "sqlite" for a local file database or
	// ":memory:" path, "postgres" for a server reachable via URL.
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`

	// Path is the SQLite database file. Used only when Driver is "sqlite".
	Path string `mapstructure:"path" validate:"required_if=Driver sqlite"`

	// URL is the Postgres connection string. Used only when Driver is
	// "postgres".
	URL string `mapstructure:"url" validate:"required_if=Driver postgres,omitempty,url"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

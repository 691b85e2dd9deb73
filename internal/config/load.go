package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables read by Load, e.g.
// CARDFOLD_DATABASE_DRIVER and CARDFOLD_LOG_LEVEL.
const envPrefix = "CARDFOLD"

// Load builds the application configuration. Precedence, lowest to highest:
// built-in defaults, an optional cardfold.yaml in the working directory or
// under ~/.config/cardfold, then CARDFOLD_* environment variables.
// The result is validated before being returned.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "cardfold.db")
	v.SetDefault("database.url", "")
	v.SetDefault("log.level", "info")

	v.SetConfigName("cardfold")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/cardfold")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/cardfold/cardfold/internal/cli"
	"github.com/cardfold/cardfold/internal/config"
	"github.com/cardfold/cardfold/internal/platform/logger"
	"github.com/cardfold/cardfold/internal/platform/sqlite"
	"github.com/cardfold/cardfold/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; real configuration comes from the
	// config file and CARDFOLD_* environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.Setup(cfg.Log.Level)
	log.Debug("configuration loaded",
		slog.String("driver", cfg.Database.Driver),
		slog.String("log_level", cfg.Log.Level))

	db, err := sqlite.Open(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	store := sqlite.NewDeckStore(db, nil, log)
	repo := repository.New(store)

	return cli.NewRootCmd(repo, log).Execute()
}

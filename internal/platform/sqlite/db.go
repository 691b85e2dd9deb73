package sqlite

import (
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cardfold/cardfold/internal/config"
)

// Open connects to the configured database backend and applies any pending
// schema migrations. The returned handle is ready for use by NewDeckStore.
func Open(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	if log == nil {
		log = slog.Default()
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.URL)
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// GORM's own logger is noisy at its defaults; application logging
		// happens in the store layer through slog.
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db, cfg.Driver, log); err != nil {
		return nil, err
	}

	log.Info("database ready",
		slog.String("driver", cfg.Driver),
		slog.String("path", cfg.Path))
	return db, nil
}

// sqliteDSN appends the foreign-key pragma so cascade deletes are enforced
// on every connection.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

package sqlite

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embeddedMigrations embed.FS

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...))
}

// Fatalf forwards to slog.Error without exiting; the migration error is
// returned to the caller which decides how to terminate.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// Migrate applies all pending embedded migrations for the given driver.
func Migrate(db *gorm.DB, driver string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	dialect := "sqlite3"
	dir := "sqlite"
	if driver == "postgres" {
		dialect = "postgres"
		dir = "postgres"
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB for migrations: %w", err)
	}

	sub, err := fs.Sub(embeddedMigrations, "migrations/"+dir)
	if err != nil {
		return fmt.Errorf("locate embedded migrations: %w", err)
	}

	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Debug("migrations applied", slog.String("dialect", dialect))
	return nil
}

package session

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cardfold/cardfold/internal/config"
	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/platform/sqlite"
	"github.com/cardfold/cardfold/internal/repository"
)

func newTestRepo(t *testing.T) *repository.SetWithCardsRepository {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "session_test.db"),
	}, log)
	require.NoError(t, err)

	return repository.New(sqlite.NewDeckStore(db, nil, log))
}

func seedSet(t *testing.T, repo *repository.SetWithCardsRepository, title string, cards ...domain.Card) int64 {
	t.Helper()

	set := domain.Set{Title: title}
	set.Touch(time.Now())
	id, err := repo.InsertSetWithCards(context.Background(), set, cards)
	require.NoError(t, err)
	return id
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardfold/cardfold/internal/config"
	"github.com/cardfold/cardfold/internal/platform/sqlite"
	"github.com/cardfold/cardfold/internal/repository"
)

func newTestRepo(t *testing.T) *repository.SetWithCardsRepository {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "cli_test.db"),
	}, log)
	require.NoError(t, err)

	return repository.New(sqlite.NewDeckStore(db, nil, log))
}

func runCmd(t *testing.T, repo *repository.SetWithCardsRepository, in string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(in))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportThenShow(t *testing.T) {
	repo := newTestRepo(t)

	path := writeCSV(t, "capitals.csv", "France,Paris\nSpain,Madrid\n")
	out, err := runCmd(t, repo, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "capitals")
	assert.Contains(t, out, "2 rows")

	sets, err := repo.GetAllSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "capitals", sets[0].Title)

	out, err = runCmd(t, repo, "", "show", strconv.FormatInt(sets[0].ID, 10))
	require.NoError(t, err)
	assert.Contains(t, out, "France")
	assert.Contains(t, out, "Madrid")
}

func TestImportTitleFlag(t *testing.T) {
	repo := newTestRepo(t)

	path := writeCSV(t, "raw.csv", "a,b\n")
	_, err := runCmd(t, repo, "", "import", path, "--title", "My Deck")
	require.NoError(t, err)

	sets, err := repo.GetAllSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "My Deck", sets[0].Title)
}

func TestImportDerivedTitleNotReusedAcrossRuns(t *testing.T) {
	repo := newTestRepo(t)

	root := NewRootCmd(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	// Same command tree executed twice; each file must keep its own
	// derived title.
	for _, name := range []string{"alpha.csv", "beta.csv"} {
		root.SetArgs([]string{"import", writeCSV(t, name, "q,a\n")})
		require.NoError(t, root.Execute())
	}

	sets, err := repo.GetAllSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 2)
	titles := []string{sets[0].Title, sets[1].Title}
	assert.ElementsMatch(t, []string{"alpha", "beta"}, titles)
}

func TestImportRejectsWideRows(t *testing.T) {
	repo := newTestRepo(t)

	path := writeCSV(t, "bad.csv", "a,b\nc,d,e\n")
	_, err := runCmd(t, repo, "", "import", path)
	require.Error(t, err)

	sets, err := repo.GetAllSets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sets, "a rejected import must not leave a partial set behind")
}

func TestSetsListsImportedSets(t *testing.T) {
	repo := newTestRepo(t)

	for _, name := range []string{"first.csv", "second.csv"} {
		path := writeCSV(t, name, "q,a\n")
		_, err := runCmd(t, repo, "", "import", path)
		require.NoError(t, err)
	}

	out, err := runCmd(t, repo, "", "sets")
	require.NoError(t, err)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}

func TestDeleteRemovesSet(t *testing.T) {
	repo := newTestRepo(t)

	path := writeCSV(t, "gone.csv", "q,a\n")
	_, err := runCmd(t, repo, "", "import", path)
	require.NoError(t, err)

	sets, err := repo.GetAllSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)

	_, err = runCmd(t, repo, "", "delete", strconv.FormatInt(sets[0].ID, 10))
	require.NoError(t, err)

	sets, err = repo.GetAllSets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestStudySessionSummary(t *testing.T) {
	repo := newTestRepo(t)

	path := writeCSV(t, "drill.csv", "1+1,2\n2+2,4\n3+3,6\n")
	_, err := runCmd(t, repo, "", "import", path)
	require.NoError(t, err)

	sets, err := repo.GetAllSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)
	id := strconv.FormatInt(sets[0].ID, 10)

	// Flip the first card, mark correct/incorrect/skip across the three.
	out, err := runCmd(t, repo, "f\nc\ni\ns\n", "study", id)
	require.NoError(t, err)
	assert.Contains(t, out, "correct:   1/3")
	assert.Contains(t, out, "incorrect: 1/3")
	assert.Contains(t, out, "skipped:   1/3")
}

func TestStudyQuitPrintsSummary(t *testing.T) {
	repo := newTestRepo(t)

	path := writeCSV(t, "drill.csv", "q,a\n")
	_, err := runCmd(t, repo, "", "import", path)
	require.NoError(t, err)

	sets, err := repo.GetAllSets(context.Background())
	require.NoError(t, err)
	id := strconv.FormatInt(sets[0].ID, 10)

	out, err := runCmd(t, repo, "q\n", "study", id)
	require.NoError(t, err)
	assert.Contains(t, out, "skipped:   0/1")
}

func TestEditAddAndRename(t *testing.T) {
	repo := newTestRepo(t)

	path := writeCSV(t, "base.csv", "q,a\n")
	_, err := runCmd(t, repo, "", "import", path)
	require.NoError(t, err)

	sets, err := repo.GetAllSets(context.Background())
	require.NoError(t, err)
	id := strconv.FormatInt(sets[0].ID, 10)

	_, err = runCmd(t, repo, "", "edit", "add", id, "--front", "q2", "--back", "a2")
	require.NoError(t, err)

	cards, err := repo.GetCards(context.Background(), sets[0].ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "q2", cards[1].FrontText)

	_, err = runCmd(t, repo, "", "edit", "rename", id, "renamed")
	require.NoError(t, err)

	set, err := repo.GetSet(context.Background(), sets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", set.Title)
}

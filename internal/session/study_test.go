package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardfold/cardfold/internal/domain"
)

func startedStudy(t *testing.T, shuffled, onlyStarred bool, cards ...domain.Card) (*Study, int64) {
	t.Helper()

	repo := newTestRepo(t)
	id := seedSet(t, repo, "study me", cards...)

	study := NewStudy(repo, id, shuffled, onlyStarred, testLogger())
	require.NoError(t, study.Start(context.Background()))
	return study, id
}

func TestStudyStartInitializesTracking(t *testing.T) {
	study, _ := startedStudy(t, false, false,
		domain.Card{FrontText: "a"},
		domain.Card{FrontText: "b"},
		domain.Card{FrontText: "c"},
	)

	state := study.State()
	require.Len(t, state.Cards, 3)
	assert.Equal(t, []bool{false, false, false}, state.Flipped)
	assert.Equal(t, []domain.Mark{domain.MarkSkipped, domain.MarkSkipped, domain.MarkSkipped}, state.Marks)
	assert.Equal(t, "a", state.Cards[0].FrontText, "unshuffled session keeps position order")
}

func TestStudyStartStampsLastViewed(t *testing.T) {
	repo := newTestRepo(t)
	id := seedSet(t, repo, "stamped", domain.Card{FrontText: "a"})
	ctx := context.Background()

	before, err := repo.GetSet(ctx, id)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	study := NewStudy(repo, id, false, false, testLogger())
	require.NoError(t, study.Start(ctx))

	after, err := repo.GetSet(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.LastViewedDate.After(before.LastViewedDate),
		"starting a session must refresh the last viewed date")
	assert.WithinDuration(t, before.LastModifiedDate, after.LastModifiedDate, time.Millisecond,
		"starting a session must not touch the last modified date")

	// The set's cards are untouched by the stamp.
	cards, err := repo.GetCards(ctx, id)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestStudyFlip(t *testing.T) {
	study, _ := startedStudy(t, false, false, domain.Card{FrontText: "a"}, domain.Card{FrontText: "b"})

	study.Flip(1)
	assert.Equal(t, []bool{false, true}, study.State().Flipped)

	study.Flip(1)
	assert.Equal(t, []bool{false, false}, study.State().Flipped)

	// Out-of-range flips are ignored.
	study.Flip(-1)
	study.Flip(2)
	assert.Equal(t, []bool{false, false}, study.State().Flipped)
}

func TestStudySetMark(t *testing.T) {
	study, _ := startedStudy(t, false, false, domain.Card{FrontText: "a"}, domain.Card{FrontText: "b"})

	study.SetMark(0, domain.MarkCorrect)
	study.SetMark(1, domain.MarkIncorrect)
	assert.Equal(t, []domain.Mark{domain.MarkCorrect, domain.MarkIncorrect}, study.State().Marks)

	// Out-of-range and undefined marks are ignored.
	study.SetMark(5, domain.MarkCorrect)
	study.SetMark(-1, domain.MarkCorrect)
	study.SetMark(0, domain.Mark(42))
	assert.Equal(t, []domain.Mark{domain.MarkCorrect, domain.MarkIncorrect}, study.State().Marks)
}

func TestStudyRestartResetsEverything(t *testing.T) {
	study, _ := startedStudy(t, false, false, domain.Card{FrontText: "a"}, domain.Card{FrontText: "b"})

	study.Flip(0)
	study.SetMark(0, domain.MarkCorrect)
	study.SetMark(1, domain.MarkIncorrect)

	require.NoError(t, study.Restart(context.Background()))

	state := study.State()
	assert.Equal(t, []bool{false, false}, state.Flipped)
	assert.Equal(t, []domain.Mark{domain.MarkSkipped, domain.MarkSkipped}, state.Marks)
}

func TestStudySummary(t *testing.T) {
	study, _ := startedStudy(t, false, false,
		domain.Card{FrontText: "a"},
		domain.Card{FrontText: "b"},
		domain.Card{FrontText: "c"},
	)

	study.SetMark(0, domain.MarkCorrect)
	study.SetMark(1, domain.MarkIncorrect)

	sum := study.Summary()
	assert.Equal(t, Summary{Correct: 1, Incorrect: 1, Skipped: 1, Total: 3}, sum)
}

func TestStudyStarredOnlyWithNoStarsIsEmptyNotFatal(t *testing.T) {
	study, _ := startedStudy(t, false, true,
		domain.Card{FrontText: "a"},
		domain.Card{FrontText: "b"},
	)

	state := study.State()
	assert.Empty(t, state.Cards)
	assert.Empty(t, state.Flipped)
	assert.Empty(t, state.Marks)
	assert.Equal(t, Summary{}, study.Summary())

	// Operations on the empty session stay no-ops.
	study.Flip(0)
	study.SetMark(0, domain.MarkCorrect)
	assert.Equal(t, Summary{}, study.Summary())
}

func TestStudyStarredOnlyFiltersCards(t *testing.T) {
	study, _ := startedStudy(t, false, true,
		domain.Card{FrontText: "plain"},
		domain.Card{FrontText: "special", Starred: true},
	)

	state := study.State()
	require.Len(t, state.Cards, 1)
	assert.Equal(t, "special", state.Cards[0].FrontText)
	assert.Len(t, state.Marks, 1)
}

func TestStudyToggleStarredPersistsImmediately(t *testing.T) {
	repo := newTestRepo(t)
	id := seedSet(t, repo, "stars", domain.Card{FrontText: "a"})
	ctx := context.Background()

	study := NewStudy(repo, id, false, false, testLogger())
	require.NoError(t, study.Start(ctx))

	card := study.State().Cards[0]
	require.False(t, card.Starred)

	require.NoError(t, study.ToggleStarred(ctx, card))

	// Visible in the session without a restart, and durable in the store.
	assert.True(t, study.State().Cards[0].Starred)
	persisted, err := repo.GetCards(ctx, id)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.True(t, persisted[0].Starred)

	// Toggling back restores the original value.
	require.NoError(t, study.ToggleStarred(ctx, study.State().Cards[0]))
	persisted, err = repo.GetCards(ctx, id)
	require.NoError(t, err)
	assert.False(t, persisted[0].Starred)
}

func TestStudyOverVanishedSetIsEmpty(t *testing.T) {
	repo := newTestRepo(t)

	study := NewStudy(repo, 404, false, false, testLogger())
	require.NoError(t, study.Start(context.Background()))

	state := study.State()
	assert.Empty(t, state.Cards)
	assert.Equal(t, Summary{}, study.Summary())

	// No phantom set row was created by the last-viewed stamp.
	sets, err := repo.GetAllSets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sets)
}

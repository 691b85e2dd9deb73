package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/platform/logger"
	"github.com/cardfold/cardfold/internal/repository"
)

// LibraryState is a snapshot of the library screen: every set ordered by
// last viewed date, plus an optional selection.
type LibraryState struct {
	Sets     []domain.Set
	Selected *domain.Set
}

// Library is the session behind the set list: it keeps a live view of all
// sets, a single toggling selection, and the CSV import workflow.
type Library struct {
	repo *repository.SetWithCardsRepository
	log  *slog.Logger

	mu       sync.Mutex
	sets     []domain.Set
	selected *domain.Set

	cancel  context.CancelFunc
	done    chan struct{}
	updates chan LibraryState
}

// NewLibrary creates a library session. Call Start before reading state.
func NewLibrary(repo *repository.SetWithCardsRepository, log *slog.Logger) *Library {
	if repo == nil {
		panic("repo cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Library{
		repo:    repo,
		log:     log.With(slog.String("component", "library_session")),
		updates: make(chan LibraryState, 1),
	}
}

// Start subscribes to the set list. The subscription lives until Stop is
// called or ctx is cancelled.
func (l *Library) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})

	ch := l.repo.WatchAllSets(ctx)
	go func() {
		defer close(l.done)
		defer close(l.updates)
		for sets := range ch {
			l.mu.Lock()
			l.sets = sets
			state := l.stateLocked()
			l.mu.Unlock()
			pushLatest(l.updates, state)
		}
	}()
}

// Stop cancels the session's subscriptions and waits for them to finish.
func (l *Library) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel = nil
}

// State returns a snapshot of the current library state.
func (l *Library) State() LibraryState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stateLocked()
}

// Updates delivers state snapshots as the underlying set list changes.
// Delivery is latest-value-wins for slow consumers. The channel closes when
// the subscription ends, whether through Stop, context cancellation, or a
// failed watch query.
func (l *Library) Updates() <-chan LibraryState {
	return l.updates
}

func (l *Library) stateLocked() LibraryState {
	state := LibraryState{Sets: make([]domain.Set, len(l.sets))}
	copy(state.Sets, l.sets)
	if l.selected != nil {
		sel := *l.selected
		state.Selected = &sel
	}
	return state
}

// Select toggles the selection: selecting the currently selected set clears
// it.
func (l *Library) Select(set domain.Set) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected != nil && l.selected.ID == set.ID {
		l.selected = nil
		return
	}
	sel := set
	l.selected = &sel
}

// DeleteSelected deletes the selected set, cascading to its cards, and
// clears the selection. Without a selection it is a no-op.
func (l *Library) DeleteSelected(ctx context.Context) error {
	l.mu.Lock()
	selected := l.selected
	l.mu.Unlock()
	if selected == nil {
		return nil
	}

	if err := l.repo.DeleteSet(ctx, *selected); err != nil {
		return err
	}

	l.mu.Lock()
	l.selected = nil
	l.mu.Unlock()
	return nil
}

// ImportSet builds one card per row and persists a new set titled name.
//
// Each row holds up to two columns: front text, then optional back text. A
// row with more than two columns aborts the whole import with
// ErrImportFormat and leaves the store untouched. Zero rows is a no-op that
// reports an unset set ID.
func (l *Library) ImportSet(ctx context.Context, name string, rows [][]string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, l.log)

	if len(rows) == 0 {
		return domain.UnsetID, nil
	}

	cards := make([]domain.Card, 0, len(rows))
	for i, row := range rows {
		if len(row) > 2 {
			log.Warn("import aborted",
				slog.Int("row", i+1),
				slog.Int("columns", len(row)))
			return domain.UnsetID, fmt.Errorf("%w: row %d has %d columns", ErrImportFormat, i+1, len(row))
		}
		var card domain.Card
		if len(row) > 0 {
			card.FrontText = row[0]
		}
		if len(row) > 1 {
			card.BackText = row[1]
		}
		cards = append(cards, card)
	}

	set := domain.Set{Title: name}
	set.Touch(time.Now())

	id, err := l.repo.InsertSetWithCards(ctx, set, cards)
	if err != nil {
		return domain.UnsetID, err
	}

	log.Info("set imported",
		slog.Int64("set_id", id),
		slog.String("title", name),
		slog.Int("card_count", len(cards)))
	return id, nil
}

// pushLatest delivers state on a capacity-one channel, displacing an
// unconsumed older snapshot.
func pushLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

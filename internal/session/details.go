package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/repository"
)

// DetailsState is a snapshot of the set-details screen: the live set with
// its ordered cards, plus the filter toggles handed to a study session
// started from this screen.
type DetailsState struct {
	Set           domain.Set
	Cards         []domain.Card
	FilterShuffle bool
	FilterStarred bool
}

// Details is the session behind the set-details screen. It keeps a live
// subscription on one set and its cards, carries the study filter toggles,
// and persists starred-flag changes immediately.
type Details struct {
	repo  *repository.SetWithCardsRepository
	log   *slog.Logger
	setID int64

	mu            sync.Mutex
	set           domain.Set
	cards         []domain.Card
	filterShuffle bool
	filterStarred bool

	cancel  context.CancelFunc
	done    chan struct{}
	updates chan DetailsState
}

// NewDetails creates a details session for the given set.
// Call Start before reading state.
func NewDetails(repo *repository.SetWithCardsRepository, setID int64, log *slog.Logger) *Details {
	if repo == nil {
		panic("repo cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Details{
		repo:    repo,
		log:     log.With(slog.String("component", "details_session")),
		setID:   setID,
		updates: make(chan DetailsState, 1),
	}
}

// Start subscribes to the set and its cards. The subscription lives until
// Stop is called or ctx is cancelled.
func (d *Details) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})

	ch := d.repo.WatchSetWithCards(ctx, d.setID)
	go func() {
		defer close(d.done)
		defer close(d.updates)
		for swc := range ch {
			d.mu.Lock()
			d.set = swc.Set
			d.cards = swc.Cards
			state := d.stateLocked()
			d.mu.Unlock()
			pushLatest(d.updates, state)
		}
	}()
}

// Stop cancels the session's subscriptions and waits for them to finish.
func (d *Details) Stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	<-d.done
	d.cancel = nil
}

// State returns a snapshot of the current details state.
func (d *Details) State() DetailsState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked()
}

// Updates delivers state snapshots as the watched rows change. Delivery is
// latest-value-wins for slow consumers. The channel closes when the
// subscription ends, whether through Stop, context cancellation, or a failed
// watch query.
func (d *Details) Updates() <-chan DetailsState {
	return d.updates
}

func (d *Details) stateLocked() DetailsState {
	state := DetailsState{
		Set:           d.set,
		Cards:         make([]domain.Card, len(d.cards)),
		FilterShuffle: d.filterShuffle,
		FilterStarred: d.filterStarred,
	}
	copy(state.Cards, d.cards)
	return state
}

// SetShuffleFilter sets the shuffle toggle for the next study session.
func (d *Details) SetShuffleFilter(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filterShuffle = on
}

// SetStarredFilter sets the starred-only toggle for the next study session.
func (d *Details) SetStarredFilter(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filterStarred = on
}

// ToggleStarred inverts the card's starred flag and persists it. The live
// subscription folds the change back into the state.
func (d *Details) ToggleStarred(ctx context.Context, card domain.Card) error {
	return d.repo.InsertCard(ctx, card.ToggleStarred())
}

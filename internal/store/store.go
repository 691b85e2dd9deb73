package store

import (
	"context"

	"github.com/cardfold/cardfold/internal/domain"
)

// DeckStore defines the interface for set and card persistence.
//
// Sets exclusively own their cards: deleting a set cascades to its cards at
// the schema level. Insert operations use replace semantics keyed on the
// primary key, so the last write wins per row.
type DeckStore interface {
	// InsertSet saves the set, inserting when its ID is unset and replacing
	// the existing row otherwise. Returns the assigned ID.
	InsertSet(ctx context.Context, set domain.Set) (int64, error)

	// InsertCard saves a single card with replace semantics. Used by study
	// sessions to persist starred-flag toggles immediately.
	InsertCard(ctx context.Context, card domain.Card) error

	// InsertCards saves multiple cards with replace semantics.
	InsertCards(ctx context.Context, cards []domain.Card) error

	// InsertSetWithCards atomically persists a set together with its cards:
	// the set is inserted first, empty cards are dropped, and each remaining
	// card gets its Position assigned from its order in the input and its
	// SetID pointed at the inserted set. The written cards become the set's
	// full card list: rows the set had before that are absent from the input
	// are deleted in the same transaction. Either every row is written or
	// none are; concurrent readers never observe a set without its cards
	// mid-write. Returns the assigned set ID.
	InsertSetWithCards(ctx context.Context, set domain.Set, cards []domain.Card) (int64, error)

	// GetAllSets returns all sets ordered by last viewed date descending,
	// most recently studied first.
	GetAllSets(ctx context.Context) ([]domain.Set, error)

	// GetSet returns one set by ID. Returns ErrSetNotFound when absent.
	GetSet(ctx context.Context, id int64) (domain.Set, error)

	// GetCards returns the cards of a set ordered by position ascending.
	// An unknown set ID yields an empty slice, not an error.
	GetCards(ctx context.Context, setID int64) ([]domain.Card, error)

	// GetCardsStudy returns the cards of a set prepared for a study session:
	// restricted to starred cards when onlyStarred is set, ordered randomly
	// when shuffled and by position ascending otherwise. Two shuffled calls
	// may yield different permutations.
	GetCardsStudy(ctx context.Context, setID int64, shuffled, onlyStarred bool) ([]domain.Card, error)

	// GetSetWithCards returns the composition of GetSet and GetCards for the
	// same ID. Returns ErrSetNotFound when the set is absent.
	GetSetWithCards(ctx context.Context, id int64) (domain.SetWithCards, error)

	// DeleteSet removes the set row; the schema cascades the delete to its
	// cards. Deleting an absent set is a no-op.
	DeleteSet(ctx context.Context, set domain.Set) error

	// DeleteCard removes a single card row.
	DeleteCard(ctx context.Context, card domain.Card) error
}

// DeckWatcher defines the change-stream half of the store. Each watch runs
// its query on subscription and again on every committed write to the rows
// it covers, sending the fresh snapshot on the returned channel.
//
// Delivery is latest-value-wins: a consumer that falls behind sees the most
// recent snapshot, not every intermediate one. The channel closes when ctx
// is cancelled. Watches on an absent set emit nothing until the set exists;
// absence is not a fault.
type DeckWatcher interface {
	// WatchAllSets streams the full set list, ordered like GetAllSets.
	WatchAllSets(ctx context.Context) <-chan []domain.Set

	// WatchSet streams one set row.
	WatchSet(ctx context.Context, id int64) <-chan domain.Set

	// WatchCards streams the ordered card list of a set.
	WatchCards(ctx context.Context, setID int64) <-chan []domain.Card

	// WatchSetWithCards streams the set/cards composition, re-emitting when
	// either the set row or the card rows change.
	WatchSetWithCards(ctx context.Context, id int64) <-chan domain.SetWithCards
}

// Store is the full persistence surface: one-shot operations plus watches.
type Store interface {
	DeckStore
	DeckWatcher
}

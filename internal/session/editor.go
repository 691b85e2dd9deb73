package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/platform/logger"
	"github.com/cardfold/cardfold/internal/repository"
	"github.com/cardfold/cardfold/internal/store"
)

// EditorState is a snapshot of the editor draft: the set, its cards in
// display order, and the active card position (NoSelection when none).
type EditorState struct {
	Set           domain.Set
	Cards         []domain.Card
	SelectedIndex int
}

// Editor is the session behind the set editor. It owns a mutable in-memory
// draft of one set's title and card list; nothing touches the store until
// Save. The draft is loaded once at construction, never live-subscribed, so
// concurrent writes elsewhere do not disturb an edit in progress.
type Editor struct {
	repo *repository.SetWithCardsRepository
	log  *slog.Logger

	mu       sync.Mutex
	set      domain.Set
	cards    []domain.Card
	selected int
}

// NewEditor creates an editor session. A positive setID loads that set's
// current snapshot into the draft; the unset sentinel (or an ID that no
// longer exists) starts a fresh draft with an empty title and a single blank
// card.
func NewEditor(ctx context.Context, repo *repository.SetWithCardsRepository, setID int64, log *slog.Logger) (*Editor, error) {
	if repo == nil {
		panic("repo cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	e := &Editor{
		repo:     repo,
		log:      log.With(slog.String("component", "editor_session")),
		cards:    []domain.Card{{}},
		selected: NoSelection,
	}

	if setID > domain.UnsetID {
		swc, err := repo.GetSetWithCards(ctx, setID)
		switch {
		case store.IsNotFoundError(err):
			// Editing a vanished set degrades to a new draft.
		case err != nil:
			return nil, err
		default:
			e.set = swc.Set
			e.cards = swc.Cards
		}
	}

	return e, nil
}

// State returns a snapshot of the draft.
func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := EditorState{
		Set:           e.set,
		Cards:         make([]domain.Card, len(e.cards)),
		SelectedIndex: e.selected,
	}
	copy(state.Cards, e.cards)
	return state
}

// UpdateTitle replaces the draft title.
func (e *Editor) UpdateTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Title = title
}

// InsertCard inserts a blank card at the selected position, or appends one
// when nothing is selected.
func (e *Editor) InsertCard() {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.selected
	if index == NoSelection || index > len(e.cards) {
		index = len(e.cards)
	}
	if index < 0 {
		index = 0
	}

	e.cards = append(e.cards, domain.Card{})
	copy(e.cards[index+1:], e.cards[index:])
	e.cards[index] = domain.Card{}
}

// RemoveCard removes the card at the selected position, or the last card
// when nothing is selected. An empty draft is a no-op.
func (e *Editor) RemoveCard() {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.selected
	if index == NoSelection {
		index = len(e.cards) - 1
	}
	if index < 0 || index >= len(e.cards) {
		return
	}

	e.cards = append(e.cards[:index], e.cards[index+1:]...)
	if e.selected >= len(e.cards) {
		e.selected = NoSelection
	}
}

// UpdateCard replaces the card at the given position. Out-of-range indices
// are ignored.
func (e *Editor) UpdateCard(index int, card domain.Card) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.cards) {
		return
	}
	e.cards[index] = card
}

// MoveCard exchanges the cards at the two positions and clears the
// selection. This is a two-element swap, not a shift-insert reorder.
// Out-of-range indices are ignored.
func (e *Editor) MoveCard(from, to int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if from < 0 || from >= len(e.cards) || to < 0 || to >= len(e.cards) {
		return
	}
	e.cards[from], e.cards[to] = e.cards[to], e.cards[from]
	e.selected = NoSelection
}

// UpdateSelected toggles the active card position: selecting the already
// selected index clears the selection.
func (e *Editor) UpdateSelected(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index == e.selected {
		e.selected = NoSelection
		return
	}
	e.selected = index
}

// Save persists the draft. Empty cards are stripped first; if none remain
// the underlying set is deleted instead. A new set gets all three
// timestamps, an existing one only a fresh last-modified date. The composite
// insert reassigns every card position from draft order and attaches the
// owning set ID; the assigned set ID is adopted into the draft. The store's
// transaction guarantees the draft is never partially persisted.
func (e *Editor) Save(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, e.log)

	e.mu.Lock()
	kept := make([]domain.Card, 0, len(e.cards))
	for _, card := range e.cards {
		if !card.IsEmpty() {
			kept = append(kept, card)
		}
	}
	e.cards = kept
	set := e.set
	e.mu.Unlock()

	if len(kept) == 0 {
		log.Info("draft empty, deleting set", slog.Int64("set_id", set.ID))
		return e.repo.DeleteSet(ctx, set)
	}

	now := time.Now()
	if set.IsNew() {
		set.Touch(now)
	} else {
		set.LastModifiedDate = now
	}

	id, err := e.repo.InsertSetWithCards(ctx, set, kept)
	if err != nil {
		return err
	}

	e.mu.Lock()
	set.ID = id
	e.set = set
	for i := range e.cards {
		e.cards[i].Position = i
		e.cards[i].SetID = id
	}
	e.mu.Unlock()

	log.Info("draft saved", slog.Int64("set_id", id), slog.Int("card_count", len(kept)))
	return nil
}

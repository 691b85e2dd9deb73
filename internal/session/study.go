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

// StudyState is a snapshot of a running study session: the set, the session
// card list fixed at start, and the per-card flip and mark tracking.
type StudyState struct {
	Set     domain.Set
	Cards   []domain.Card
	Flipped []bool
	Marks   []domain.Mark
}

// Summary aggregates the marks of a session. There is no explicit finished
// flag; the consumer decides when the session is over from its own cursor,
// and the counts are meaningful at any point.
type Summary struct {
	Correct   int
	Incorrect int
	Skipped   int
	Total     int
}

// Study is a read-only study session over one set. The shuffle and
// starred-only filters are fixed at construction; Start and Restart
// recompute the card list, reset all tracking, and stamp the set's
// last-viewed date.
type Study struct {
	repo        *repository.SetWithCardsRepository
	log         *slog.Logger
	setID       int64
	shuffled    bool
	onlyStarred bool

	mu      sync.Mutex
	set     domain.Set
	cards   []domain.Card
	flipped []bool
	marks   []domain.Mark
}

// NewStudy creates a study session for the given set and filters.
// Call Start to initialize it.
func NewStudy(repo *repository.SetWithCardsRepository, setID int64, shuffled, onlyStarred bool, log *slog.Logger) *Study {
	if repo == nil {
		panic("repo cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Study{
		repo:        repo,
		log:         log.With(slog.String("component", "study_session")),
		setID:       setID,
		shuffled:    shuffled,
		onlyStarred: onlyStarred,
	}
}

// Start initializes the session: it runs the study query, resets one
// skipped mark and one unflipped flag per card, and writes the set back with
// a fresh last-viewed date. A set with zero matching cards (for instance a
// starred-only session over a set with no starred cards) yields an empty
// session, not an error.
func (s *Study) Start(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.log)

	cards, err := s.repo.GetCardsStudy(ctx, s.setID, s.shuffled, s.onlyStarred)
	if err != nil {
		return err
	}

	set, err := s.repo.GetSet(ctx, s.setID)
	switch {
	case store.IsNotFoundError(err):
		// A session over a vanished set is empty but functional; there is
		// nothing to stamp.
		set = domain.Set{ID: s.setID}
	case err != nil:
		return err
	default:
		set.LastViewedDate = time.Now()
		if _, err := s.repo.InsertSet(ctx, set); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.set = set
	s.cards = cards
	s.flipped = make([]bool, len(cards))
	s.marks = make([]domain.Mark, len(cards))
	s.mu.Unlock()

	log.Info("study session started",
		slog.Int64("set_id", s.setID),
		slog.Bool("shuffled", s.shuffled),
		slog.Bool("only_starred", s.onlyStarred),
		slog.Int("card_count", len(cards)))
	return nil
}

// Restart re-initializes the session: marks, flips and the card order (when
// shuffling) are all recomputed, and the last-viewed date is stamped again.
func (s *Study) Restart(ctx context.Context) error {
	return s.Start(ctx)
}

// State returns a snapshot of the session.
func (s *Study) State() StudyState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := StudyState{
		Set:     s.set,
		Cards:   make([]domain.Card, len(s.cards)),
		Flipped: make([]bool, len(s.flipped)),
		Marks:   make([]domain.Mark, len(s.marks)),
	}
	copy(state.Cards, s.cards)
	copy(state.Flipped, s.flipped)
	copy(state.Marks, s.marks)
	return state
}

// Flip toggles the flipped flag of the card at the given position.
// Out-of-range positions are ignored.
func (s *Study) Flip(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.flipped) {
		return
	}
	s.flipped[index] = !s.flipped[index]
}

// SetMark records the outcome for the card at the given position.
// Out-of-range positions and undefined marks are ignored.
func (s *Study) SetMark(index int, mark domain.Mark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.marks) || !mark.Valid() {
		return
	}
	s.marks[index] = mark
}

// ToggleStarred inverts the card's starred flag and persists it
// immediately, independent of the session's own lifecycle. The session's
// copy of the card is updated in place so the change is visible without a
// restart.
func (s *Study) ToggleStarred(ctx context.Context, card domain.Card) error {
	if err := s.repo.InsertCard(ctx, card.ToggleStarred()); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.cards {
		if s.cards[i].ID == card.ID {
			s.cards[i].Starred = !s.cards[i].Starred
		}
	}
	s.mu.Unlock()
	return nil
}

// Summary counts the session's marks. On an empty session every count is
// zero.
func (s *Study) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{Total: len(s.marks)}
	for _, m := range s.marks {
		switch m {
		case domain.MarkCorrect:
			sum.Correct++
		case domain.MarkIncorrect:
			sum.Incorrect++
		default:
			sum.Skipped++
		}
	}
	return sum
}

package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/events"
	"github.com/cardfold/cardfold/internal/platform/logger"
	"github.com/cardfold/cardfold/internal/store"
)

// DeckStore implements store.Store over a GORM database handle.
//
// Writes publish change events after they commit, never before, so watchers
// re-querying on an event always observe the committed state.
type DeckStore struct {
	db      *gorm.DB
	emitter *events.InMemoryEmitter
	logger  *slog.Logger
}

// NewDeckStore creates a DeckStore over the given database handle.
// If emitter is nil a private one is created; if logger is nil the default
// logger is used.
func NewDeckStore(db *gorm.DB, emitter *events.InMemoryEmitter, log *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	if emitter == nil {
		emitter = events.NewInMemoryEmitter(log)
	}

	return &DeckStore{
		db:      db,
		emitter: emitter,
		logger:  log.With(slog.String("component", "deck_store")),
	}
}

// Ensure DeckStore implements the full store surface.
var _ store.Store = (*DeckStore)(nil)

// InsertSet implements store.DeckStore.InsertSet.
func (s *DeckStore) InsertSet(ctx context.Context, set domain.Set) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := set
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		log.Error("failed to insert set",
			slog.String("error", err.Error()),
			slog.Int64("set_id", set.ID))
		return 0, store.NewStoreError("set", "insert", err)
	}

	s.emitter.Publish(events.NewChangeEvent(events.ChangeSet, row.ID))
	log.Debug("set inserted", slog.Int64("set_id", row.ID))
	return row.ID, nil
}

// InsertCard implements store.DeckStore.InsertCard.
func (s *DeckStore) InsertCard(ctx context.Context, card domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := card
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		log.Error("failed to insert card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", card.ID),
			slog.Int64("set_id", card.SetID))
		return store.NewStoreError("card", "insert", err)
	}

	s.emitter.Publish(events.NewChangeEvent(events.ChangeCards, row.SetID))
	return nil
}

// InsertCards implements store.DeckStore.InsertCards.
// Cards are written one row at a time inside a transaction so that rows with
// an unset ID get a fresh identifier instead of a literal zero key.
func (s *DeckStore) InsertCards(ctx context.Context, cards []domain.Card) error {
	if len(cards) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows := make([]domain.Card, len(cards))
	copy(rows, cards)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert cards",
			slog.String("error", err.Error()),
			slog.Int("count", len(cards)))
		return store.NewStoreError("card", "insert", fmt.Errorf("%w: %w", store.ErrTransactionFailed, err))
	}

	for _, setID := range distinctSetIDs(rows) {
		s.emitter.Publish(events.NewChangeEvent(events.ChangeCards, setID))
	}
	return nil
}

// InsertSetWithCards implements store.DeckStore.InsertSetWithCards.
func (s *DeckStore) InsertSetWithCards(ctx context.Context, set domain.Set, cards []domain.Card) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	setRow := set
	kept := make([]domain.Card, 0, len(cards))
	for _, card := range cards {
		if !card.IsEmpty() {
			kept = append(kept, card)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&setRow).Error; err != nil {
			return fmt.Errorf("insert set: %w", err)
		}

		for i := range kept {
			kept[i].Position = i
			kept[i].SetID = setRow.ID
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&kept[i]).Error; err != nil {
				return fmt.Errorf("insert card %d: %w", i, err)
			}
		}

		// Cards dropped from the draft must not survive a resave. The kept
		// rows all have their final IDs at this point, so everything else
		// under the set is stale.
		prune := tx.Where("card_set_id = ?", setRow.ID)
		if len(kept) > 0 {
			ids := make([]int64, len(kept))
			for i, c := range kept {
				ids[i] = c.ID
			}
			prune = prune.Where("card_id NOT IN ?", ids)
		}
		if err := prune.Delete(&domain.Card{}).Error; err != nil {
			return fmt.Errorf("prune cards: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert set with cards",
			slog.String("error", err.Error()),
			slog.Int64("set_id", set.ID),
			slog.Int("card_count", len(kept)))
		return 0, store.NewStoreError("set", "insert_with_cards",
			fmt.Errorf("%w: %w", store.ErrTransactionFailed, err))
	}

	s.emitter.Publish(events.NewChangeEvent(events.ChangeSet, setRow.ID))
	s.emitter.Publish(events.NewChangeEvent(events.ChangeCards, setRow.ID))

	log.Info("set saved",
		slog.Int64("set_id", setRow.ID),
		slog.Int("card_count", len(kept)))
	return setRow.ID, nil
}

// GetAllSets implements store.DeckStore.GetAllSets.
func (s *DeckStore) GetAllSets(ctx context.Context) ([]domain.Set, error) {
	var sets []domain.Set
	err := s.db.WithContext(ctx).
		Order("last_viewed_date DESC").
		Find(&sets).Error
	if err != nil {
		return nil, store.NewStoreError("set", "list", err)
	}
	return sets, nil
}

// GetSet implements store.DeckStore.GetSet.
func (s *DeckStore) GetSet(ctx context.Context, id int64) (domain.Set, error) {
	var set domain.Set
	err := s.db.WithContext(ctx).First(&set, "set_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Set{}, store.ErrSetNotFound
		}
		return domain.Set{}, store.NewStoreError("set", "get", err)
	}
	return set, nil
}

// GetCards implements store.DeckStore.GetCards.
func (s *DeckStore) GetCards(ctx context.Context, setID int64) ([]domain.Card, error) {
	var cards []domain.Card
	err := s.db.WithContext(ctx).
		Where("card_set_id = ?", setID).
		Order("position ASC").
		Find(&cards).Error
	if err != nil {
		return nil, store.NewStoreError("card", "list", err)
	}
	return cards, nil
}

// GetCardsStudy implements store.DeckStore.GetCardsStudy.
func (s *DeckStore) GetCardsStudy(ctx context.Context, setID int64, shuffled, onlyStarred bool) ([]domain.Card, error) {
	q := s.db.WithContext(ctx).Where("card_set_id = ?", setID)
	if onlyStarred {
		q = q.Where("starred = ?", true)
	}
	if shuffled {
		q = q.Order("RANDOM()")
	} else {
		q = q.Order("position ASC")
	}

	var cards []domain.Card
	if err := q.Find(&cards).Error; err != nil {
		return nil, store.NewStoreError("card", "list_study", err)
	}
	return cards, nil
}

// GetSetWithCards implements store.DeckStore.GetSetWithCards.
func (s *DeckStore) GetSetWithCards(ctx context.Context, id int64) (domain.SetWithCards, error) {
	set, err := s.GetSet(ctx, id)
	if err != nil {
		return domain.SetWithCards{}, err
	}
	cards, err := s.GetCards(ctx, id)
	if err != nil {
		return domain.SetWithCards{}, err
	}
	return domain.SetWithCards{Set: set, Cards: cards}, nil
}

// DeleteSet implements store.DeckStore.DeleteSet. The schema cascades the
// delete to the set's cards, so both change kinds are published.
func (s *DeckStore) DeleteSet(ctx context.Context, set domain.Set) error {
	if set.IsNew() {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.WithContext(ctx).Delete(&domain.Set{}, set.ID).Error
	if err != nil {
		log.Error("failed to delete set",
			slog.String("error", err.Error()),
			slog.Int64("set_id", set.ID))
		return store.NewStoreError("set", "delete", err)
	}

	s.emitter.Publish(events.NewChangeEvent(events.ChangeSet, set.ID))
	s.emitter.Publish(events.NewChangeEvent(events.ChangeCards, set.ID))
	log.Info("set deleted", slog.Int64("set_id", set.ID))
	return nil
}

// DeleteCard implements store.DeckStore.DeleteCard.
func (s *DeckStore) DeleteCard(ctx context.Context, card domain.Card) error {
	if card.ID == domain.UnsetID {
		return nil
	}

	err := s.db.WithContext(ctx).Delete(&domain.Card{}, card.ID).Error
	if err != nil {
		return store.NewStoreError("card", "delete", err)
	}

	s.emitter.Publish(events.NewChangeEvent(events.ChangeCards, card.SetID))
	return nil
}

func distinctSetIDs(cards []domain.Card) []int64 {
	seen := make(map[int64]struct{}, 1)
	ids := make([]int64, 0, 1)
	for _, c := range cards {
		if _, ok := seen[c.SetID]; !ok {
			seen[c.SetID] = struct{}{}
			ids = append(ids, c.SetID)
		}
	}
	return ids
}

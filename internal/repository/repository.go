// Package repository provides a thin façade over the store so the session
// layer never depends on a concrete storage implementation. Every method is
// pure delegation with an unchanged contract.
package repository

import (
	"context"

	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/store"
)

// SetWithCardsRepository exposes the full persistence surface of the
// application: set/card CRUD, composed reads, and change streams.
type SetWithCardsRepository struct {
	store store.Store
}

// New creates a repository over the given store.
func New(s store.Store) *SetWithCardsRepository {
	if s == nil {
		panic("store cannot be nil")
	}
	return &SetWithCardsRepository{store: s}
}

// InsertSet delegates to store.DeckStore.InsertSet.
func (r *SetWithCardsRepository) InsertSet(ctx context.Context, set domain.Set) (int64, error) {
	return r.store.InsertSet(ctx, set)
}

// InsertCard delegates to store.DeckStore.InsertCard.
func (r *SetWithCardsRepository) InsertCard(ctx context.Context, card domain.Card) error {
	return r.store.InsertCard(ctx, card)
}

// InsertCards delegates to store.DeckStore.InsertCards.
func (r *SetWithCardsRepository) InsertCards(ctx context.Context, cards []domain.Card) error {
	return r.store.InsertCards(ctx, cards)
}

// InsertSetWithCards delegates to store.DeckStore.InsertSetWithCards.
func (r *SetWithCardsRepository) InsertSetWithCards(ctx context.Context, set domain.Set, cards []domain.Card) (int64, error) {
	return r.store.InsertSetWithCards(ctx, set, cards)
}

// GetAllSets delegates to store.DeckStore.GetAllSets.
func (r *SetWithCardsRepository) GetAllSets(ctx context.Context) ([]domain.Set, error) {
	return r.store.GetAllSets(ctx)
}

// GetSet delegates to store.DeckStore.GetSet.
func (r *SetWithCardsRepository) GetSet(ctx context.Context, id int64) (domain.Set, error) {
	return r.store.GetSet(ctx, id)
}

// GetCards delegates to store.DeckStore.GetCards.
func (r *SetWithCardsRepository) GetCards(ctx context.Context, setID int64) ([]domain.Card, error) {
	return r.store.GetCards(ctx, setID)
}

// GetCardsStudy delegates to store.DeckStore.GetCardsStudy.
func (r *SetWithCardsRepository) GetCardsStudy(ctx context.Context, setID int64, shuffled, onlyStarred bool) ([]domain.Card, error) {
	return r.store.GetCardsStudy(ctx, setID, shuffled, onlyStarred)
}

// GetSetWithCards delegates to store.DeckStore.GetSetWithCards.
func (r *SetWithCardsRepository) GetSetWithCards(ctx context.Context, id int64) (domain.SetWithCards, error) {
	return r.store.GetSetWithCards(ctx, id)
}

// DeleteSet delegates to store.DeckStore.DeleteSet.
func (r *SetWithCardsRepository) DeleteSet(ctx context.Context, set domain.Set) error {
	return r.store.DeleteSet(ctx, set)
}

// DeleteCard delegates to store.DeckStore.DeleteCard.
func (r *SetWithCardsRepository) DeleteCard(ctx context.Context, card domain.Card) error {
	return r.store.DeleteCard(ctx, card)
}

// WatchAllSets delegates to store.DeckWatcher.WatchAllSets.
func (r *SetWithCardsRepository) WatchAllSets(ctx context.Context) <-chan []domain.Set {
	return r.store.WatchAllSets(ctx)
}

// WatchSet delegates to store.DeckWatcher.WatchSet.
func (r *SetWithCardsRepository) WatchSet(ctx context.Context, id int64) <-chan domain.Set {
	return r.store.WatchSet(ctx, id)
}

// WatchCards delegates to store.DeckWatcher.WatchCards.
func (r *SetWithCardsRepository) WatchCards(ctx context.Context, setID int64) <-chan []domain.Card {
	return r.store.WatchCards(ctx, setID)
}

// WatchSetWithCards delegates to store.DeckWatcher.WatchSetWithCards.
func (r *SetWithCardsRepository) WatchSetWithCards(ctx context.Context, id int64) <-chan domain.SetWithCards {
	return r.store.WatchSetWithCards(ctx, id)
}

package sqlite

import (
	"context"
	"log/slog"

	"github.com/cardfold/cardfold/internal/domain"
	"github.com/cardfold/cardfold/internal/events"
	"github.com/cardfold/cardfold/internal/store"
)

// WatchAllSets implements store.DeckWatcher.WatchAllSets.
func (s *DeckStore) WatchAllSets(ctx context.Context) <-chan []domain.Set {
	return watch(ctx, s,
		func(e events.ChangeEvent) bool { return e.Kind == events.ChangeSet },
		func(ctx context.Context) ([]domain.Set, bool, error) {
			sets, err := s.GetAllSets(ctx)
			return sets, true, err
		})
}

// WatchSet implements store.DeckWatcher.WatchSet. Absence of the set is a
// normal transient state: nothing is emitted until the row exists.
func (s *DeckStore) WatchSet(ctx context.Context, id int64) <-chan domain.Set {
	return watch(ctx, s,
		func(e events.ChangeEvent) bool {
			return e.Kind == events.ChangeSet && e.SetID == id
		},
		func(ctx context.Context) (domain.Set, bool, error) {
			set, err := s.GetSet(ctx, id)
			if store.IsNotFoundError(err) {
				return domain.Set{}, false, nil
			}
			return set, err == nil, err
		})
}

// WatchCards implements store.DeckWatcher.WatchCards.
func (s *DeckStore) WatchCards(ctx context.Context, setID int64) <-chan []domain.Card {
	return watch(ctx, s,
		func(e events.ChangeEvent) bool {
			return e.Kind == events.ChangeCards && e.SetID == setID
		},
		func(ctx context.Context) ([]domain.Card, bool, error) {
			cards, err := s.GetCards(ctx, setID)
			return cards, true, err
		})
}

// WatchSetWithCards implements store.DeckWatcher.WatchSetWithCards,
// re-emitting when either the set row or its card rows change.
func (s *DeckStore) WatchSetWithCards(ctx context.Context, id int64) <-chan domain.SetWithCards {
	return watch(ctx, s,
		func(e events.ChangeEvent) bool { return e.SetID == id },
		func(ctx context.Context) (domain.SetWithCards, bool, error) {
			swc, err := s.GetSetWithCards(ctx, id)
			if store.IsNotFoundError(err) {
				return domain.SetWithCards{}, false, nil
			}
			return swc, err == nil, err
		})
}

// watch runs query once on subscription and again on every event accepted by
// relevant, delivering snapshots on the returned channel. Delivery is
// latest-value-wins: a stale unconsumed snapshot is replaced by the newer
// one. The channel closes when ctx is cancelled. Query errors end the watch;
// a query reporting ok=false (row absent) skips the emission and keeps the
// watch alive.
func watch[T any](
	ctx context.Context,
	s *DeckStore,
	relevant func(events.ChangeEvent) bool,
	query func(context.Context) (T, bool, error),
) <-chan T {
	out := make(chan T, 1)

	// notify has capacity one: any number of bursty writes collapse into a
	// single pending re-query, which always reads the newest state.
	notify := make(chan struct{}, 1)
	notify <- struct{}{}

	unsubscribe := s.emitter.Subscribe(func(e events.ChangeEvent) {
		if !relevant(e) {
			return
		}
		select {
		case notify <- struct{}{}:
		default:
		}
	})

	go func() {
		defer unsubscribe()
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case <-notify:
				snapshot, ok, err := query(ctx)
				if err != nil {
					s.logger.Error("watch query failed",
						slog.String("error", err.Error()))
					return
				}
				if !ok {
					continue
				}
				deliverLatest(ctx, out, snapshot)
			}
		}
	}()

	return out
}

// deliverLatest sends v on out, displacing an unconsumed older snapshot
// rather than blocking behind a slow consumer.
func deliverLatest[T any](ctx context.Context, out chan T, v T) {
	for {
		select {
		case <-ctx.Done():
			return
		case out <- v:
			return
		default:
		}

		// Channel full: drop the stale snapshot and retry.
		select {
		case <-out:
		default:
		}
	}
}

package events

import (
	"time"

	"github.com/google/uuid"
)

// ChangeKind identifies which table a write touched.
type ChangeKind string

const (
	// ChangeSet indicates a write to a set row.
	ChangeSet ChangeKind = "set"

	// ChangeCards indicates a write to one or more card rows.
	ChangeCards ChangeKind = "cards"
)

// ChangeEvent describes a committed write. SetID is the identifier of the
// set whose rows changed; watchers scoped to a different set ignore the
// event. Cascade deletes publish both a set and a cards event.
type ChangeEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// Kind indicates the table the write touched.
	Kind ChangeKind `json:"kind"`

	// SetID is the owning set of the changed rows.
	SetID int64 `json:"set_id"`

	// At is the timestamp when the event was published.
	At time.Time `json:"at"`
}

// NewChangeEvent creates a ChangeEvent for the given kind and set.
func NewChangeEvent(kind ChangeKind, setID int64) ChangeEvent {
	return ChangeEvent{
		ID:    uuid.New(),
		Kind:  kind,
		SetID: setID,
		At:    time.Now(),
	}
}

// Handler receives published change events. Handlers must be fast and must
// not block; slow work belongs on the handler's own goroutine.
type Handler func(event ChangeEvent)

// Publisher is implemented by components that announce committed writes.
type Publisher interface {
	// Publish delivers the event to all current subscribers.
	Publish(event ChangeEvent)
}

// Subscriber is implemented by components that hand out event subscriptions.
type Subscriber interface {
	// Subscribe registers a handler and returns a function that removes it.
	// The returned function is idempotent.
	Subscribe(handler Handler) (unsubscribe func())
}

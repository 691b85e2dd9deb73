package domain

import (
	"time"
)

// UnsetID is the sentinel for an entity that has not been persisted yet.
// The store assigns a real identifier on first insert.
const UnsetID int64 = 0

// Set represents a named collection of study cards.
//
// A zero ID marks a set that exists only in memory. On first save all three
// timestamps are initialized to the current time; subsequent saves refresh
// only LastModifiedDate. LastViewedDate is refreshed each time a study
// session starts over the set.
type Set struct {
	ID               int64     `gorm:"column:set_id;primaryKey;autoIncrement" json:"id"`
	Title            string    `gorm:"column:title" json:"title"`
	CreationDate     time.Time `gorm:"column:creation_date" json:"creation_date"`
	LastViewedDate   time.Time `gorm:"column:last_viewed_date" json:"last_viewed_date"`
	LastModifiedDate time.Time `gorm:"column:last_modified_date" json:"last_modified_date"`
}

// TableName maps Set to its table.
func (Set) TableName() string { return "sets" }

// IsNew reports whether the set has not been persisted yet.
func (s Set) IsNew() bool { return s.ID == UnsetID }

// Touch initializes all three timestamps to now. Called on the first save of
// a new set.
func (s *Set) Touch(now time.Time) {
	s.CreationDate = now
	s.LastViewedDate = now
	s.LastModifiedDate = now
}

// SetWithCards is a read-only composition of one set and its cards in
// display order. It is derived from the two underlying queries and never
// persisted on its own.
type SetWithCards struct {
	Set   Set    `json:"set"`
	Cards []Card `json:"cards"`
}

// Package store defines the persistence interface for flashcard sets and
// cards, together with the sentinel errors shared by all implementations.
//
// The interface has two halves: one-shot CRUD and query operations, and
// watch operations that deliver a fresh snapshot on every committed write to
// the rows they cover. Implementations live under internal/platform.
package store

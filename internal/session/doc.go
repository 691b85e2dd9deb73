// Package session contains the view-state objects that mediate between user
// commands and persistence: the library (set list, selection, CSV import),
// the editor (in-memory draft of one set), the details view (live filtered
// view over one set) and the study session (per-card flip and mark tracking).
//
// Sessions have an explicit lifecycle: one is created per screen, Start
// launches any subscriptions it owns, and Stop cancels them. State is
// returned as value snapshots; callers never share mutable state with a
// session.
package session

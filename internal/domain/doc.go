// Package domain contains the core value types of the application:
// flashcard sets, the cards they own, and per-session mark outcomes.
//
// Domain values are plain data passed by copy between the session layer and
// the persistence layer. Mutation helpers operate on a value the caller owns;
// no domain value is shared mutable state.
package domain

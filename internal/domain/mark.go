package domain

// Mark is the per-card outcome recorded during a study session. Marks live
// only for the duration of a session; they are never persisted.
type Mark int

const (
	// MarkSkipped is the initial state of every card in a session and the
	// outcome for cards the user passed over.
	MarkSkipped Mark = iota

	// MarkCorrect records that the user answered the card correctly.
	MarkCorrect

	// MarkIncorrect records that the user answered the card incorrectly.
	MarkIncorrect
)

// String returns the human-readable name of the mark.
func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkIncorrect:
		return "incorrect"
	case MarkSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the three defined outcomes.
func (m Mark) Valid() bool {
	switch m {
	case MarkSkipped, MarkCorrect, MarkIncorrect:
		return true
	default:
		return false
	}
}

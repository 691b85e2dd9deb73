package domain

import (
	"testing"
	"time"
)

func TestSetIsNew(t *testing.T) {
	t.Parallel()

	if !(Set{}).IsNew() {
		t.Error("zero-ID set must be new")
	}
	if (Set{ID: 42}).IsNew() {
		t.Error("persisted set must not be new")
	}
}

func TestSetTouch(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s := Set{Title: "greek letters"}
	s.Touch(now)

	if !s.CreationDate.Equal(now) || !s.LastViewedDate.Equal(now) || !s.LastModifiedDate.Equal(now) {
		t.Errorf("Touch must set all three timestamps, got %v / %v / %v",
			s.CreationDate, s.LastViewedDate, s.LastModifiedDate)
	}
}

func TestMarkString(t *testing.T) {
	t.Parallel()

	if MarkCorrect.String() != "correct" || MarkIncorrect.String() != "incorrect" ||
		MarkSkipped.String() != "skipped" {
		t.Error("unexpected mark names")
	}
	if Mark(99).Valid() {
		t.Error("out-of-range mark must not be valid")
	}
	if !MarkSkipped.Valid() {
		t.Error("MarkSkipped must be valid")
	}
}

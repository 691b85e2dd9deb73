package domain

// Card is a single front/back study item belonging to one set.
//
// Position defines the card's display and study order within its set,
// independent of ID. Positions are reassigned densely from zero on every
// save, so gaps are only guaranteed absent immediately after a save.
type Card struct {
	ID        int64  `gorm:"column:card_id;primaryKey;autoIncrement" json:"id"`
	SetID     int64  `gorm:"column:card_set_id;index" json:"set_id"`
	FrontText string `gorm:"column:front_text" json:"front_text"`
	BackText  string `gorm:"column:back_text" json:"back_text"`
	Starred   bool   `gorm:"column:starred" json:"starred"`
	Position  int    `gorm:"column:position" json:"position"`
}

// TableName maps Card to its table.
func (Card) TableName() string { return "cards" }

// IsEmpty reports whether both sides of the card are blank. Empty cards are
// dropped at save time and never reach the store.
func (c Card) IsEmpty() bool {
	return c.FrontText == "" && c.BackText == ""
}

// ToggleStarred returns a copy of the card with the starred flag inverted.
func (c Card) ToggleStarred() Card {
	c.Starred = !c.Starred
	return c
}

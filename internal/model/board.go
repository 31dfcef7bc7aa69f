package model

import (
	"time"

	"github.com/google/uuid"
)

// MergeIndex is the reserved destinationIndex value on a move request
// that marks it as a merge into the target card rather than an insert.
const MergeIndex = -1

// Board is the full state of one retro board: every card keyed by id
// plus exactly one column per fixed column id.
type Board struct {
	ID        uuid.UUID            `json:"id"`
	Title     string               `json:"title"`
	CreatedAt time.Time            `json:"createdAt"`
	Cards     map[uuid.UUID]*Card  `json:"cards"`
	Columns   map[ColumnID]*Column `json:"columns"`
}

// NewBoard creates an empty board with the three fixed columns.
func NewBoard(title string) *Board {
	columns := make(map[ColumnID]*Column, len(ColumnIDs))
	for _, id := range ColumnIDs {
		columns[id] = &Column{ID: id, CardIDs: []uuid.UUID{}}
	}
	return &Board{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
		Cards:     make(map[uuid.UUID]*Card),
		Columns:   columns,
	}
}

// Clone returns a deep copy of the board. Published snapshots are
// clones so subscribers can read them without racing later mutations.
func (b *Board) Clone() *Board {
	cards := make(map[uuid.UUID]*Card, len(b.Cards))
	for id, card := range b.Cards {
		copied := *card
		copied.Upvotes = append([]string{}, card.Upvotes...)
		cards[id] = &copied
	}
	columns := make(map[ColumnID]*Column, len(b.Columns))
	for id, column := range b.Columns {
		columns[id] = &Column{
			ID:      column.ID,
			CardIDs: append([]uuid.UUID{}, column.CardIDs...),
		}
	}
	return &Board{
		ID:        b.ID,
		Title:     b.Title,
		CreatedAt: b.CreatedAt,
		Cards:     cards,
		Columns:   columns,
	}
}

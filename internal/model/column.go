package model

import (
	"github.com/google/uuid"
)

// ColumnID identifies one of the three fixed retro columns.
type ColumnID string

const (
	ColumnWentWell    ColumnID = "wentWell"
	ColumnToImprove   ColumnID = "toImprove"
	ColumnActionItems ColumnID = "actionItems"
)

// ColumnIDs lists the fixed columns in display order.
var ColumnIDs = []ColumnID{ColumnWentWell, ColumnToImprove, ColumnActionItems}

// Valid reports whether id belongs to the closed column set.
func (id ColumnID) Valid() bool {
	switch id {
	case ColumnWentWell, ColumnToImprove, ColumnActionItems:
		return true
	}
	return false
}

// Column holds the ordered card id sequence for one fixed column.
// CardIDs is the single source of truth for order; the Order field on
// each card is a denormalized cache of its index here.
type Column struct {
	ID      ColumnID    `json:"id"`
	CardIDs []uuid.UUID `json:"cardIds"`
}

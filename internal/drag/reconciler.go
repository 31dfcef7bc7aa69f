// Package drag maps pointer-drag geometry to a drop intent: either an
// insertion index in a column or a merge with a target card. It is a
// pure function of rectangles and positions, independent of any
// rendering system.
package drag

import (
	"github.com/google/uuid"

	"retroboard/internal/model"
)

// Zone fractions of a card's height: the top and bottom edges select an
// insertion point, the middle band selects a merge.
const (
	topZoneFraction    = 0.35
	bottomZoneFraction = 0.35
)

// CardRect is the rendered rectangle of one card, in the same vertical
// coordinate system as the pointer. Rects are given in display order.
type CardRect struct {
	ID     uuid.UUID
	Top    float64
	Height float64
}

// Intent is a resolved drop target. Exactly one of the insertion index
// or the merge target is active: MergeTarget is uuid.Nil for an
// insertion intent, and Index is meaningless when MergeTarget is set.
type Intent struct {
	Index       int
	MergeTarget uuid.UUID
}

// IsMerge reports whether the intent is a merge rather than an insert.
func (i Intent) IsMerge() bool {
	return i.MergeTarget != uuid.Nil
}

// Resolve maps the pointer's vertical position over a column's cards to
// a drop intent:
//
//   - top zone of the card at index i: insert at i
//   - bottom zone: insert at i+1
//   - middle zone of a card other than the one in hand: merge with it
//   - above the first card: insert at 0
//   - below the last card, or an empty column: insert at len(rects)
func Resolve(pointerY float64, rects []CardRect, draggedID uuid.UUID) Intent {
	for i, r := range rects {
		if pointerY < r.Top {
			// In the gap above card i
			return Intent{Index: i}
		}
		if pointerY >= r.Top+r.Height {
			continue
		}

		topEdge := r.Top + r.Height*topZoneFraction
		bottomEdge := r.Top + r.Height*(1-bottomZoneFraction)
		switch {
		case pointerY < topEdge:
			return Intent{Index: i}
		case pointerY >= bottomEdge:
			return Intent{Index: i + 1}
		case r.ID != draggedID:
			return Intent{MergeTarget: r.ID}
		default:
			// Middle of the card in hand: keep its own slot
			return Intent{Index: i}
		}
	}
	return Intent{Index: len(rects)}
}

// MoveRequest is the single authoritative mutation issued on drop.
// DestinationIndex carries model.MergeIndex when MergeTargetCardID is
// set.
type MoveRequest struct {
	DraggedCardID     uuid.UUID
	SourceColumnID    model.ColumnID
	DestColumnID      model.ColumnID
	DestinationIndex  int
	MergeTargetCardID uuid.UUID
}

// Reconciler tracks the most recent intent during one drag gesture.
// Each Update replaces the previous intent; Drop encodes whichever
// intent was last computed as one move request.
type Reconciler struct {
	draggedID      uuid.UUID
	sourceColumnID model.ColumnID
	destColumnID   model.ColumnID
	intent         Intent
}

// NewReconciler starts a drag gesture for one card. Until the first
// Update the intent is the head of the source column.
func NewReconciler(draggedID uuid.UUID, sourceColumnID model.ColumnID) *Reconciler {
	return &Reconciler{
		draggedID:      draggedID,
		sourceColumnID: sourceColumnID,
		destColumnID:   sourceColumnID,
	}
}

// Update resolves the pointer against the hovered column and records
// the new intent.
func (r *Reconciler) Update(destColumnID model.ColumnID, pointerY float64, rects []CardRect) Intent {
	r.destColumnID = destColumnID
	r.intent = Resolve(pointerY, rects, r.draggedID)
	return r.intent
}

// Drop returns the move request for the last recorded intent.
func (r *Reconciler) Drop() MoveRequest {
	move := MoveRequest{
		DraggedCardID:  r.draggedID,
		SourceColumnID: r.sourceColumnID,
		DestColumnID:   r.destColumnID,
	}
	if r.intent.IsMerge() {
		move.DestinationIndex = model.MergeIndex
		move.MergeTargetCardID = r.intent.MergeTarget
	} else {
		move.DestinationIndex = r.intent.Index
	}
	return move
}

package client

import (
	"sync"

	"github.com/google/uuid"

	"retroboard/internal/model"
)

// Replica is the client-side cache of boards, fed exclusively by the
// change stream. It never applies a local mutation speculatively: a
// board starts Unconfirmed, becomes Confirmed when a non-nil snapshot
// arrives, and is purged when a tombstone arrives. While a board is not
// Confirmed, all mutating actions against it are refused locally.
type Replica struct {
	mu        sync.Mutex
	boards    map[uuid.UUID]*model.Board
	confirmed map[uuid.UUID]bool
}

func NewReplica() *Replica {
	return &Replica{
		boards:    make(map[uuid.UUID]*model.Board),
		confirmed: make(map[uuid.UUID]bool),
	}
}

// ApplySnapshot replaces the cached board wholesale with a stream
// snapshot. A nil snapshot is a tombstone: it reports true when a
// previously cached board was purged, which is the caller's cue to
// navigate away from it.
func (r *Replica) ApplySnapshot(boardID uuid.UUID, snapshot *model.Board) (purged bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snapshot == nil {
		_, present := r.boards[boardID]
		delete(r.boards, boardID)
		delete(r.confirmed, boardID)
		return present
	}

	r.boards[boardID] = snapshot
	r.confirmed[boardID] = true
	return false
}

// Confirmed reports whether the last stream event for the board this
// session was a non-nil snapshot.
func (r *Replica) Confirmed(boardID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.confirmed[boardID]
}

// Board returns the cached board. The returned value is read-only and
// fully replaced by the next snapshot.
func (r *Replica) Board(boardID uuid.UUID) (*model.Board, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	board, ok := r.boards[boardID]
	return board, ok
}

// ColumnCards maps the cached board to the displayable card list of one
// column: for each id in the column's sequence, the card it names. Ids
// without a card are dropped (tolerance of transient inconsistency);
// the displayed order is the sequence order, never a re-sort by the
// Order field.
func (r *Replica) ColumnCards(boardID uuid.UUID, columnID model.ColumnID) []model.Card {
	r.mu.Lock()
	defer r.mu.Unlock()

	board, ok := r.boards[boardID]
	if !ok {
		return nil
	}
	column, ok := board.Columns[columnID]
	if !ok {
		return nil
	}

	cards := make([]model.Card, 0, len(column.CardIDs))
	for _, id := range column.CardIDs {
		if card, ok := board.Cards[id]; ok {
			cards = append(cards, *card)
		}
	}
	return cards
}

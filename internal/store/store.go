package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"retroboard/internal/model"
)

// MergeSeparator joins the contents of two merged cards. A full line of
// dashes keeps merges visible and reversible by inspection.
const MergeSeparator = "\n----------\n"

// Publisher receives exactly one full board snapshot after every
// successful mutation, or nil when the board was deleted.
type Publisher interface {
	Publish(boardID uuid.UUID, snapshot *model.Board)
}

// Store is the authoritative in-process state for all boards. All
// mutations are serialized behind a single mutex and either apply fully
// and publish one snapshot, or leave the state untouched and publish
// nothing. Mutation bodies perform no blocking I/O.
type Store struct {
	mu        sync.Mutex
	boards    []*model.Board // newest first
	byID      map[uuid.UUID]*model.Board
	publisher Publisher
}

func New(publisher Publisher) *Store {
	return &Store{
		byID:      make(map[uuid.UUID]*model.Board),
		publisher: publisher,
	}
}

// CreateBoard creates an empty board and prepends it to the board list.
func (s *Store) CreateBoard(title string) *model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := model.NewBoard(title)
	s.boards = append([]*model.Board{board}, s.boards...)
	s.byID[board.ID] = board

	snapshot := board.Clone()
	s.publisher.Publish(board.ID, snapshot)
	return snapshot
}

// DeleteBoard removes a board and publishes a tombstone so subscribers
// learn the board is gone. Returns whether the board existed.
func (s *Store) DeleteBoard(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, b := range s.boards {
		if b.ID == id {
			s.boards = append(s.boards[:i], s.boards[i+1:]...)
			break
		}
	}

	s.publisher.Publish(id, nil)
	return true
}

// Boards returns snapshots of all boards, newest first.
func (s *Store) Boards() []*model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := make([]*model.Board, len(s.boards))
	for i, b := range s.boards {
		snapshots[i] = b.Clone()
	}
	return snapshots
}

// Snapshot returns a snapshot of one board, or nil if it does not
// exist. A nil result is the tombstone value on the change stream.
func (s *Store) Snapshot(id uuid.UUID) *model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.byID[id]
	if !ok {
		return nil
	}
	return board.Clone()
}

// AddCard inserts a new card at the head of the target column.
func (s *Store) AddCard(boardID uuid.UUID, columnID model.ColumnID, content, authorID, authorName string) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.byID[boardID]
	if !ok {
		return nil, ErrBoardNotFound
	}
	column, ok := board.Columns[columnID]
	if !ok {
		return nil, ErrColumnNotFound
	}

	card := &model.Card{
		ID:         uuid.New(),
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
		CreatedAt:  time.Now().UTC(),
		Upvotes:    []string{},
	}
	board.Cards[card.ID] = card
	column.CardIDs = append([]uuid.UUID{card.ID}, column.CardIDs...)
	reindex(board, column)

	s.publisher.Publish(board.ID, board.Clone())
	result := *card
	result.Upvotes = append([]string{}, card.Upvotes...)
	return &result, nil
}

// UpdateCardContent replaces a card's content in place; order untouched.
func (s *Store) UpdateCardContent(boardID, cardID uuid.UUID, content string) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.byID[boardID]
	if !ok {
		return nil, ErrBoardNotFound
	}
	card, ok := board.Cards[cardID]
	if !ok {
		return nil, ErrCardNotFound
	}
	card.Content = content

	s.publisher.Publish(board.ID, board.Clone())
	result := *card
	result.Upvotes = append([]string{}, card.Upvotes...)
	return &result, nil
}

// DeleteCard removes a card from the card mapping and from whichever
// column holds it. The owning column is not supplied by the caller: it
// is discovered by scanning the fixed column set, a bounded 3-way
// search. Returns whether the card existed.
func (s *Store) DeleteCard(boardID, cardID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.byID[boardID]
	if !ok {
		return false, ErrBoardNotFound
	}
	if _, ok := board.Cards[cardID]; !ok {
		return false, nil
	}

	delete(board.Cards, cardID)
	for _, columnID := range model.ColumnIDs {
		column := board.Columns[columnID]
		if idx := indexOf(column.CardIDs, cardID); idx >= 0 {
			column.CardIDs = append(column.CardIDs[:idx], column.CardIDs[idx+1:]...)
			reindex(board, column)
			break
		}
	}

	s.publisher.Publish(board.ID, board.Clone())
	return true, nil
}

// ToggleUpvote applies the symmetric difference of userID against the
// card's upvote set: present removes, absent adds.
func (s *Store) ToggleUpvote(boardID, cardID uuid.UUID, userID string) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.byID[boardID]
	if !ok {
		return nil, ErrBoardNotFound
	}
	card, ok := board.Cards[cardID]
	if !ok {
		return nil, ErrCardNotFound
	}

	removed := false
	for i, id := range card.Upvotes {
		if id == userID {
			card.Upvotes = append(card.Upvotes[:i], card.Upvotes[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		card.Upvotes = append(card.Upvotes, userID)
	}

	s.publisher.Publish(board.ID, board.Clone())
	result := *card
	result.Upvotes = append([]string{}, card.Upvotes...)
	return &result, nil
}

// MoveCard applies the move/merge decision procedure. A request with
// mergeTargetID set (and distinct from the dragged card) together with
// destinationIndex == model.MergeIndex is a merge; anything else is a
// reposition. On any validation failure the board is left unchanged and
// nothing is published.
func (s *Store) MoveCard(boardID, draggedID uuid.UUID, sourceColumnID, destColumnID model.ColumnID, destinationIndex int, mergeTargetID uuid.UUID) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.byID[boardID]
	if !ok {
		return nil, ErrBoardNotFound
	}
	dragged, ok := board.Cards[draggedID]
	if !ok {
		return nil, ErrCardNotFound
	}
	source, ok := board.Columns[sourceColumnID]
	if !ok {
		return nil, ErrInvalidMove
	}
	dest, ok := board.Columns[destColumnID]
	if !ok {
		return nil, ErrInvalidMove
	}

	sourceIdx := indexOf(source.CardIDs, draggedID)
	if sourceIdx < 0 {
		// Stale client state: the dragged card is not where the
		// requester believes it is.
		return nil, ErrInvalidMove
	}

	if mergeTargetID != uuid.Nil && mergeTargetID != draggedID && destinationIndex == model.MergeIndex {
		return s.mergeLocked(board, dragged, source, sourceIdx, dest, mergeTargetID)
	}

	// Reposition. Remove first, then correct the requested index: when
	// staying in the same column the removal has already shifted every
	// later card one slot left.
	source.CardIDs = append(source.CardIDs[:sourceIdx], source.CardIDs[sourceIdx+1:]...)
	effective := destinationIndex
	if sourceColumnID == destColumnID && sourceIdx < destinationIndex {
		effective--
	}
	if effective < 0 {
		effective = 0
	}
	if effective > len(dest.CardIDs) {
		effective = len(dest.CardIDs)
	}
	dest.CardIDs = append(dest.CardIDs[:effective], append([]uuid.UUID{draggedID}, dest.CardIDs[effective:]...)...)

	reindex(board, source)
	if dest != source {
		reindex(board, dest)
	}

	snapshot := board.Clone()
	s.publisher.Publish(board.ID, snapshot)
	return snapshot, nil
}

// mergeLocked folds the dragged card into the merge target: contents
// concatenated, upvote sets unioned, dragged card deleted. The target's
// position and column are unchanged, so only the source is reindexed.
func (s *Store) mergeLocked(board *model.Board, dragged *model.Card, source *model.Column, sourceIdx int, dest *model.Column, mergeTargetID uuid.UUID) (*model.Board, error) {
	target, ok := board.Cards[mergeTargetID]
	if !ok {
		return nil, ErrCardNotFound
	}
	if indexOf(dest.CardIDs, mergeTargetID) < 0 {
		return nil, ErrInvalidMove
	}

	target.Content = target.Content + MergeSeparator + dragged.Content
	for _, userID := range dragged.Upvotes {
		if !target.HasUpvote(userID) {
			target.Upvotes = append(target.Upvotes, userID)
		}
	}
	delete(board.Cards, dragged.ID)
	source.CardIDs = append(source.CardIDs[:sourceIdx], source.CardIDs[sourceIdx+1:]...)
	reindex(board, source)

	snapshot := board.Clone()
	s.publisher.Publish(board.ID, snapshot)
	return snapshot, nil
}

// reindex rewrites the Order cache of every card in the column to its
// current index: dense, unique, 0-based.
func reindex(board *model.Board, column *model.Column) {
	for i, id := range column.CardIDs {
		if card, ok := board.Cards[id]; ok {
			card.Order = i
		}
	}
}

func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

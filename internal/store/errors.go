package store

import "errors"

// Common store errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrCardNotFound is returned when a card is not found
	ErrCardNotFound = errors.New("card not found")

	// ErrColumnNotFound is returned when a column id is not one of the
	// board's fixed columns
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidMove is returned when a move or merge request does not
	// match the current board state (the requester's view is stale)
	ErrInvalidMove = errors.New("invalid move")
)

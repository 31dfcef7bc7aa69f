package handler

import (
	"errors"
	"net/http"

	"retroboard/internal/model"
	"retroboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	store *store.Store
}

func NewCardHandler(store *store.Store) *CardHandler {
	return &CardHandler{
		store: store,
	}
}

// AddCardRequest представляет запрос на создание карточки
type AddCardRequest struct {
	ColumnID string `json:"columnId" binding:"required"`
	Content  string `json:"content" binding:"required"`
	UserID   string `json:"userId" binding:"required"`
	UserName string `json:"userName" binding:"required"`
}

// UpdateCardRequest представляет запрос на изменение текста карточки
type UpdateCardRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpvoteRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// MoveCardRequest представляет запрос на перемещение или слияние карточки.
// DestinationIndex == -1 вместе с MergeTargetCardID означает слияние.
type MoveCardRequest struct {
	SourceColumnID    string `json:"sourceColumnId" binding:"required"`
	DestColumnID      string `json:"destColumnId" binding:"required"`
	DestinationIndex  int    `json:"destinationIndex"`
	MergeTargetCardID string `json:"mergeTargetCardId"`
}

// Add creates a new card at the head of the target column
func (h *CardHandler) Add(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	var req AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Column ids are a closed set; reject unknown ids before the store
	columnID := model.ColumnID(req.ColumnID)
	if !columnID.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown column ID"})
		return
	}

	card, err := h.store.AddCard(boardID, columnID, req.Content, req.UserID, req.UserName)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, card)
}

// Update replaces a card's content
func (h *CardHandler) Update(c *gin.Context) {
	boardID, cardID, ok := parseCardPath(c)
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := h.store.UpdateCardContent(boardID, cardID, req.Content)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// Delete removes a card; its column is discovered by the store
func (h *CardHandler) Delete(c *gin.Context) {
	boardID, cardID, ok := parseCardPath(c)
	if !ok {
		return
	}

	existed, err := h.store.DeleteCard(boardID, cardID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Upvote toggles the requesting user's upvote on a card
func (h *CardHandler) Upvote(c *gin.Context) {
	boardID, cardID, ok := parseCardPath(c)
	if !ok {
		return
	}

	var req UpvoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := h.store.ToggleUpvote(boardID, cardID, req.UserID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// Move repositions a card or merges it into a target card
func (h *CardHandler) Move(c *gin.Context) {
	boardID, cardID, ok := parseCardPath(c)
	if !ok {
		return
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sourceColumnID := model.ColumnID(req.SourceColumnID)
	destColumnID := model.ColumnID(req.DestColumnID)
	if !sourceColumnID.Valid() || !destColumnID.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown column ID"})
		return
	}

	mergeTargetID := uuid.Nil
	if req.MergeTargetCardID != "" {
		parsed, err := uuid.Parse(req.MergeTargetCardID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid merge target ID format"})
			return
		}
		mergeTargetID = parsed
	}

	board, err := h.store.MoveCard(boardID, cardID, sourceColumnID, destColumnID, req.DestinationIndex, mergeTargetID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// parseCardPath extracts and validates the board and card ids from the
// request path, answering the error response itself on failure.
func parseCardPath(c *gin.Context) (boardID, cardID uuid.UUID, ok bool) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return uuid.Nil, uuid.Nil, false
	}
	cardID, err = uuid.Parse(c.Param("cardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return uuid.Nil, uuid.Nil, false
	}
	return boardID, cardID, true
}

// respondStoreError maps store errors onto HTTP statuses. Invalid moves
// answer 409: the requester's view is stale and must be refreshed.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrBoardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
	case errors.Is(err, store.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
	case errors.Is(err, store.ErrColumnNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
	case errors.Is(err, store.ErrInvalidMove):
		c.JSON(http.StatusConflict, gin.H{"error": "Move does not match current board state"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

package handler

import (
	"net/http"
	"time"

	"retroboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	store *store.Store
}

func NewBoardHandler(store *store.Store) *BoardHandler {
	return &BoardHandler{
		store: store,
	}
}

type CreateBoardRequest struct {
	Title    string `json:"title" binding:"required"`
	UserID   string `json:"userId" binding:"required"`
	UserName string `json:"userName" binding:"required"`
}

// BoardSummary представляет доску в списке досок (без карточек)
type BoardSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	CardCount int    `json:"cardCount"`
}

// Create creates a new empty board and returns its full snapshot
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board := h.store.CreateBoard(req.Title)

	c.JSON(http.StatusCreated, board)
}

// GetAll returns summaries of all boards, newest first
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards := h.store.Boards()

	response := make([]BoardSummary, len(boards))
	for i, board := range boards {
		response[i] = BoardSummary{
			ID:        board.ID.String(),
			Title:     board.Title,
			CreatedAt: board.CreatedAt.Format(time.RFC3339),
			CardCount: len(board.Cards),
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetByID returns the full snapshot of one board
func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board := h.store.Snapshot(boardID)
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	c.JSON(http.StatusOK, board)
}

// Delete removes a board; subscribers receive a tombstone
func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if !h.store.DeleteBoard(boardID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

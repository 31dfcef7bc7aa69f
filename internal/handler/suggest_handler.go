package handler

import (
	"net/http"
	"strings"

	"retroboard/internal/model"
	"retroboard/internal/store"
	"retroboard/internal/suggest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SuggestHandler struct {
	store     *store.Store
	generator suggest.Generator // nil when no generator is configured
}

func NewSuggestHandler(store *store.Store, generator suggest.Generator) *SuggestHandler {
	return &SuggestHandler{
		store:     store,
		generator: generator,
	}
}

type SuggestRequest struct {
	UserID   string `json:"userId" binding:"required"`
	UserName string `json:"userName" binding:"required"`
}

type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest feeds one column's card text to the suggestion generator and
// adds each returned suggestion as a new card in actionItems. Every
// added card broadcasts its own snapshot, same as a manual add.
func (h *SuggestHandler) Suggest(c *gin.Context) {
	if h.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Suggestions are not configured"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}
	columnID := model.ColumnID(c.Param("columnId"))
	if !columnID.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown column ID"})
		return
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board := h.store.Snapshot(boardID)
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	// Concatenate the column's card contents in display order
	column := board.Columns[columnID]
	contents := make([]string, 0, len(column.CardIDs))
	for _, cardID := range column.CardIDs {
		if card, ok := board.Cards[cardID]; ok {
			contents = append(contents, card.Content)
		}
	}

	suggestions, err := h.generator.Generate(c.Request.Context(), strings.Join(contents, "\n"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate suggestions"})
		return
	}

	for _, suggestion := range suggestions {
		if _, err := h.store.AddCard(boardID, model.ColumnActionItems, suggestion, req.UserID, req.UserName); err != nil {
			respondStoreError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, SuggestResponse{Suggestions: suggestions})
}

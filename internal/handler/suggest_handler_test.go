package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"retroboard/internal/broadcast"
	"retroboard/internal/handler"
	"retroboard/internal/model"
	"retroboard/internal/store"
	"retroboard/internal/suggest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubGenerator отдает фиксированный список предложений
type stubGenerator struct {
	gotText     string
	suggestions []string
	err         error
}

func (g *stubGenerator) Generate(_ context.Context, text string) ([]string, error) {
	g.gotText = text
	return g.suggestions, g.err
}

func setupSuggestRouter(generator suggest.Generator) (*gin.Engine, *store.Store) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	boardStore := store.New(broadcast.New())
	suggestHandler := handler.NewSuggestHandler(boardStore, generator)
	r.POST("/boards/:id/columns/:columnId/suggest", suggestHandler.Suggest)

	return r, boardStore
}

func TestSuggest_AddsActionItems(t *testing.T) {
	// Arrange
	generator := &stubGenerator{suggestions: []string{"write runbooks", "rotate on-call"}}
	router, boardStore := setupSuggestRouter(generator)
	board := boardStore.CreateBoard("retro")
	_, err := boardStore.AddCard(board.ID, model.ColumnToImprove, "deploys are manual", "u1", "User")
	assert.NoError(t, err)

	// Act
	resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/boards/%s/columns/toImprove/suggest", board.ID),
		gin.H{"userId": "u1", "userName": "User One"})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "deploys are manual", generator.gotText)

	var response handler.SuggestResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Len(t, response.Suggestions, 2)

	// Каждое предложение стало карточкой в actionItems
	snapshot := boardStore.Snapshot(board.ID)
	assert.Len(t, snapshot.Columns[model.ColumnActionItems].CardIDs, 2)
}

func TestSuggest_GeneratorFailure(t *testing.T) {
	// Arrange
	generator := &stubGenerator{err: errors.New("upstream down")}
	router, boardStore := setupSuggestRouter(generator)
	board := boardStore.CreateBoard("retro")

	// Act
	resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/boards/%s/columns/toImprove/suggest", board.ID),
		gin.H{"userId": "u1", "userName": "User One"})

	// Assert
	assert.Equal(t, http.StatusBadGateway, resp.Code)
}

func TestSuggest_NotConfigured(t *testing.T) {
	// Arrange: генератор не настроен
	router, boardStore := setupSuggestRouter(nil)
	board := boardStore.CreateBoard("retro")

	// Act
	resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/boards/%s/columns/toImprove/suggest", board.ID),
		gin.H{"userId": "u1", "userName": "User One"})

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestSuggest_UnknownColumn(t *testing.T) {
	// Arrange
	generator := &stubGenerator{suggestions: []string{"x"}}
	router, boardStore := setupSuggestRouter(generator)
	board := boardStore.CreateBoard("retro")

	// Act
	resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/boards/%s/columns/backlog/suggest", board.ID),
		gin.H{"userId": "u1", "userName": "User One"})

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSuggest_UnknownBoard(t *testing.T) {
	// Arrange
	generator := &stubGenerator{suggestions: []string{"x"}}
	router, _ := setupSuggestRouter(generator)

	// Act
	resp := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/boards/%s/columns/toImprove/suggest", uuid.New()),
		gin.H{"userId": "u1", "userName": "User One"})

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

package client_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"retroboard/internal/client"
	"retroboard/internal/config"
	"retroboard/internal/drag"
	"retroboard/internal/model"
	"retroboard/internal/server"

	"github.com/stretchr/testify/assert"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := server.Init(&config.Config{ServerPort: "0"})
	assert.NoError(t, err)

	srv := httptest.NewServer(s.Engine)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_MutationsRefusedWhileUnconfirmed(t *testing.T) {
	// Arrange: стрим не запускался, доска не подтверждена
	c := client.New("http://localhost:0", "u1", "User One")
	board := model.NewBoard("retro")

	// Act + Assert: запрос не уходит на сервер вообще
	err := c.AddCard(context.Background(), board.ID, model.ColumnWentWell, "text")
	assert.ErrorIs(t, err, client.ErrUnconfirmed)

	err = c.ToggleUpvote(context.Background(), board.ID, board.ID)
	assert.ErrorIs(t, err, client.ErrUnconfirmed)

	err = c.MoveCard(context.Background(), board.ID, drag.MoveRequest{})
	assert.ErrorIs(t, err, client.ErrUnconfirmed)
}

func TestClient_WriteThroughRoundTrip(t *testing.T) {
	// Arrange
	srv := setupServer(t)
	c := client.New(srv.URL, "u1", "User One")

	board, err := c.CreateBoard(context.Background(), "Sprint 12")
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Стрим подтверждает доску и питает реплику
	go func() {
		_ = c.Watch(ctx, board.ID, nil)
	}()

	assert.Eventually(t, func() bool {
		return c.Replica().Confirmed(board.ID)
	}, 2*time.Second, 10*time.Millisecond)

	// Act: мутация видна локально только после пуша с сервера
	err = c.AddCard(ctx, board.ID, model.ColumnWentWell, "shipped on time")
	assert.NoError(t, err)

	// Assert
	assert.Eventually(t, func() bool {
		cards := c.Replica().ColumnCards(board.ID, model.ColumnWentWell)
		return len(cards) == 1 && cards[0].Content == "shipped on time"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClient_TombstonePurgesReplica(t *testing.T) {
	// Arrange
	srv := setupServer(t)
	c := client.New(srv.URL, "u1", "User One")

	board, err := c.CreateBoard(context.Background(), "doomed")
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = c.Watch(ctx, board.ID, nil)
	}()

	assert.Eventually(t, func() bool {
		return c.Replica().Confirmed(board.ID)
	}, 2*time.Second, 10*time.Millisecond)

	// Act
	err = c.DeleteBoard(ctx, board.ID)
	assert.NoError(t, err)

	// Assert: надгробие сносит доску из кеша
	assert.Eventually(t, func() bool {
		return !c.Replica().Confirmed(board.ID)
	}, 2*time.Second, 10*time.Millisecond)
}

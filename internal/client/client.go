package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"retroboard/internal/drag"
	"retroboard/internal/model"
)

// ErrUnconfirmed is returned when a mutation is attempted on a board
// whose state has not been confirmed by the change stream this session.
// No request is sent; the caller should wait for the stream.
var ErrUnconfirmed = errors.New("board not confirmed by change stream")

// Client is the write-through board client: every mutation is a request
// to the authoritative store, and local state changes only when the
// resulting snapshot arrives on the change stream via Watch.
type Client struct {
	baseURL  string
	http     *http.Client
	replica  *Replica
	userID   string
	userName string
}

func New(baseURL, userID, userName string) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{},
		replica:  NewReplica(),
		userID:   userID,
		userName: userName,
	}
}

// Replica exposes the read-only board cache fed by Watch.
func (c *Client) Replica() *Replica {
	return c.replica
}

// Watch subscribes to one board's change stream and feeds every event
// into the replica until ctx is cancelled or the stream ends. onUpdate,
// when non-nil, is called after each applied event with the snapshot
// (nil for a tombstone).
func (c *Client) Watch(ctx context.Context, boardID uuid.UUID, onUpdate func(*model.Board)) error {
	url := fmt.Sprintf("%s/boards/%s/stream", c.baseURL, boardID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream request failed: %s", resp.Status)
	}

	err = readEvents(resp.Body, func(event streamEvent) error {
		if event.name != "boardUpdate" {
			return nil
		}
		var snapshot *model.Board
		if err := json.Unmarshal([]byte(event.data), &snapshot); err != nil {
			return fmt.Errorf("decoding snapshot: %w", err)
		}
		c.replica.ApplySnapshot(boardID, snapshot)
		if onUpdate != nil {
			onUpdate(snapshot)
		}
		return nil
	})
	if ctx.Err() != nil {
		// Cancellation closes the response body mid-read; not a failure
		return ctx.Err()
	}
	return err
}

// CreateBoard creates a new board. Creation needs no confirmed state.
func (c *Client) CreateBoard(ctx context.Context, title string) (*model.Board, error) {
	body := map[string]any{"title": title, "userId": c.userID, "userName": c.userName}
	var board model.Board
	if err := c.do(ctx, http.MethodPost, "/boards", body, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// ListBoards fetches summaries of all boards.
func (c *Client) ListBoards(ctx context.Context) ([]map[string]any, error) {
	var boards []map[string]any
	if err := c.do(ctx, http.MethodGet, "/boards", nil, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// DeleteBoard removes a board.
func (c *Client) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/boards/%s", boardID), nil, nil)
}

// AddCard adds a card at the head of a column.
func (c *Client) AddCard(ctx context.Context, boardID uuid.UUID, columnID model.ColumnID, content string) error {
	if !c.replica.Confirmed(boardID) {
		return ErrUnconfirmed
	}
	body := map[string]any{
		"columnId": columnID,
		"content":  content,
		"userId":   c.userID,
		"userName": c.userName,
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/boards/%s/cards", boardID), body, nil)
}

// UpdateCard replaces a card's content.
func (c *Client) UpdateCard(ctx context.Context, boardID, cardID uuid.UUID, content string) error {
	if !c.replica.Confirmed(boardID) {
		return ErrUnconfirmed
	}
	body := map[string]any{"content": content}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/boards/%s/cards/%s", boardID, cardID), body, nil)
}

// DeleteCard removes a card.
func (c *Client) DeleteCard(ctx context.Context, boardID, cardID uuid.UUID) error {
	if !c.replica.Confirmed(boardID) {
		return ErrUnconfirmed
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/boards/%s/cards/%s", boardID, cardID), nil, nil)
}

// ToggleUpvote toggles this user's upvote on a card.
func (c *Client) ToggleUpvote(ctx context.Context, boardID, cardID uuid.UUID) error {
	if !c.replica.Confirmed(boardID) {
		return ErrUnconfirmed
	}
	body := map[string]any{"userId": c.userID}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/boards/%s/cards/%s/upvote", boardID, cardID), body, nil)
}

// MoveCard issues the single authoritative move request produced by a
// drop, in either positional or merge encoding.
func (c *Client) MoveCard(ctx context.Context, boardID uuid.UUID, move drag.MoveRequest) error {
	if !c.replica.Confirmed(boardID) {
		return ErrUnconfirmed
	}
	body := map[string]any{
		"sourceColumnId":   move.SourceColumnID,
		"destColumnId":     move.DestColumnID,
		"destinationIndex": move.DestinationIndex,
	}
	if move.MergeTargetCardID != uuid.Nil {
		body["mergeTargetCardId"] = move.MergeTargetCardID.String()
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/boards/%s/cards/%s/move", boardID, move.DraggedCardID), body, nil)
}

// do sends one JSON request and decodes the response into out (when
// non-nil). Non-2xx responses surface the server's error description.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, envelope.Error)
		}
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

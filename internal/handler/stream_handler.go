package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"retroboard/internal/broadcast"
	"retroboard/internal/model"
	"retroboard/internal/store"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// boardUpdateEvent is the only event type on the change stream.
const boardUpdateEvent = "boardUpdate"

type StreamHandler struct {
	store       *store.Store
	broadcaster *broadcast.Broadcaster
}

func NewStreamHandler(store *store.Store, broadcaster *broadcast.Broadcaster) *StreamHandler {
	return &StreamHandler{
		store:       store,
		broadcaster: broadcaster,
	}
}

// Stream subscribes the client to one board's change stream. The
// current snapshot (or a tombstone for an unknown board id, which is
// not an error) is delivered first through the same encoding as every
// subsequent push, so the client cannot distinguish catch-up from
// update. The connection is held open until the client disconnects.
func (h *StreamHandler) Stream(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Catch-up first, then subscribe.
	if !h.send(c, h.store.Snapshot(boardID)) {
		return
	}

	sub := h.broadcaster.Subscribe(boardID)
	defer h.broadcaster.Unsubscribe(sub)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-sub.C():
			if !h.send(c, snapshot) {
				return
			}
		}
	}
}

// send writes one boardUpdate event. The snapshot is marshalled here
// because the event encoder prints a nil pointer as "<nil>", while a
// tombstone must reach the wire as the JSON literal null. Encode errors
// mean the connection is already tearing down, so they are logged and
// the stream ends.
func (h *StreamHandler) send(c *gin.Context, snapshot *model.Board) bool {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("⚠️  Dropping stream subscriber: %v", err)
		return false
	}
	event := sse.Event{
		Event: boardUpdateEvent,
		Data:  string(payload),
	}
	if err := sse.Encode(c.Writer, event); err != nil {
		log.Printf("⚠️  Dropping stream subscriber: %v", err)
		return false
	}
	c.Writer.Flush()
	return true
}

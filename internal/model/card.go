package model

import (
	"time"

	"github.com/google/uuid"
)

// Card is one entry on a board. Author and voter ids are opaque tokens
// issued by the identity layer; the store never validates them.
type Card struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	Upvotes    []string  `json:"upvotes"`
	Order      int       `json:"order"`
}

// HasUpvote reports whether userID is in the card's upvote set.
func (c *Card) HasUpvote(userID string) bool {
	for _, id := range c.Upvotes {
		if id == userID {
			return true
		}
	}
	return false
}

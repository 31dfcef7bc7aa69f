package broadcast

import (
	"sync"

	"github.com/google/uuid"

	"retroboard/internal/model"
)

// subscriberBuffer bounds how far a subscriber may fall behind the
// publish stream before it starts losing publications. Stream handlers
// drain continuously, so the buffer only absorbs short bursts.
const subscriberBuffer = 64

// Subscription is one subscriber's registration on a board's channel.
type Subscription struct {
	boardID uuid.UUID
	ch      chan *model.Board
}

// C returns the channel snapshots are delivered on. A nil snapshot is
// a tombstone: the board no longer exists.
func (s *Subscription) C() <-chan *model.Board {
	return s.ch
}

// Broadcaster fans each board's snapshots out to the board's current
// subscribers. Publications to a board with no subscribers are dropped;
// there is no buffering or replay for late subscribers.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[*Subscription]struct{}
}

func New() *Broadcaster {
	return &Broadcaster{
		subs: make(map[uuid.UUID]map[*Subscription]struct{}),
	}
}

// Subscribe registers a new subscriber for one board id. The returned
// channel must be drained: a subscriber whose buffer fills up loses
// publications until it catches up.
func (b *Broadcaster) Subscribe(boardID uuid.UUID) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{
		boardID: boardID,
		ch:      make(chan *model.Board, subscriberBuffer),
	}
	set, ok := b.subs[boardID]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[boardID] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Unsubscribe removes a subscriber. Safe to call more than once.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[sub.boardID]
	if !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(b.subs, sub.boardID)
	}
}

// SubscriberCount returns how many subscribers a board currently has.
func (b *Broadcaster) SubscriberCount(boardID uuid.UUID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[boardID])
}

// Publish delivers a snapshot (or a nil tombstone) to every current
// subscriber of the board before returning. The store calls this while
// holding its mutation lock, which is what guarantees that stream
// delivery order per board equals publish order. A subscriber whose
// buffer is full is not drained by anyone and would block every
// mutation, so it loses the publication instead; its next delivered
// snapshot is still the full current state.
func (b *Broadcaster) Publish(boardID uuid.UUID, snapshot *model.Board) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs[boardID] {
		select {
		case sub.ch <- snapshot:
		default:
		}
	}
}

// Package notify is the in-process replacement for the old cross-component
// signaling that wrote to browser session storage and fired a DOM event.
// Events here are typed, subscribers are explicit, and delivery within one
// subscriber is ordered; a subscriber that stops draining loses the oldest
// events instead of blocking publishers.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notice is one notification record.
type Notice struct {
	ID          string
	Type        string
	Title       string
	Message     string
	Category    string
	TargetRoles []string
	Read        bool
	CreatedAt   time.Time
}

// Categories used across the board.
const (
	CategoryGeneral  = "general"
	CategoryPayments = "payments"
	CategoryShelters = "shelters"
	CategoryCases    = "cases"
)

type subscriber struct {
	category string // "" matches everything
	ch       chan Notice
}

type Bus struct {
	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
	logger *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{subs: make(map[int]*subscriber), logger: logger}
}

// Subscribe registers a listener for a category ("" for all). The returned
// cancel func must be called to release the subscription; the channel is
// closed by cancel.
func (b *Bus) Subscribe(category string, buffer int) (<-chan Notice, func()) {
	if buffer < 1 {
		buffer = 16
	}
	sub := &subscriber{category: category, ch: make(chan Notice, buffer)}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
		b.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish delivers n to every matching subscriber. Missing id/timestamp are
// filled in. Publish never blocks: when a subscriber's buffer is full the
// oldest buffered notice is dropped to make room.
func (b *Bus) Publish(n Notice) Notice {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Category == "" {
		n.Category = CategoryGeneral
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if sub.category != "" && sub.category != n.Category {
			continue
		}
		select {
		case sub.ch <- n:
			continue
		default:
		}
		// Buffer full: drop the oldest and retry once.
		select {
		case dropped := <-sub.ch:
			b.logger.Debug("notice dropped, subscriber behind",
				zap.String("id", dropped.ID),
				zap.String("category", dropped.Category))
		default:
		}
		select {
		case sub.ch <- n:
		default:
		}
	}
	return n
}

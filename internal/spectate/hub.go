// Package spectate serves a read-only view of a running game over HTTP and
// websockets.
package spectate

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/plus3/blockfall/tetris"
)

const subscriberBuffer = 16

// Hub keeps the latest snapshot and fans new ones out to subscribers. It is
// safe for concurrent use and never blocks the publisher: a subscriber that
// falls behind misses snapshots until it catches up.
type Hub struct {
	logger zerolog.Logger

	mu      sync.Mutex
	latest  []byte
	subs    map[chan []byte]struct{}
	dropped uint64
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		logger: logger,
		subs:   make(map[chan []byte]struct{}),
	}
}

// Publish encodes s and delivers it to every subscriber.
func (h *Hub) Publish(s tetris.Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		h.logger.Error().Err(err).Msg("encode snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = data
	for ch := range h.subs {
		select {
		case ch <- data:
		default:
			h.dropped++
		}
	}
}

// Latest returns the most recent encoded snapshot, or false before the first
// publish.
func (h *Hub) Latest() ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest, h.latest != nil
}

// Subscribe registers a subscriber. The returned slice is the latest
// snapshot at subscription time, nil if none was published yet.
func (h *Hub) Subscribe() (chan []byte, []byte) {
	ch := make(chan []byte, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	latest := h.latest
	h.mu.Unlock()
	return ch, latest
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped counts deliveries skipped because a subscriber was lagging.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

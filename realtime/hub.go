// Package realtime fans new-complaint events out to department dashboards
// over WebSocket.
package realtime

import (
	"log"
	"sync"
)

// AdminChannel receives a mirror of every broadcast, so the city dashboard
// sees everything.
const AdminChannel = "admin"

// Event types pushed to subscribers.
const (
	EventNewComplaint = "NEW_COMPLAINT"
	EventSLABreach    = "SLA_BREACH"
)

// Event is the wire format for dashboard pushes.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains per-channel subscriber sets. A client belongs to exactly one
// channel for its lifetime; membership ends on disconnect or Unsubscribe.
// Nothing is persisted: subscribers that connect after an event fired missed
// it.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[*Client]bool)}
}

// Subscribe adds the client to a channel's subscriber set.
func (h *Hub) Subscribe(c *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.channel = channel
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][c] = true
	log.Printf("WS client connected to channel: %s (%d subscribers)", channel, len(h.channels[channel]))
}

// Unsubscribe removes the client and closes its send channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.channels[c.channel]
	if !ok || !subscribers[c] {
		return
	}
	delete(subscribers, c)
	if len(subscribers) == 0 {
		delete(h.channels, c.channel)
	}
	close(c.send)
	log.Printf("WS client disconnected from channel: %s", c.channel)
}

// Broadcast delivers the event to every subscriber of the channel, and
// mirrors non-admin broadcasts to the admin channel. Delivery is best-effort
// per subscriber: a full send buffer is logged and skipped, never aborting
// the rest of the batch.
func (h *Hub) Broadcast(channel string, event Event) {
	h.deliver(channel, event)
	if channel != AdminChannel {
		h.deliver(AdminChannel, event)
	}
}

func (h *Hub) deliver(channel string, event Event) {
	// Sends happen under the read lock so a concurrent Unsubscribe (which
	// closes the send channel under the write lock) can never race a send.
	// Sends are non-blocking, so the lock is held only briefly.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.channels[channel] {
		select {
		case c.send <- event:
		default:
			log.Printf("Failed to send WS message on channel %s: subscriber buffer full", channel)
		}
	}
}

// SubscriberCount returns the number of live subscribers on a channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

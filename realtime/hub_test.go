package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, buffer int) *Client {
	return &Client{hub: hub, send: make(chan Event, buffer)}
}

func drain(c *Client) []Event {
	var events []Event
	for {
		select {
		case e := <-c.send:
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestBroadcastReachesChannelAndAdminMirror(t *testing.T) {
	hub := NewHub()
	water := newTestClient(hub, 4)
	admin := newTestClient(hub, 4)
	roads := newTestClient(hub, 4)
	hub.Subscribe(water, "Water Supply")
	hub.Subscribe(admin, AdminChannel)
	hub.Subscribe(roads, "Roads & Infrastructure")

	event := Event{Type: EventNewComplaint, Data: "c1"}
	hub.Broadcast("Water Supply", event)

	assert.Equal(t, []Event{event}, drain(water))
	assert.Equal(t, []Event{event}, drain(admin), "admin mirrors every broadcast")
	assert.Empty(t, drain(roads), "unrelated channels stay quiet")
}

func TestBroadcastToAdminIsNotDoubled(t *testing.T) {
	hub := NewHub()
	admin := newTestClient(hub, 4)
	hub.Subscribe(admin, AdminChannel)

	hub.Broadcast(AdminChannel, Event{Type: EventSLABreach})

	assert.Len(t, drain(admin), 1)
}

func TestBroadcastToEmptyChannelIsNoop(t *testing.T) {
	hub := NewHub()

	assert.NotPanics(t, func() {
		hub.Broadcast("Electricity", Event{Type: EventNewComplaint})
	})
}

func TestUnsubscribeClosesSendAndIsIdempotent(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub, 1)
	hub.Subscribe(c, "Public Safety")
	require.Equal(t, 1, hub.SubscriberCount("Public Safety"))

	hub.Unsubscribe(c)

	assert.Equal(t, 0, hub.SubscriberCount("Public Safety"))
	_, open := <-c.send
	assert.False(t, open, "send channel must be closed on unsubscribe")

	assert.NotPanics(t, func() { hub.Unsubscribe(c) })
}

func TestUnsubscribeDoesNotAffectPeers(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub, 4)
	b := newTestClient(hub, 4)
	hub.Subscribe(a, "Sanitation & Waste")
	hub.Subscribe(b, "Sanitation & Waste")

	hub.Unsubscribe(a)
	hub.Broadcast("Sanitation & Waste", Event{Type: EventNewComplaint})

	assert.Len(t, drain(b), 1)
}

func TestBroadcastSkipsFullBuffers(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(hub, 1)
	fast := newTestClient(hub, 4)
	hub.Subscribe(slow, "Traffic & Transport")
	hub.Subscribe(fast, "Traffic & Transport")
	slow.send <- Event{Type: "FILLER"}

	// Sends are non-blocking, so this returns even with a full buffer.
	hub.Broadcast("Traffic & Transport", Event{Type: EventNewComplaint})

	assert.Len(t, drain(fast), 1, "a slow subscriber must not starve the rest")
	events := drain(slow)
	require.Len(t, events, 1)
	assert.Equal(t, "FILLER", events[0].Type, "the new event is dropped, not queued behind")
}

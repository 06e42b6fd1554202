package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is one message for the admin live stream.
type Event struct {
	Name string
	Data interface{}
}

// Hub is the registry of open admin event-stream connections. Each
// subscriber owns a buffered channel; Broadcast never blocks on a slow
// reader, it drops the event for that reader instead.
type Hub struct {
	mu      sync.Mutex
	clients map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan Event]struct{})}
}

func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

// Broadcast delivers the event to every open connection. Delivery to one
// connection never affects the others.
func (h *Hub) Broadcast(name string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- Event{Name: name, Data: data}:
		default:
			logrus.WithField("event", name).Warn("stream client too slow, event dropped")
		}
	}
}

// ClientCount reports how many connections are open.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

package ws

import (
	"encoding/json"

	"github.com/sujalbistaa/feedhub/internal/board"
	"github.com/sujalbistaa/feedhub/internal/logging"
)

// Hub fans board events out to every connected listing client. Delivery is
// best-effort: a slow client gets dropped, never blocks the hub.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client set. Call it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Publish implements board.Publisher. Events that fail to marshal are
// logged and dropped; the triggering write has already succeeded.
func (h *Hub) Publish(ev board.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logging.Log.WithError(err).Error("failed to marshal event")
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		logging.Log.Warn("event dropped: broadcast channel full")
	}
}

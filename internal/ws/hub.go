package ws

import "sync"

// Hub tracks connected sockets keyed by identity (email). One user may hold
// several sockets at once.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

type Client struct {
	Identity string
	Send     chan []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

func NewClient(identity string) *Client {
	return &Client{Identity: identity, Send: make(chan []byte, 16)}
}

func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.Identity]; !ok {
		h.clients[c.Identity] = make(map[*Client]struct{})
	}
	h.clients[c.Identity][c] = struct{}{}
}

func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.Identity]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.Identity)
		}
	}
}

// SendTo delivers msg to every socket held by identity. Slow clients drop.
func (h *Hub) SendTo(identity string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[identity] {
		select {
		case c.Send <- msg:
		default:
		}
	}
}

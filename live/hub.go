package live

import "sync"

// adminRoom is where order lifecycle events are fanned out.
const adminRoom = "admin"

type Client struct {
	Send chan []byte
	Room string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Hub fans order events out to connected dashboard clients, one set of
// clients per room.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	stop       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		stop:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
}

// Broadcast queues data for every client in the room.
func (h *Hub) Broadcast(room string, data []byte) {
	h.broadcast <- broadcastMsg{Room: room, Data: data}
}

package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"rongchapa/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// AdminFeedHandler upgrades an admin dashboard connection into the admin
// room. Role enforcement happens in the route wrapper.
func AdminFeedHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("feed upgrade:", err)
			return
		}

		client := &Client{
			Send: make(chan []byte, 256),
			Room: adminRoom,
		}
		hub.register <- client

		go writePump(conn, client)
		go readPump(conn, hub, client)
	}
}

func writePump(conn *websocket.Conn, c *Client) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only watches for disconnects; the feed is one-way.
func readPump(conn *websocket.Conn, hub *Hub, c *Client) {
	defer func() {
		hub.unregister <- c
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// RunEventBridge pipes order lifecycle events from the Redis channel into
// the admin room until the context ends.
func RunEventBridge(ctx context.Context, hub *Hub) {
	events := mq.Subscribe(ctx)
	log.Println("live: listening for order events")

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				log.Println("live: marshal event:", err)
				continue
			}
			hub.Broadcast(adminRoom, data)
		}
	}
}

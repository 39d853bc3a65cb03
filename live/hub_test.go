package live

import (
	"encoding/json"
	"testing"
	"time"

	"rongchapa/mq"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: adminRoom,
	}

	hub.register <- client

	event := mq.OrderEvent{Type: mq.OrderCreated, EntityID: "o123", Status: "pending"}
	data, _ := json.Marshal(event)
	hub.Broadcast(adminRoom, data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	hub.unregister <- client
}

func TestHubBroadcastSkipsOtherRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 1),
		Room: "other",
	}
	hub.register <- client

	hub.Broadcast(adminRoom, []byte("hello"))

	select {
	case got := <-client.Send:
		t.Fatalf("expected no message, got %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

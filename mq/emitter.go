package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rongchapa/rdx"
)

// Channel carrying order lifecycle events to the live feed worker.
const Channel = "order-events"

// Event types
const (
	OrderCreated         = "order-created"
	OrderBatchCreated    = "order-batch-created"
	OrderStatusChanged   = "order-status-changed"
	OrderCancelRequested = "order-cancel-requested"
	OrderCancelResolved  = "order-cancel-resolved"
	PrintOrderCreated    = "printorder-created"
	PrintStatusChanged   = "printorder-status-changed"
)

// OrderEvent is the payload published for every order lifecycle change.
type OrderEvent struct {
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	BatchID  string    `json:"batchId,omitempty"`
	UserID   string    `json:"userId,omitempty"`
	Status   string    `json:"status,omitempty"`
	At       time.Time `json:"at"`
}

// Emit publishes an event to Redis. Publishing is best effort: a broken
// event bus never fails the originating request.
func Emit(ctx context.Context, event OrderEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("mq: failed to marshal %s event: %v", event.Type, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, Channel, data).Err(); err != nil {
		log.Printf("mq: failed to publish %s event: %v", event.Type, err)
	}
}

// Subscribe returns a channel of decoded order events.
func Subscribe(ctx context.Context) <-chan OrderEvent {
	sub := rdx.Conn.Subscribe(ctx, Channel)
	out := make(chan OrderEvent)

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var event OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("mq: failed to parse event: %v", err)
				continue
			}
			out <- event
		}
	}()

	return out
}

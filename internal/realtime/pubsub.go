package realtime

import (
	"encoding/json"
	"log"

	"nagarrakshak/backend/internal/models"
)

// StartPubSubListener starts the goroutine that relays change events from
// Redis Pub/Sub into the hub loop. Going through Redis keeps every server
// instance's clients in sync, not just the one that wrote the row.
func (h *Hub) StartPubSubListener() {
	if h.Storage == nil || h.Storage.Redis == nil {
		log.Println("WARN: Realtime hub running without Redis; only in-process events will be delivered")
		return
	}

	go func() {
		pubsub := h.Storage.SubscribeChanges()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Failed to unmarshal change event: %v", err)
				continue
			}
			h.eventCh <- ev
		}
	}()
}

// Package realtime fans database change events out to subscribed WebSocket
// clients. Events originate in the storage layer, travel over Redis Pub/Sub
// so every server instance sees them, and reach each client whose
// subscription matches.
package realtime

import (
	"log"

	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/storage"
)

// Hub owns the set of connected realtime clients.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	Storage *storage.Service

	eventCh chan models.ChangeEvent
}

func NewHub(s *storage.Service) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Storage:      s,
		eventCh:      make(chan models.ChangeEvent, 64),
	}
}

// Run is the hub's main loop. It serializes all access to the client map,
// so no locking is needed anywhere else.
func (h *Hub) Run() {
	h.StartPubSubListener()

	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client.GetSessionID()] = client
			log.Printf("INFO: Realtime client %s connected (%d total)",
				client.GetSessionID(), len(h.Clients))

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client.GetSessionID()]; ok {
				delete(h.Clients, client.GetSessionID())
				client.Close()
				log.Printf("INFO: Realtime client %s disconnected (%d total)",
					client.GetSessionID(), len(h.Clients))
			}

		case ev := <-h.eventCh:
			h.broadcast(ev)
		}
	}
}

// Broadcast hands an event to the hub loop. Exposed for tests and for
// in-process publishers.
func (h *Hub) Broadcast(ev models.ChangeEvent) {
	h.eventCh <- ev
}

// broadcast delivers the event to every client whose subscription matches.
// A client whose send buffer is full is dropped rather than allowed to
// stall the loop.
func (h *Hub) broadcast(ev models.ChangeEvent) {
	for id, client := range h.Clients {
		if !client.GetSubscription().Matches(ev) {
			continue
		}
		select {
		case client.GetSendChannel() <- ev:
		default:
			log.Printf("WARN: Realtime client %s is not keeping up, dropping", id)
			delete(h.Clients, id)
			client.Close()
		}
	}
}

package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"nagarrakshak/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// subscribeFrame is the only inbound message a client may send:
// {"subscribe": {"table": "complaints", "complaint_code": "NGR123456"}}
type subscribeFrame struct {
	Subscribe *models.Subscription `json:"subscribe"`
}

// WebSocketClient implements the realtime.Client interface over a
// gorilla/websocket connection.
type WebSocketClient struct {
	SessionID string
	Conn      *websocket.Conn
	Hub       *Hub
	Send      chan models.ChangeEvent

	mu  sync.RWMutex
	sub models.Subscription
}

func NewWebSocketClient(sessionID string, conn *websocket.Conn, hub *Hub) *WebSocketClient {
	return &WebSocketClient{
		SessionID: sessionID,
		Conn:      conn,
		Hub:       hub,
		Send:      make(chan models.ChangeEvent, 16),
	}
}

func (c *WebSocketClient) GetSessionID() string { return c.SessionID }

func (c *WebSocketClient) GetSendChannel() chan<- models.ChangeEvent { return c.Send }

func (c *WebSocketClient) GetSubscription() models.Subscription {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sub
}

func (c *WebSocketClient) SetSubscription(sub models.Subscription) {
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
}

// Run starts the pumps for the WebSocket connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the writePump.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump consumes subscribe frames until the connection drops.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var frame subscribeFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			log.Printf("Error decoding JSON from client %s: %v", c.SessionID, err)
			continue
		}
		if frame.Subscribe == nil {
			continue
		}
		c.SetSubscription(*frame.Subscribe)
		log.Printf("INFO: Client %s subscribed to table=%q code=%q",
			c.SessionID, frame.Subscribe.Table, frame.Subscribe.ComplaintCode)
	}
}

// writePump drains the Send channel into the WebSocket, batching whatever
// has accumulated, and keeps the connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.SessionID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Flush anything else already queued.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				extra, _ := json.Marshal(next)
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

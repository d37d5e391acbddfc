package handler

import (
	"net/http"

	"nagarrakshak/backend/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checking is delegated to the CORS layer in front of the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and registers it with the realtime
// hub. The client then sends a subscribe frame to pick what it receives.
// Tracking pages connect anonymously; a token is accepted but not required.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	sessionID := uuid.New().String()
	if tokenString := bearerToken(c); tokenString != "" {
		if claims, err := h.Auth.ParseToken(tokenString); err == nil {
			sessionID = claims.Subject + ":" + sessionID
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := realtime.NewWebSocketClient(sessionID, conn, h.Hub)
	h.Hub.RegisterCh <- client
	client.Run()
}

package handler

import (
	"errors"
	"net/http"

	"nagarrakshak/backend/internal/flow"

	"github.com/gin-gonic/gin"
)

// GetScreen returns the session's current screen, starting fresh sessions
// at the splash screen.
func (h *Handler) GetScreen(c *gin.Context) {
	screen, err := h.Storage.GetScreen(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session"})
		return
	}
	if screen == "" {
		screen = flow.InitialScreen
	}
	c.JSON(http.StatusOK, gin.H{"screen": screen})
}

// Navigate applies a navigation event to the session's screen state machine.
func (h *Handler) Navigate(c *gin.Context) {
	var req struct {
		Event string `json:"event"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sessionID := c.Param("id")
	current, err := h.Storage.GetScreen(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session"})
		return
	}
	if current == "" {
		current = flow.InitialScreen
	}

	next, err := flow.Next(current, req.Event)
	if errors.Is(err, flow.ErrBadNavigation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "screen": current})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Navigation failed"})
		return
	}

	if err := h.Storage.SetScreen(sessionID, next); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"screen": next})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListHelplines returns the helpline directory, optionally filtered by the
// q query parameter.
func (h *Handler) ListHelplines(c *gin.Context) {
	categories := h.Helplines.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

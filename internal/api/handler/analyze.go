package handler

import (
	"errors"
	"net/http"

	"nagarrakshak/backend/internal/analysis"

	"github.com/gin-gonic/gin"
)

// AnalyzeMedia runs the vision model against a media URL on demand, for
// admins re-assessing a complaint's attachment. The response shape mirrors
// the submit-time analysis: either a description or an error, with a
// success flag.
func (h *Handler) AnalyzeMedia(c *gin.Context) {
	var req struct {
		MediaURL  string `json:"media_url"`
		IssueType string `json:"issue_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "success": false})
		return
	}
	if req.MediaURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media_url is required", "success": false})
		return
	}

	description, err := h.Analyzer.AnalyzeMediaContext(c.Request.Context(), req.MediaURL, req.IssueType)
	if errors.Is(err, analysis.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media analysis is not configured", "success": false})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": description, "success": true})
}

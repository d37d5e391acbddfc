package handler

import (
	"errors"
	"net/http"

	"nagarrakshak/backend/internal/complaint"
	"nagarrakshak/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// SubmitComplaint registers a new complaint and returns its tracking code.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	var in complaint.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if userID, ok := c.Get(ctxUserID); ok {
		in.UserID = userID.(string)
	}

	created, err := h.Complaints.Submit(in)
	if errors.Is(err, complaint.ErrMissingFields) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register complaint"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"complaint":      created,
		"complaint_code": created.ComplaintCode,
	})
}

// TrackComplaint resolves a tracking code to the complaint, its authority
// and the reconstructed timeline.
func (h *Handler) TrackComplaint(c *gin.Context) {
	result, err := h.Complaints.Track(c.Param("code"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up complaint"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetFeedback returns the feedback left on a complaint.
func (h *Handler) GetFeedback(c *gin.Context) {
	found, err := h.Storage.GetComplaintByCode(c.Param("code"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up complaint"})
		return
	}

	list, err := h.Storage.GetFeedbackForComplaint(found.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": list})
}

// SubmitFeedback records a citizen's rating for their complaint.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	f, err := h.Complaints.SaveFeedback(c.Param("code"), req.Rating, req.Review)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": f})
}

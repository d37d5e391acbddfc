package handler

import (
	"errors"
	"net/http"
	"time"

	"nagarrakshak/backend/internal/analytics"
	"nagarrakshak/backend/internal/complaint"
	"nagarrakshak/backend/internal/config"
	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// filterFromQuery reads the admin listing filters off the query string.
// Dates are inclusive calendar days in the "2006-01-02" form.
func filterFromQuery(c *gin.Context) (analytics.Filter, error) {
	f := analytics.Filter{
		Search:    c.Query("search"),
		IssueType: c.Query("issue_type"),
		Area:      c.Query("area"),
		Status:    models.ComplaintStatus(c.Query("status")),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, err
		}
		f.DateFrom = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &end
	}
	return f, nil
}

// filteredComplaints fetches the full set, attaches reporter names and
// applies the request's filter.
func (h *Handler) filteredComplaints(c *gin.Context) ([]models.Complaint, bool) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date filter, expected YYYY-MM-DD"})
		return nil, false
	}

	list, err := h.Storage.ListComplaints()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list complaints"})
		return nil, false
	}
	h.attachReporterNames(list)
	return analytics.Apply(list, f), true
}

// attachReporterNames resolves UserID -> profile full name, caching per
// request since one citizen often files several complaints.
func (h *Handler) attachReporterNames(list []models.Complaint) {
	names := make(map[string]string)
	for i := range list {
		if list[i].UserID == nil {
			continue
		}
		id := *list[i].UserID
		if _, ok := names[id]; !ok {
			names[id] = ""
			if p, err := h.Storage.GetProfileByID(id); err == nil {
				names[id] = p.FullName
			}
		}
		list[i].ReporterName = names[id]
	}
}

// ListComplaints is the admin listing with filtering.
func (h *Handler) ListComplaints(c *gin.Context) {
	list, ok := h.filteredComplaints(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": list, "total": len(list)})
}

// UpdateComplaintStatus performs a triage action on a complaint.
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	var in complaint.UpdateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	upd, err := h.Complaints.UpdateStatus(c.Param("id"), in)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
	case errors.Is(err, complaint.ErrBadTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
	default:
		c.JSON(http.StatusOK, gin.H{"status_update": upd})
	}
}

// AnalyticsSummary returns the dashboard's headline counters.
func (h *Handler) AnalyticsSummary(c *gin.Context) {
	list, ok := h.filteredComplaints(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.ComputeStats(list))
}

// AnalyticsByType returns the issue-type distribution.
func (h *Handler) AnalyticsByType(c *gin.Context) {
	list, ok := h.filteredComplaints(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"by_type": analytics.CountByType(list)})
}

// AnalyticsByArea returns the per-area distribution for the bar chart.
func (h *Handler) AnalyticsByArea(c *gin.Context) {
	list, ok := h.filteredComplaints(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"by_area": analytics.CountByArea(list, config.AreaChartLimit)})
}

// AnalyticsTopAreas returns the most affected areas list.
func (h *Handler) AnalyticsTopAreas(c *gin.Context) {
	list, ok := h.filteredComplaints(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"top_areas": analytics.TopAreas(list)})
}

// AnalyticsCrossTab returns the area-by-issue-type breakdown.
func (h *Handler) AnalyticsCrossTab(c *gin.Context) {
	list, ok := h.filteredComplaints(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cross_tab": analytics.CrossTab(list)})
}

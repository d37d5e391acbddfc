// Package handler wires the HTTP surface: citizen endpoints, the admin
// console API and the realtime WebSocket entry point.
package handler

import (
	"nagarrakshak/backend/internal/analysis"
	"nagarrakshak/backend/internal/auth"
	"nagarrakshak/backend/internal/complaint"
	"nagarrakshak/backend/internal/helpline"
	"nagarrakshak/backend/internal/otp"
	"nagarrakshak/backend/internal/realtime"
	"nagarrakshak/backend/internal/routing"
	"nagarrakshak/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Storage    storage.Storage
	Complaints *complaint.Service
	OTP        *otp.Service
	Auth       *auth.Service
	Analyzer   *analysis.Analyzer
	Helplines  *helpline.Directory
	Hub        *realtime.Hub
}

func NewHandler(
	s storage.Storage,
	complaints *complaint.Service,
	otpSvc *otp.Service,
	authSvc *auth.Service,
	analyzer *analysis.Analyzer,
	helplines *helpline.Directory,
	hub *realtime.Hub,
) *Handler {
	return &Handler{
		Storage:    s,
		Complaints: complaints,
		OTP:        otpSvc,
		Auth:       authSvc,
		Analyzer:   analyzer,
		Helplines:  helplines,
		Hub:        hub,
	}
}

// RegisterRoutes mounts every endpoint on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/auth/otp/send", h.SendOTP)
		api.POST("/auth/otp/verify", h.VerifyOTP)
		api.POST("/auth/login", h.CitizenLogin)
		api.POST("/auth/signup", h.CitizenSignup)
		api.POST("/auth/admin/login", h.AdminLogin)

		api.GET("/issue-types", h.ListIssueTypes)
		api.POST("/complaints", h.OptionalAuth(), h.SubmitComplaint)
		api.GET("/complaints/:code", h.TrackComplaint)
		api.POST("/complaints/:code/feedback", h.SubmitFeedback)
		api.GET("/complaints/:code/feedback", h.GetFeedback)

		api.GET("/helplines", h.ListHelplines)

		api.GET("/session/:id/screen", h.GetScreen)
		api.POST("/session/:id/navigate", h.Navigate)

		admin := api.Group("/admin", h.RequireAuth(), h.RequireAdmin())
		{
			admin.GET("/complaints", h.ListComplaints)
			admin.PATCH("/complaints/:id/status", h.UpdateComplaintStatus)

			admin.GET("/analytics/summary", h.AnalyticsSummary)
			admin.GET("/analytics/by-type", h.AnalyticsByType)
			admin.GET("/analytics/by-area", h.AnalyticsByArea)
			admin.GET("/analytics/top-areas", h.AnalyticsTopAreas)
			admin.GET("/analytics/cross-tab", h.AnalyticsCrossTab)

			admin.POST("/analyze-media", h.AnalyzeMedia)
		}
	}

	r.GET("/ws", h.ServeWebSocket)
}

// ListIssueTypes returns the issue enumeration the complaint form renders.
func (h *Handler) ListIssueTypes(c *gin.Context) {
	type entry struct {
		Slug      string `json:"slug"`
		Label     string `json:"label"`
		Category  string `json:"category"`
		Authority string `json:"authority"`
	}
	out := make([]entry, 0, len(routing.IssueTypes))
	for _, it := range routing.IssueTypes {
		out = append(out, entry{Slug: it.Slug, Label: it.Label, Category: it.Category, Authority: it.Authority})
	}
	c.JSON(200, gin.H{"issue_types": out})
}

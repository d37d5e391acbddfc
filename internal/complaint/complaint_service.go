// Package complaint provides the core logic for the complaint lifecycle:
// registration with tracking codes, authority routing, worker assignment,
// status transitions and the citizen-facing tracking view.
package complaint

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"nagarrakshak/backend/internal/config"
	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/routing"
	"nagarrakshak/backend/internal/storage"
)

var (
	// ErrMissingFields is returned when a submission lacks a required field.
	ErrMissingFields = errors.New("issue type, description, state and city are required")
	// ErrCodeExhausted is returned when code generation keeps colliding.
	ErrCodeExhausted = errors.New("could not generate a unique complaint code")
	// ErrBadTransition is returned for a status move that would rewind the
	// lifecycle or target an unknown status.
	ErrBadTransition = errors.New("invalid status transition")
)

// codeTries bounds collision retries during code generation. Six random
// digits give a million codes; five tries is plenty below saturation.
const codeTries = 5

// Analyzer assesses submitted media and produces a short severity
// description. Implemented by the analysis package.
type Analyzer interface {
	AnalyzeMedia(mediaURL, issueType string) (string, error)
}

// Notifier pushes human-readable alerts about complaint activity.
// Implemented by the notify package.
type Notifier interface {
	ComplaintRegistered(c *models.Complaint)
	StatusChanged(c *models.Complaint, upd *models.StatusUpdate)
}

// Service handles the business logic for complaints.
type Service struct {
	Storage  storage.Storage
	Analyzer Analyzer // optional; nil disables media analysis on submit
	Notifier Notifier // optional; nil disables alerts
}

// NewService creates a new complaint service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// SubmitInput carries everything the complaint form collects.
type SubmitInput struct {
	IssueType    string   `json:"issue_type"`
	Description  string   `json:"description"`
	State        string   `json:"state"`
	City         string   `json:"city"`
	AddressLine1 string   `json:"address_line1"`
	AddressLine2 string   `json:"address_line2"`
	GpsLatitude  *float64 `json:"gps_latitude"`
	GpsLongitude *float64 `json:"gps_longitude"`
	MediaURL     string   `json:"media_url"`
	VoiceNoteURL string   `json:"voice_note_url"`
	Priority     string   `json:"priority"`
	UserID       string   `json:"-"`
}

// Submit registers a complaint: assigns a tracking code, routes it to the
// responsible authority, picks an available worker for that department when
// one exists, and records the initial Registered log entry.
func (s *Service) Submit(in SubmitInput) (*models.Complaint, error) {
	if strings.TrimSpace(in.IssueType) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.State) == "" ||
		strings.TrimSpace(in.City) == "" {
		return nil, ErrMissingFields
	}

	code, err := s.GenerateComplaintCode()
	if err != nil {
		return nil, err
	}

	c := &models.Complaint{
		ComplaintCode: code,
		IssueType:     in.IssueType,
		Description:   in.Description,
		Status:        models.StatusRegistered,
		Priority:      in.Priority,
		State:         in.State,
		City:          in.City,
		AddressLine1:  in.AddressLine1,
		AddressLine2:  in.AddressLine2,
		GpsLatitude:   in.GpsLatitude,
		GpsLongitude:  in.GpsLongitude,
		MediaURL:      in.MediaURL,
		VoiceNoteURL:  in.VoiceNoteURL,
	}
	if in.UserID != "" {
		c.UserID = &in.UserID
	}

	authority := routing.AuthorityFor(in.IssueType)
	worker, err := s.Storage.PickWorkerForDepartment(authority)
	switch {
	case err == nil:
		c.AssignedTo = worker.FullName
	case errors.Is(err, storage.ErrNotFound):
		// No worker available yet; the admin assigns one during triage.
	default:
		log.Printf("WARN: Worker auto-assignment failed for %s: %v", authority, err)
	}

	if s.Analyzer != nil && c.MediaURL != "" {
		severity, err := s.Analyzer.AnalyzeMedia(c.MediaURL, c.IssueType)
		if err != nil {
			// Analysis is best-effort on submit; the complaint goes through.
			log.Printf("WARN: Media analysis failed for %s: %v", code, err)
		} else {
			c.SeverityDescription = severity
		}
	}

	initial := &models.StatusUpdate{
		Status: models.StatusRegistered,
		Note:   "Complaint registered and forwarded to " + authority,
	}
	if err := s.Storage.CreateComplaint(c, initial); err != nil {
		return nil, err
	}
	log.Printf("INFO: Complaint %s registered (%s, %s)", code, c.IssueType, c.City)

	if s.Notifier != nil {
		s.Notifier.ComplaintRegistered(c)
	}
	return c, nil
}

// GenerateComplaintCode produces an unused code of the form NGR + 6 digits.
func (s *Service) GenerateComplaintCode() (string, error) {
	for i := 0; i < codeTries; i++ {
		code := fmt.Sprintf("%s%d", config.ComplaintCodePrefix, 100000+rand.IntN(900000))
		exists, err := s.Storage.ComplaintCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

// TrackResult is the citizen-facing tracking view of a complaint.
type TrackResult struct {
	Complaint *models.Complaint     `json:"complaint"`
	Authority string                `json:"authority"`
	Timeline  []TimelineStep        `json:"timeline"`
	Updates   []models.StatusUpdate `json:"updates"`
}

// Track resolves a tracking code to the complaint, its responsible
// authority and the reconstructed four-stage timeline.
func (s *Service) Track(code string) (*TrackResult, error) {
	c, err := s.Storage.GetComplaintByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	updates, err := s.Storage.GetStatusUpdates(c.ID)
	if err != nil {
		return nil, err
	}
	return &TrackResult{
		Complaint: c,
		Authority: routing.AuthorityFor(c.IssueType),
		Timeline:  BuildTimeline(c.Status, updates),
		Updates:   updates,
	}, nil
}

// CanTransition reports whether a complaint may move from one status to
// another. The lifecycle only moves forward; re-logging the current status
// (e.g. a fresh note from the field) is allowed.
func CanTransition(from, to models.ComplaintStatus) bool {
	toRank := to.Rank()
	if toRank < 0 || to == models.StatusPending {
		return false
	}
	return toRank >= from.Rank()
}

// UpdateStatusInput is an admin's triage action on a complaint.
type UpdateStatusInput struct {
	Status          models.ComplaintStatus `json:"status"`
	AssignedTo      string                 `json:"assigned_to"`
	AssignedContact string                 `json:"assigned_contact"`
	Note            string                 `json:"note"`
}

// UpdateStatus validates the transition and appends it to the complaint's
// log, moving the complaint's stored status along with it.
func (s *Service) UpdateStatus(complaintID string, in UpdateStatusInput) (*models.StatusUpdate, error) {
	c, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(c.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, c.Status, in.Status)
	}

	upd := &models.StatusUpdate{
		Status:          in.Status,
		AssignedTo:      in.AssignedTo,
		AssignedContact: in.AssignedContact,
		Note:            in.Note,
	}
	if err := s.Storage.TransitionComplaint(c.ID, upd); err != nil {
		return nil, err
	}
	log.Printf("INFO: Complaint %s moved to %s", c.ComplaintCode, in.Status)

	if s.Notifier != nil {
		c.Status = in.Status
		s.Notifier.StatusChanged(c, upd)
	}
	return upd, nil
}

// SaveFeedback records a citizen's rating for a resolved complaint.
func (s *Service) SaveFeedback(code string, rating int, review string) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	c, err := s.Storage.GetComplaintByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	f := &models.Feedback{
		ComplaintID: c.ID,
		Rating:      rating,
		Review:      review,
	}
	if err := s.Storage.SaveFeedback(f); err != nil {
		return nil, err
	}
	return f, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintStatus is the lifecycle state of a complaint.
type ComplaintStatus string

const (
	StatusRegistered ComplaintStatus = "Registered"
	StatusAssigned   ComplaintStatus = "Assigned"
	StatusInProgress ComplaintStatus = "In-Progress"
	StatusResolved   ComplaintStatus = "Resolved"
	// StatusPending exists in legacy rows; it is treated as Registered
	// everywhere ranks are compared.
	StatusPending ComplaintStatus = "Pending"
)

// StageOrder is the canonical 4-stage progression shown to citizens.
var StageOrder = []ComplaintStatus{
	StatusRegistered,
	StatusAssigned,
	StatusInProgress,
	StatusResolved,
}

// Rank returns the index of the status within StageOrder.
// Pending maps to the Registered rank; unknown statuses rank below Registered.
func (s ComplaintStatus) Rank() int {
	if s == StatusPending {
		return 0
	}
	for i, stage := range StageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// Complaint represents a citizen-submitted civic issue report.
type Complaint struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// ComplaintCode is the human-readable tracking code, e.g. "NGR123456".
	ComplaintCode string          `gorm:"uniqueIndex;not null" json:"complaint_code"`
	IssueType     string          `gorm:"index" json:"issue_type"`
	Description   string          `gorm:"type:text" json:"description"`
	Status        ComplaintStatus `gorm:"type:text;index;default:Registered" json:"status"`
	Priority      string          `json:"priority"`

	State        string   `json:"state"`
	City         string   `gorm:"index" json:"city"`
	AddressLine1 string   `json:"address_line1"`
	AddressLine2 string   `json:"address_line2"`
	GpsLatitude  *float64 `json:"gps_latitude"`
	GpsLongitude *float64 `json:"gps_longitude"`

	MediaURL     string `json:"media_url"`
	VoiceNoteURL string `json:"voice_note_url"`
	// SeverityDescription is the short assessment produced by the media
	// analyzer when the submission carried a photo or video.
	SeverityDescription string `gorm:"type:text" json:"severity_description"`

	AssignedTo string  `json:"assigned_to"`
	UserID     *string `gorm:"type:uuid" json:"user_id"`
	// ReporterName is filled from the reporter's profile for admin views.
	// Not a column.
	ReporterName string `gorm:"-" json:"reporter_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StatusUpdates []StatusUpdate `gorm:"foreignKey:ComplaintID" json:"status_updates,omitempty"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusRegistered
	}
	return
}

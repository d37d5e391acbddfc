package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusUpdate is one append-only entry in a complaint's lifecycle log.
// Rows are inserted when an administrator moves a complaint between stages
// and are never mutated afterwards; the citizen-facing timeline is rebuilt
// from these rows on every fetch.
type StatusUpdate struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	ComplaintID string          `gorm:"type:uuid;not null;index" json:"complaint_id"`
	Status      ComplaintStatus `gorm:"type:text;not null" json:"status"`
	// AssignedTo / AssignedContact identify the field worker handling the
	// complaint at the moment of the transition.
	AssignedTo      string    `json:"assigned_to"`
	AssignedContact string    `json:"assigned_contact"`
	Note            string    `gorm:"type:text" json:"note"`
	CreatedAt       time.Time `json:"created_at"`
}

func (u *StatusUpdate) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// TableName keeps the original wire-contract table name.
func (StatusUpdate) TableName() string {
	return "complaint_status_updates"
}

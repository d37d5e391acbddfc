package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is a citizen rating left on a resolved complaint.
type Feedback struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ComplaintID string    `gorm:"type:uuid;not null;index" json:"complaint_id"`
	Rating      int       `json:"rating"` // 1..5
	Review      string    `gorm:"type:text" json:"review"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}

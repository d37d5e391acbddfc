package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// WorkerStatus mirrors the worker_status enum.
type WorkerStatus string

const (
	WorkerAvailable WorkerStatus = "available"
	WorkerBusy      WorkerStatus = "busy"
	WorkerOffline   WorkerStatus = "offline"
)

// Worker is a field worker eligible for complaint auto-assignment.
type Worker struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// Departments lists the civic authority departments the worker serves.
	Departments pq.StringArray `gorm:"type:text[]" json:"departments"`
	Status      WorkerStatus   `gorm:"type:text;default:available" json:"status"`
	FullName    string         `json:"full_name"`
	Contact     string         `json:"contact"`
	UserID      *string        `gorm:"type:uuid" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Worker) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}

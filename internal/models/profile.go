package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role of an account within the portal.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
	RoleWorker  Role = "worker"
)

// Profile is a portal account. Citizens are provisioned automatically on
// first OTP verification; the generated credentials can later be used for
// username/password login.
type Profile struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Role     Role   `gorm:"type:text;default:citizen" json:"role"`
	Username string `gorm:"uniqueIndex" json:"username"`
	FullName string `json:"full_name"`
	// PhoneNumber is stored normalized: digits only.
	PhoneNumber  string `gorm:"uniqueIndex" json:"phone_number"`
	PasswordHash string `json:"-"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is a back-office credential, kept in a separate table from citizen
// profiles and checked by its own login path.
type Admin struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	// Password holds a bcrypt hash, never plaintext.
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:text;default:admin" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

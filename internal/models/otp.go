package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpVerification is one issued login/signup code for a phone number.
// A row is consumed (IsVerified set) on a successful check and otherwise
// left to expire.
type OtpVerification struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// PhoneNumber is stored normalized: digits only.
	PhoneNumber string    `gorm:"not null;index" json:"phone_number"`
	OtpCode     string    `gorm:"not null" json:"otp_code"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	IsVerified  bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

func (o *OtpVerification) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (OtpVerification) TableName() string {
	return "otp_verifications"
}

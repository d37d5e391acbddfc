// Package otp gates phone-based login and signup behind a one-time code.
// Codes are persisted with a short expiry and surfaced directly to the
// caller; dispatching them over SMS is a deliberate non-goal of the demo.
package otp

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"nagarrakshak/backend/internal/config"
	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/storage"
)

// ErrInvalidOTP is the single rejection returned for every failed
// verification: no matching record, expired record, or already-used record.
// The caller cannot tell which, on purpose.
var ErrInvalidOTP = errors.New("invalid or expired OTP")

// ErrEmptyPhone is returned when the phone number contains no digits.
var ErrEmptyPhone = errors.New("phone number is required")

// Service issues and verifies one-time codes.
type Service struct {
	Storage storage.Storage
	// TestMode enables the demo bypass pair from config. Must stay off in
	// any production deployment.
	TestMode bool
}

func NewService(s storage.Storage, testMode bool) *Service {
	return &Service{Storage: s, TestMode: testMode}
}

// NormalizePhone strips every non-digit character. OTP rows and profile
// phone numbers are keyed by the normalized form.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Issue generates a 6-digit code for the phone number and persists it with
// a 5-minute expiry. The record is returned so the transport layer can show
// the code to the user.
func (s *Service) Issue(phone string) (*models.OtpVerification, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, ErrEmptyPhone
	}

	otp := &models.OtpVerification{
		PhoneNumber: normalized,
		OtpCode:     generateCode(),
		ExpiresAt:   time.Now().Add(config.OtpTTL),
	}
	if err := s.Storage.SaveOTP(otp); err != nil {
		log.Printf("ERROR: Failed to save OTP for %s: %v", normalized, err)
		return nil, err
	}
	return otp, nil
}

// Verify accepts the code only when a matching, unexpired, not-yet-verified
// record exists, and marks it verified so it can never be used again.
// It returns the normalized phone number on success.
func (s *Service) Verify(phone, code string) (string, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" || code == "" {
		return "", ErrInvalidOTP
	}

	if s.TestMode && normalized == config.TestBypassPhone && code == config.TestBypassCode {
		log.Printf("WARN: OTP test bypass used for %s", normalized)
		return normalized, nil
	}

	record, err := s.Storage.FindActiveOTP(normalized, code, time.Now())
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrInvalidOTP
	}
	if err != nil {
		log.Printf("ERROR: Failed to look up OTP for %s: %v", normalized, err)
		return "", err
	}

	if err := s.Storage.MarkOTPVerified(record.ID); err != nil {
		log.Printf("ERROR: Failed to mark OTP %s verified: %v", record.ID, err)
		return "", err
	}
	return normalized, nil
}

// generateCode returns a 6-digit numeric code. The range starts at 100000 so
// the code never needs zero padding.
func generateCode() string {
	return fmt.Sprintf("%d", 100000+rand.IntN(900000))
}

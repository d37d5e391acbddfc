package storage

import (
	"errors"
	"log"
	"time"

	"nagarrakshak/backend/internal/models"

	"gorm.io/gorm"
)

// CreateComplaint inserts a complaint together with its initial status-update
// row in one transaction, then publishes a change event.
func (s *Service) CreateComplaint(c *models.Complaint, initial *models.StatusUpdate) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if initial != nil {
			initial.ComplaintID = c.ID
			if err := tx.Create(initial).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR: Failed to save complaint %s: %v", c.ComplaintCode, err)
		return err
	}

	if err := s.PublishChange(models.ChangeEvent{
		Table:         "complaints",
		Action:        "INSERT",
		RowID:         c.ID,
		ComplaintCode: c.ComplaintCode,
		Payload:       c,
	}); err != nil {
		// The row is committed; a lost event only delays subscribers
		// until their next full fetch.
		log.Printf("WARN: Failed to publish complaint event for %s: %v", c.ComplaintCode, err)
	}
	return nil
}

func (s *Service) GetComplaintByCode(code string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.Where("complaint_code = ?", code).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint %s: %v", code, err)
		return nil, err
	}
	return &c, nil
}

func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComplaints returns every complaint, newest first. The admin views
// filter and aggregate the full set client-side.
func (s *Service) ListComplaints() ([]models.Complaint, error) {
	var list []models.Complaint
	if err := s.DB.Order("created_at desc").Find(&list).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return list, nil
}

func (s *Service) ComplaintCodeExists(code string) (bool, error) {
	var n int64
	if err := s.DB.Model(&models.Complaint{}).
		Where("complaint_code = ?", code).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// TransitionComplaint appends a status-update row and moves the complaint to
// the new status in one transaction, keeping the stored status equal to the
// most recent log entry. Publishes events for both tables.
func (s *Service) TransitionComplaint(complaintID string, upd *models.StatusUpdate) error {
	var c models.Complaint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", complaintID).First(&c).Error; err != nil {
			return err
		}
		upd.ComplaintID = complaintID
		if err := tx.Create(upd).Error; err != nil {
			return err
		}
		patch := map[string]interface{}{"status": upd.Status}
		if upd.AssignedTo != "" {
			patch["assigned_to"] = upd.AssignedTo
		}
		return tx.Model(&models.Complaint{}).
			Where("id = ?", complaintID).Updates(patch).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to transition complaint %s to %s: %v", complaintID, upd.Status, err)
		return err
	}

	for _, ev := range []models.ChangeEvent{
		{Table: "complaint_status_updates", Action: "INSERT", RowID: upd.ID,
			ComplaintCode: c.ComplaintCode, Payload: upd},
		{Table: "complaints", Action: "UPDATE", RowID: complaintID,
			ComplaintCode: c.ComplaintCode},
	} {
		if err := s.PublishChange(ev); err != nil {
			log.Printf("WARN: Failed to publish %s event: %v", ev.Table, err)
		}
	}
	return nil
}

// GetStatusUpdates returns a complaint's log ordered oldest first, which is
// the order the timeline reconstruction expects.
func (s *Service) GetStatusUpdates(complaintID string) ([]models.StatusUpdate, error) {
	var updates []models.StatusUpdate
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("created_at asc").Find(&updates).Error
	if err != nil {
		log.Printf("ERROR: Failed to get status updates for %s: %v", complaintID, err)
		return nil, err
	}
	return updates, nil
}

func (s *Service) SaveOTP(otp *models.OtpVerification) error {
	return s.DB.Create(otp).Error
}

// FindActiveOTP returns the matching unexpired, unverified OTP row, or
// ErrNotFound. Expired, already-verified and absent rows are deliberately
// indistinguishable to the caller.
func (s *Service) FindActiveOTP(phone, code string, now time.Time) (*models.OtpVerification, error) {
	var otp models.OtpVerification
	err := s.DB.Where("phone_number = ?", phone).
		Where("otp_code = ?", code).
		Where("expires_at > ?", now).
		Where("is_verified = ?", false).
		Order("created_at desc").
		First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (s *Service) MarkOTPVerified(id string) error {
	return s.DB.Model(&models.OtpVerification{}).
		Where("id = ?", id).Update("is_verified", true).Error
}

// DeleteExpiredOTPs removes stale rows; nothing in the login flow ever reads
// them again. Run from the ops CLI.
func (s *Service) DeleteExpiredOTPs(before time.Time) (int64, error) {
	res := s.DB.Where("expires_at < ?", before).Delete(&models.OtpVerification{})
	return res.RowsAffected, res.Error
}

func (s *Service) GetProfileByPhone(phone string) (*models.Profile, error) {
	var p models.Profile
	err := s.DB.Where("phone_number = ?", phone).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetProfileByID(id string) (*models.Profile, error) {
	var p models.Profile
	err := s.DB.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetProfileByUsername(username string) (*models.Profile, error) {
	var p models.Profile
	err := s.DB.Where("username = ?", username).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) CreateProfile(p *models.Profile) error {
	if err := s.DB.Create(p).Error; err != nil {
		log.Printf("ERROR: Failed to create profile %s: %v", p.Username, err)
		return err
	}
	return nil
}

func (s *Service) UsernameExists(username string) (bool, error) {
	var n int64
	if err := s.DB.Model(&models.Profile{}).
		Where("username = ?", username).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Service) GetAdminByUsername(username string) (*models.Admin, error) {
	var a models.Admin
	err := s.DB.Where("username = ? AND is_active = ?", username, true).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) CreateAdmin(a *models.Admin) error {
	return s.DB.Create(a).Error
}

func (s *Service) CreateWorker(w *models.Worker) error {
	return s.DB.Create(w).Error
}

// PickWorkerForDepartment picks the available worker for a department who was
// assigned least recently, and touches updated_at so assignment rotates.
func (s *Service) PickWorkerForDepartment(department string) (*models.Worker, error) {
	var w models.Worker
	err := s.DB.Where("status = ?", models.WorkerAvailable).
		Where("? = ANY(departments)", department).
		Order("updated_at asc").
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to pick worker for %s: %v", department, err)
		return nil, err
	}

	if err := s.DB.Model(&w).Update("updated_at", time.Now()).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Service) SaveFeedback(f *models.Feedback) error {
	if err := s.DB.Create(f).Error; err != nil {
		log.Printf("ERROR: Failed to save feedback for complaint %s: %v", f.ComplaintID, err)
		return err
	}
	return nil
}

func (s *Service) GetFeedbackForComplaint(complaintID string) ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("created_at asc").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

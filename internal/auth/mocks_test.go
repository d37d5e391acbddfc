package auth_test

import (
	"time"

	"nagarrakshak/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateComplaint(c *models.Complaint, initial *models.StatusUpdate) error {
	args := m.Called(c, initial)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByCode(code string) (*models.Complaint, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaints() ([]models.Complaint, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) ComplaintCodeExists(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) TransitionComplaint(complaintID string, upd *models.StatusUpdate) error {
	args := m.Called(complaintID, upd)
	return args.Error(0)
}

func (m *MockStorage) GetStatusUpdates(complaintID string) ([]models.StatusUpdate, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatusUpdate), args.Error(1)
}

func (m *MockStorage) SaveOTP(otp *models.OtpVerification) error {
	args := m.Called(otp)
	return args.Error(0)
}

func (m *MockStorage) FindActiveOTP(phone, code string, now time.Time) (*models.OtpVerification, error) {
	args := m.Called(phone, code, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OtpVerification), args.Error(1)
}

func (m *MockStorage) MarkOTPVerified(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) DeleteExpiredOTPs(before time.Time) (int64, error) {
	args := m.Called(before)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetProfileByPhone(phone string) (*models.Profile, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockStorage) GetProfileByID(id string) (*models.Profile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockStorage) GetProfileByUsername(username string) (*models.Profile, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockStorage) CreateProfile(p *models.Profile) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStorage) UsernameExists(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) GetAdminByUsername(username string) (*models.Admin, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockStorage) CreateAdmin(a *models.Admin) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockStorage) CreateWorker(w *models.Worker) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *MockStorage) PickWorkerForDepartment(department string) (*models.Worker, error) {
	args := m.Called(department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Worker), args.Error(1)
}

func (m *MockStorage) SaveFeedback(f *models.Feedback) error {
	args := m.Called(f)
	return args.Error(0)
}

func (m *MockStorage) GetFeedbackForComplaint(complaintID string) ([]models.Feedback, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Feedback), args.Error(1)
}

func (m *MockStorage) PublishChange(ev models.ChangeEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}

func (m *MockStorage) GetScreen(sessionID string) (string, error) {
	args := m.Called(sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) SetScreen(sessionID, screen string) error {
	args := m.Called(sessionID, screen)
	return args.Error(0)
}

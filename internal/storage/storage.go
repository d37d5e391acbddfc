package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"nagarrakshak/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("record not found")

// EventChannelPrefix is the Redis Pub/Sub namespace for change events.
// Events for table T are published to "events:T".
const EventChannelPrefix = "events:"

type Storage interface {
	// Complaints
	CreateComplaint(c *models.Complaint, initial *models.StatusUpdate) error
	GetComplaintByCode(code string) (*models.Complaint, error)
	GetComplaintByID(id string) (*models.Complaint, error)
	ListComplaints() ([]models.Complaint, error)
	ComplaintCodeExists(code string) (bool, error)
	TransitionComplaint(complaintID string, upd *models.StatusUpdate) error
	GetStatusUpdates(complaintID string) ([]models.StatusUpdate, error)

	// OTP
	SaveOTP(otp *models.OtpVerification) error
	FindActiveOTP(phone, code string, now time.Time) (*models.OtpVerification, error)
	MarkOTPVerified(id string) error
	DeleteExpiredOTPs(before time.Time) (int64, error)

	// Accounts
	GetProfileByPhone(phone string) (*models.Profile, error)
	GetProfileByID(id string) (*models.Profile, error)
	GetProfileByUsername(username string) (*models.Profile, error)
	CreateProfile(p *models.Profile) error
	UsernameExists(username string) (bool, error)
	GetAdminByUsername(username string) (*models.Admin, error)
	CreateAdmin(a *models.Admin) error

	// Workers
	CreateWorker(w *models.Worker) error
	PickWorkerForDepartment(department string) (*models.Worker, error)

	// Feedback
	SaveFeedback(f *models.Feedback) error
	GetFeedbackForComplaint(complaintID string) ([]models.Feedback, error)

	// Realtime + session state
	PublishChange(ev models.ChangeEvent) error
	GetScreen(sessionID string) (string, error)
	SetScreen(sessionID, screen string) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// PublishChange broadcasts a change event on the table's Pub/Sub channel.
// Realtime subscribers use it as a refetch trigger.
func (s *Service) PublishChange(ev models.ChangeEvent) error {
	if s.Redis == nil {
		return nil // realtime disabled (e.g. the ops CLI)
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, EventChannelPrefix+ev.Table, data).Err()
}

// SubscribeChanges subscribes to change events for every tracked table.
func (s *Service) SubscribeChanges() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, EventChannelPrefix+"*")
}

// GetScreen returns the current screen of a session, or "" when the session
// is new or expired.
func (s *Service) GetScreen(sessionID string) (string, error) {
	screen, err := s.Redis.Get(s.Ctx, "screen:"+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return screen, nil
}

// SetScreen stores the session's current screen with a sliding 24h TTL.
func (s *Service) SetScreen(sessionID, screen string) error {
	return s.Redis.Set(s.Ctx, "screen:"+sessionID, screen, 24*time.Hour).Err()
}

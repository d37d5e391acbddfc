// Package auth owns credential checks, citizen account provisioning and the
// JWT session tokens handed to both citizens and admins.
package auth

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"nagarrakshak/backend/internal/config"
	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the single rejection for any failed login:
// unknown username, wrong password, or deactivated account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUsernameExhausted is returned when username generation cannot find a
// free candidate. With a 6-digit suffix this needs a near-full namespace.
var ErrUsernameExhausted = errors.New("could not generate a unique username")

// Claims is what a session token carries.
type Claims struct {
	Subject string
	Role    models.Role
}

type Service struct {
	Storage  storage.Storage
	Secret   []byte
	TokenTTL time.Duration
}

func NewService(s storage.Storage, secret string) *Service {
	return &Service{Storage: s, Secret: []byte(secret), TokenTTL: config.TokenTTL}
}

// LoginAdmin checks an admin's username and password against the admins
// table. Only active admins can log in.
func (s *Service) LoginAdmin(username, password string) (*models.Admin, error) {
	admin, err := s.Storage.GetAdminByUsername(username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Printf("ERROR: Admin lookup failed for %s: %v", username, err)
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// LoginCitizen checks a citizen's username and password against profiles.
func (s *Service) LoginCitizen(username, password string) (*models.Profile, error) {
	profile, err := s.Storage.GetProfileByUsername(username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Printf("ERROR: Profile lookup failed for %s: %v", username, err)
		return nil, err
	}
	if !profile.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return profile, nil
}

// LoginOrProvisionByPhone returns the profile for a phone number that has
// just passed OTP verification, creating an account with a generated
// username on first login.
func (s *Service) LoginOrProvisionByPhone(phone, fullName string) (*models.Profile, error) {
	profile, err := s.Storage.GetProfileByPhone(phone)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("ERROR: Profile lookup failed for phone %s: %v", phone, err)
		return nil, err
	}
	return s.CreateCitizenAccount(phone, fullName, randomPassword())
}

// CreateCitizenAccount provisions a citizen profile with a generated unique
// username and a bcrypt-hashed password.
func (s *Service) CreateCitizenAccount(phone, fullName, password string) (*models.Profile, error) {
	username, err := s.GenerateUniqueUsername(config.UsernamePrefix)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	profile := &models.Profile{
		Username:     username,
		FullName:     fullName,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Role:         models.RoleCitizen,
		IsActive:     true,
	}
	if err := s.Storage.CreateProfile(profile); err != nil {
		return nil, err
	}
	log.Printf("INFO: Provisioned citizen account %s for phone %s", username, phone)
	return profile, nil
}

// GenerateUniqueUsername returns prefix + 6 random digits, retrying on
// collision a bounded number of times.
func (s *Service) GenerateUniqueUsername(prefix string) (string, error) {
	for i := 0; i < config.UsernameTries; i++ {
		candidate := fmt.Sprintf("%s%d", prefix, 100000+rand.IntN(900000))
		taken, err := s.Storage.UsernameExists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrUsernameExhausted
}

// GenerateToken issues a signed session token for the subject.
func (s *Service) GenerateToken(subject string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"exp":  time.Now().Add(s.TokenTTL).Unix(),
		"iss":  config.TokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ParseToken validates a session token and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithIssuer(config.TokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &Claims{Subject: sub, Role: models.Role(role)}, nil
}

// randomPassword backs accounts provisioned through the OTP flow, where the
// citizen never chose a password. They log in by phone, not by password.
func randomPassword() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 12)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// OTP
	OtpLength = 6
	OtpTTL    = 5 * time.Minute
	// Phone number and code accepted without a stored OTP row when
	// TestMode is on. Never honored in the production path.
	TestBypassPhone = "1223334444"
	TestBypassCode  = "123456"

	// Complaint codes: prefix + 6 digits, e.g. NGR123456.
	ComplaintCodePrefix = "NGR"
	ComplaintCodeDigits = 6

	// JWT
	TokenTTL    = 72 * time.Hour
	TokenIssuer = "nagarrakshak-service"

	// Analytics
	TopAreasLimit     = 5
	AreaChartLimit    = 10
	CrossTabAreaLimit = 5

	// Username generation for auto-provisioned citizen accounts.
	UsernamePrefix = "citizen"
	UsernameTries  = 5
)

// Config holds everything read from the environment at boot.
type Config struct {
	HTTPAddr    string
	DatabaseDSN string
	RedisAddr   string
	RedisDB     int

	JWTSecret string

	OpenAIKey string

	TelegramToken string
	AdminChatID   int64

	HelplineDir string

	// TestMode enables the demo OTP bypass. Off unless TEST_MODE=1.
	TestMode bool

	AllowedOrigins []string
}

// Load reads configuration from the environment. Only the database DSN and
// the JWT secret are mandatory; everything else has a workable default or
// disables its feature when empty.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),

		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		HelplineDir:   getenv("HELPLINE_DIR", "data/helplines"),
		TestMode:      os.Getenv("TEST_MODE") == "1",
	}

	if cfg.DatabaseDSN == "" {
		return cfg, fmt.Errorf("DATABASE_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is not set")
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &cfg.RedisDB); err != nil {
			return cfg, fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
		}
	}

	if raw := os.Getenv("ADMIN_CHAT_ID"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &cfg.AdminChatID); err != nil {
			return cfg, fmt.Errorf("invalid ADMIN_CHAT_ID %q: %w", raw, err)
		}
	}

	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		cfg.AllowedOrigins = []string{origin}
	} else {
		cfg.AllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

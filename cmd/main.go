package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"nagarrakshak/backend/internal/analysis"
	"nagarrakshak/backend/internal/api/handler"
	"nagarrakshak/backend/internal/auth"
	"nagarrakshak/backend/internal/complaint"
	"nagarrakshak/backend/internal/config"
	"nagarrakshak/backend/internal/helpline"
	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/notify"
	"nagarrakshak/backend/internal/otp"
	"nagarrakshak/backend/internal/realtime"
	"nagarrakshak/backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.Complaint{},
		&models.StatusUpdate{},
		&models.OtpVerification{},
		&models.Profile{},
		&models.Admin{},
		&models.Worker{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Nagar Rakshak Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	hub := realtime.NewHub(s)
	go hub.Run()

	notifier, err := notify.NewNotifier(cfg.TelegramToken, cfg.AdminChatID)
	if err != nil {
		log.Fatalf("Failed to start Telegram notifier: %v", err)
	}
	if notifier == nil {
		log.Println("Telegram alerts disabled (no token or chat ID configured)")
	}

	analyzer := analysis.NewAnalyzer(nil, cfg.OpenAIKey)

	complaintSvc := complaint.NewService(s)
	if cfg.OpenAIKey != "" {
		complaintSvc.Analyzer = analyzer
	}
	if notifier != nil {
		complaintSvc.Notifier = notifier
	}

	otpSvc := otp.NewService(s, cfg.TestMode)
	authSvc := auth.NewService(s, cfg.JWTSecret)

	helplines, err := helpline.NewDirectory(cfg.HelplineDir)
	if err != nil {
		log.Fatalf("Failed to load helpline directory: %v", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	h := handler.NewHandler(s, complaintSvc, otpSvc, authSvc, analyzer, helplines, hub)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", cfg.HTTPAddr)
	log.Fatal(server.ListenAndServe())
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	SessionSecret string
	UploadDir     string
	MaxUploadMB   int
	LogFile       string
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	// Optional .env in the working directory; real env always wins.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "candelore.db" // sqlite file in project root
	}
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dev-only-insecure-secret"
		log.Printf("[config] SESSION_SECRET not set, using insecure dev default")
	}
	upload := os.Getenv("UPLOAD_DIR")
	if upload == "" {
		upload = "./web/uploads"
	}
	maxMB := 10
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxMB = n
		}
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		SessionSecret: secret,
		UploadDir:     upload,
		MaxUploadMB:   maxMB,
		LogFile:       os.Getenv("LOG_FILE"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s UPLOAD_DIR=%s MAX_UPLOAD_MB=%d", cfg.Port, cfg.DBDSN, cfg.UploadDir, cfg.MaxUploadMB)
	return cfg
}

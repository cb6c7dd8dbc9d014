package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/sujalbistaa/feedhub/internal/logging"
)

// Config collects every env-driven setting the server reads.
type Config struct {
	Port        string
	DatabaseURL string
	CORSOrigin  string
	AdminToken  string
	UploadDir   string
}

// Load reads .env (if present) and the environment. Missing values fall
// back to local-dev defaults; ADMIN_TOKEN has no default and admin routes
// refuse to mount without it.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logging.Log.Info("No .env file found, reading from environment")
	}

	return Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: getenv("DATABASE_URL", "sqlite://feedhub.db"),
		CORSOrigin:  getenv("CORS_ORIGIN", "*"),
		AdminToken:  os.Getenv("X_ADMIN_TOKEN"),
		UploadDir:   getenv("UPLOAD_DIR", "./uploads"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

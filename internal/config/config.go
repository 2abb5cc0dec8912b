package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	Environment      string
	HTTPAddr         string
	LogLevel         string
	AuthCookieSecure bool

	// DatabaseURL selects the backing store. Empty means the embedded
	// SQLite file database.
	DatabaseURL string
	SQLitePath  string

	JWTSecret string

	UploadDir string
	PublicDir string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	return Config{
		AppName:          getenv("APP_SERVICE", "quotehub"),
		Environment:      environment,
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		AuthCookieSecure: authCookieSecure,
		DatabaseURL:      strings.TrimSpace(getenv("DATABASE_URL", "")),
		SQLitePath:       getenv("SQLITE_PATH", "quotes.db"),
		JWTSecret:        strings.TrimSpace(getenv("JWT_SECRET", "a-fallback-secret-key-for-development")),
		UploadDir:        getenv("UPLOAD_DIR", "uploads"),
		PublicDir:        getenv("PUBLIC_DIR", "public"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

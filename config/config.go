package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	// Database
	DBDriver string // "sqlite" or "mysql"
	DBDSN    string

	// Uploads
	UploadsDir string

	// Session
	JWTSecret    string
	SessionTTL   time.Duration
	CookieDomain string
	CookieSecure bool

	// Rate limiting for the public auth endpoint
	AuthRatePerMinute int
	AuthRateBurst     int

	// Email configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	MailEnabled  bool
}

func Load() *Config {
	// Optional local overrides; missing file is fine.
	_ = godotenv.Load(".env.local")

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBDSN:    getEnv("DB_DSN", "sqlite3.db"),

		UploadsDir: getEnv("UPLOADS_DIR", "instance/uploads"),

		JWTSecret:    getEnv("JWT_SECRET", "your-secret-key"),
		SessionTTL:   getDuration("SESSION_TTL", 24*time.Hour),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getBool("COOKIE_SECURE", false),

		AuthRatePerMinute: getInt("AUTH_RATE_PER_MINUTE", 30),
		AuthRateBurst:     getInt("AUTH_RATE_BURST", 10),

		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@socialinsecurity.local"),
		FromName:     getEnv("FROM_NAME", "Social Insecurity"),
		MailEnabled:  getBool("MAIL_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

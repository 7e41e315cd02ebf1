package config

import (
	"os"
	"strconv"
)

// Connection and service settings, loaded from the environment. main.go loads
// the .env file (if any) before calling Init.
var (
	Port string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	MailHost     string
	MailPort     string
	MailUsername string
	MailPassword string
	SupportEmail string

	ClientUrl string

	DefaultAdminEmail    string
	DefaultAdminPassword string

	LogLevel  string
	LogFormat string
)

// Init reads all configuration from the environment.
func Init() {
	Port = getEnv("PORT", "8080")

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "storymaps_contest")

	RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")

	JWTSecret = getEnv("JWT_SECRET", "")

	MailHost = getEnv("MAIL_HOST", "")
	MailPort = getEnv("MAIL_PORT", "587")
	MailUsername = getEnv("MAIL_USERNAME", "")
	MailPassword = getEnv("MAIL_PASSWORD", "")
	SupportEmail = getEnv("SUPPORT_EMAIL", "")

	ClientUrl = getEnv("CLIENT_URL", "http://localhost:5173")

	DefaultAdminEmail = getEnv("DEFAULT_ADMIN_EMAIL", "admin@admin.com")
	DefaultAdminPassword = getEnv("DEFAULT_ADMIN_PASSWORD", "")

	LogLevel = getEnv("LOG_LEVEL", "info")
	LogFormat = getEnv("LOG_FORMAT", "json")

	if v, err := strconv.Atoi(getEnv("MAX_SUBMISSIONS_PER_USER", "")); err == nil && v > 0 {
		Submissions.MaxPerUser = v
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

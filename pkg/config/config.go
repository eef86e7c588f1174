package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds runtime configuration derived from env vars or a local .env.
type App struct {
	Environment string
	LogLevel    string
	APIPort     string
	CORSOrigins []string

	// Optional backing services. Empty means memory-only / disabled.
	DatabaseURL  string
	KafkaBrokers string
	KafkaTopic   string

	// Session issuance.
	JWTSecret  string
	SessionTTL time.Duration
	Admins     []string

	// Work calendar used by status derivation. Hours are local to the
	// process timezone; Saturday and Sunday are always non-workdays.
	WorkdayStartHour int
	WorkdayEndHour   int

	// Live feed tuning.
	SummaryTickSpec string
	LogRetention    int
	LogTail         int

	// When true, markOut/markReturn on an unknown employee provisions
	// the record instead of rejecting.
	ImplicitProvision bool
}

// FromEnv loads the application configuration from environment
// variables, reading a local .env first if one exists.
func FromEnv() App {
	_ = godotenv.Load()

	return App{
		Environment:       getEnv("ENVIRONMENT", "production"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		APIPort:           getEnv("API_PORT", "8080"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "board-mutations"),
		JWTSecret:         getEnv("JWT_SECRET", "insecure-dev-secret"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 12*time.Hour),
		Admins:            splitList(os.Getenv("ADMIN_USERS")),
		WorkdayStartHour:  getEnvInt("WORKDAY_START_HOUR", 9),
		WorkdayEndHour:    getEnvInt("WORKDAY_END_HOUR", 18),
		SummaryTickSpec:   getEnv("SUMMARY_TICK_SPEC", "@every 1m"),
		LogRetention:      getEnvInt("LOG_RETENTION", 100),
		LogTail:           getEnvInt("LOG_TAIL", 50),
		ImplicitProvision: getEnvBool("IMPLICIT_PROVISION", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string
	Timezone       *time.Location

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPass      string
	DBName      string
	DBPort      string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryURL          string
	CloudinaryCloudName    string
	CloudinaryUploadFolder string

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	LogLevel  string
	LogFormat string

	RateLimitSubmission time.Duration
	SeedSampleData      bool
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPass:      os.Getenv("DB_PASS"),
		DBName:      getEnv("DB_NAME", "magang_portal"),
		DBPort:      getEnv("DB_PORT", "5432"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryUploadFolder: getEnv("CV_UPLOAD_FOLDER", "magang/cv"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@magang.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	var err error
	cfg.Timezone, err = time.LoadLocation(getEnv("TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	ttlMinutes, err := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "60"))
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %q", os.Getenv("JWT_TTL_MINUTES"))
	}
	cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute

	cfg.RateLimitSubmission, err = parseDuration(getEnv("RATE_LIMIT_SUBMISSION", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SUBMISSION: %w", err)
	}

	cfg.SeedSampleData, err = strconv.ParseBool(getEnv("SEED_SAMPLE_DATA", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_SAMPLE_DATA: %w", err)
	}

	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from
// the DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort, c.Timezone.String(),
	)
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

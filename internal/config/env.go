package config

import (
	"CafeAnalyzer/database/postgres"
	"CafeAnalyzer/pkg/cafeapi"
	"CafeAnalyzer/pkg/s3"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type AppConfig struct {
	Port      string
	Env       string
	Locale    string
	MaxUpload int64

	CafeAPIBaseURL string
	// CafeAPITimeout is zero when requests should only end with their context.
	CafeAPITimeout time.Duration

	HistoryBackend string
	SQLitePath     string
	Postgres       postgres.Config
	Redis          RedisConfig
	S3             s3.Config

	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the configuration from the environment, filling defaults for
// anything unset or unparsable.
func Load() AppConfig {
	return AppConfig{
		Port:      getEnv("APP_PORT", "3000"),
		Env:       os.Getenv("APP_ENV"),
		Locale:    getEnv("UI_LOCALE", "ru"),
		MaxUpload: int64(getEnvInt("MAX_UPLOAD_SIZE", 50*1024*1024)),

		CafeAPIBaseURL: strings.TrimRight(getEnv("CAFE_API_BASE_URL", cafeapi.DefaultBaseURL), "/"),
		CafeAPITimeout: getEnvDuration("CAFE_API_TIMEOUT", 0),

		HistoryBackend: strings.ToLower(getEnv("HISTORY_BACKEND", BackendSQLite)),
		SQLitePath:     getEnv("SQLITE_PATH", "./storage/cafe.db"),
		Postgres: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		S3: s3.Config{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("AWS_BUCKET_NAME"),
			Endpoint:        os.Getenv("AWS_ENDPOINT"),
		},

		JWTSecret:      os.Getenv("JWT_ACCESS_TOKEN_SECRET"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 100),
	}
}

// ArchiveEnabled reports whether generated reports should go to S3.
func (c AppConfig) ArchiveEnabled() bool {
	return c.S3.Bucket != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}

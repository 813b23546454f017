package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "supersecretkey"

// Store drivers for the ledger snapshot.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Port string

	// APIToken is exchanged for a JWT at POST /auth/token.
	APIToken string

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// JWTExpireHours is the token lifetime in hours (default 24). Set via JWT_EXPIRE_HOURS.
	JWTExpireHours int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// StoreDriver selects where snapshots live: memory (default), postgres or redis.
	StoreDriver string

	// SnapshotKey names the snapshot row / redis key.
	SnapshotKey string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ReservationBufferMinutes pads reservations that do not name their own buffer.
	ReservationBufferMinutes int

	// OverdueSweepCron is a robfig/cron spec for the overdue sweep (default "@every 5m").
	OverdueSweepCron string

	// RateLimitPerMinute caps mutation requests per client IP.
	RateLimitPerMinute int
}

func Load() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		APIToken: getEnv("API_TOKEN", "dev-token"),

		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		Env:            getEnv("ENV", "dev"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		SnapshotKey: getEnv("SNAPSHOT_KEY", "innovation_inventory_store"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "ledgerdb"),
		DBUser: getEnv("DB_USER", "ledger"),
		DBPass: getEnv("DB_PASS", "ledgerpass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvNonNegative("REDIS_DB", 0),

		ReservationBufferMinutes: getEnvNonNegative("RESERVATION_BUFFER_MINUTES", 15),
		OverdueSweepCron:         getEnv("OVERDUE_SWEEP_CRON", "@every 5m"),
		RateLimitPerMinute:       getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

// Validate rejects settings that must not reach production.
func (c Config) Validate() error {
	if c.Env == "prod" && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value when ENV=prod")
	}
	switch c.StoreDriver {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		return errors.New("STORE_DRIVER must be one of memory, postgres, redis")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}

// PostgresURL is the DSN used for migrations.
func (c Config) PostgresURL() string {
	return "postgres://" + c.DBUser + ":" + c.DBPass + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=disable"
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvNonNegative(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	MFA          MFAConfig
	Checkin      CheckinConfig
	Storage      StorageConfig
	Payroll      PayrollConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret               string
	AccessTokenTTLMinutes   int
	PendingTokenTTLMinutes  int
	PasswordResetTTLMinutes int
	BcryptCost              int
}

// MFAConfig defines multi-factor authentication parameters.
type MFAConfig struct {
	Issuer              string
	EmailCodeTTLMinutes int
	BackupCodeCount     int
}

// CheckinConfig controls event check-in code issuance.
type CheckinConfig struct {
	CodeTTLHours int
}

// CodeTTL returns the lifetime of issued check-in codes.
func (c CheckinConfig) CodeTTL() time.Duration {
	return time.Duration(c.CodeTTLHours) * time.Hour
}

// StorageConfig controls uploaded file storage.
type StorageConfig struct {
	UploadDir     string
	MaxPhotoBytes int64
	MaxDocBytes   int64
}

// PayrollConfig holds payroll and leave accrual parameters.
type PayrollConfig struct {
	SickLeaveHoursPerMonth float64
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "event-staffing-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:               getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes:   getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			PendingTokenTTLMinutes:  getEnvAsInt("AUTH_PENDING_TOKEN_TTL_MINUTES", 5),
			PasswordResetTTLMinutes: getEnvAsInt("AUTH_PASSWORD_RESET_TTL_MINUTES", 30),
			BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		MFA: MFAConfig{
			Issuer:              getEnv("MFA_ISSUER", "event-staffing"),
			EmailCodeTTLMinutes: getEnvAsInt("MFA_EMAIL_CODE_TTL_MINUTES", 10),
			BackupCodeCount:     getEnvAsInt("MFA_BACKUP_CODE_COUNT", 10),
		},
		Checkin: CheckinConfig{
			CodeTTLHours: getEnvAsInt("CHECKIN_CODE_TTL_HOURS", 24),
		},
		Storage: StorageConfig{
			UploadDir:     getEnv("STORAGE_UPLOAD_DIR", "uploads"),
			MaxPhotoBytes: int64(getEnvAsInt("STORAGE_MAX_PHOTO_BYTES", 5*1024*1024)),
			MaxDocBytes:   int64(getEnvAsInt("STORAGE_MAX_DOC_BYTES", 10*1024*1024)),
		},
		Payroll: PayrollConfig{
			SickLeaveHoursPerMonth: getEnvAsFloat("PAYROLL_SICK_LEAVE_HOURS_PER_MONTH", 4),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// EmailCodeTTL returns the lifetime of emailed MFA codes.
func (m MFAConfig) EmailCodeTTL() time.Duration {
	return time.Duration(m.EmailCodeTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

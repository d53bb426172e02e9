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
	Notification NotificationConfig
	Cache        CacheConfig
	Upload       UploadConfig
	Admin        AdminConfig
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
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// NotificationConfig configures the side-effect pipeline: email delivery,
// the audit stream and the optional webhook.
type NotificationConfig struct {
	EmailFrom    string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	WebhookURL   string
	StreamName   string
	Workers      int
	QueueSize    int
}

// CacheConfig controls Redis-backed read caches.
type CacheConfig struct {
	DashboardTTLSeconds int
}

// UploadConfig controls where category images land on disk.
type UploadConfig struct {
	Dir          string
	MaxFileBytes int
}

// AdminConfig gates the unauthenticated bootstrap endpoints.
type AdminConfig struct {
	BootstrapEnabled bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	bcryptCost := getEnvAsInt("AUTH_BCRYPT_COST", 10)
	if bcryptCost < 4 || bcryptCost > 31 {
		return nil, fmt.Errorf("invalid AUTH_BCRYPT_COST: %d", bcryptCost)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "servicelink-admin"),
			Env:                   appEnv,
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
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: appEnv == "development",
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            bcryptCost,
		},
		Notification: NotificationConfig{
			EmailFrom:    getEnv("NOTIFY_EMAIL_FROM", "noreply@servicelink.local"),
			SMTPHost:     os.Getenv("NOTIFY_SMTP_HOST"),
			SMTPPort:     getEnvAsInt("NOTIFY_SMTP_PORT", 587),
			SMTPUsername: os.Getenv("NOTIFY_SMTP_USERNAME"),
			SMTPPassword: os.Getenv("NOTIFY_SMTP_PASSWORD"),
			WebhookURL:   getEnv("NOTIFY_WEBHOOK_URL", ""),
			StreamName:   getEnv("NOTIFY_STREAM", "admin:lifecycle"),
			Workers:      getEnvAsInt("NOTIFY_WORKERS", 4),
			QueueSize:    getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
		},
		Cache: CacheConfig{
			DashboardTTLSeconds: getEnvAsInt("CACHE_DASHBOARD_TTL_SECONDS", 60),
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "uploads"),
			MaxFileBytes: getEnvAsInt("UPLOAD_MAX_FILE_BYTES", 5<<20),
		},
		Admin: AdminConfig{
			BootstrapEnabled: getEnvAsBool("ADMIN_BOOTSTRAP_ENABLED", false),
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

// DashboardTTL returns how long dashboard aggregates stay cached.
func (c CacheConfig) DashboardTTL() time.Duration {
	if c.DashboardTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.DashboardTTLSeconds) * time.Second
}

// SMTPAddr returns host:port for the mail relay, or "" when email is disabled.
func (n NotificationConfig) SMTPAddr() string {
	if n.SMTPHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", n.SMTPHost, n.SMTPPort)
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

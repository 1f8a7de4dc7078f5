package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Stripe StripeConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WEDDING_APP_ENV" default:"dev"`
	Port         string `envconfig:"WEDDING_APP_PORT" default:"8001"`
	LogLevel     string `envconfig:"WEDDING_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WEDDING_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"WEDDING_DB_DSN"`

	LegacyHost     string `envconfig:"WEDDING_DB_HOST" default:"localhost"`
	LegacyPort     int    `envconfig:"WEDDING_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WEDDING_DB_USER" default:"postgres"`
	LegacyPassword string `envconfig:"WEDDING_DB_PASSWORD"`
	LegacyName     string `envconfig:"WEDDING_DB_NAME" default:"wedding_db"`
	LegacySSLMode  string `envconfig:"WEDDING_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WEDDING_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"WEDDING_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"WEDDING_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WEDDING_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	// URL is optional. When empty the comments cache is disabled and reads
	// go straight to the database.
	URL             string        `envconfig:"WEDDING_REDIS_URL"`
	CommentCacheTTL time.Duration `envconfig:"WEDDING_REDIS_COMMENT_CACHE_TTL" default:"60s"`
	DialTimeout     time.Duration `envconfig:"WEDDING_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout     time.Duration `envconfig:"WEDDING_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"WEDDING_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StripeConfig struct {
	// APIKey is deliberately not required at boot: a missing key surfaces
	// on the first checkout attempt, as a dependency error.
	APIKey        string `envconfig:"WEDDING_STRIPE_API_KEY"`
	WebhookSecret string `envconfig:"WEDDING_STRIPE_WEBHOOK_SECRET"`
	Env           string `envconfig:"WEDDING_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.LegacyHost == "" || db.LegacyUser == "" || db.LegacyName == "" {
		return fmt.Errorf("either WEDDING_DB_DSN or WEDDING_DB_HOST, WEDDING_DB_USER, WEDDING_DB_NAME are required")
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

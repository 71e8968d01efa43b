package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	awspkg "github.com/Harshit-patil56/Land-deals-manager-sub000/pkg/aws"
	"github.com/joho/godotenv"
)

// Secret names read when AWS_USE_SECRETS=true.
const (
	SecretDBCredentials = "landdeals/DB_CREDENTIALS"
	SecretJWT           = "landdeals/JWT_SECRET"
)

// Config holds all configuration for the land-deals BFF and CLI.
type Config struct {
	Port           string
	Env            string
	APIBaseURL     string
	RequestTimeout time.Duration

	RedisURL   string
	SessionTTL time.Duration

	// Audit log; disabled when PostgresHost is empty.
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	JWTSecret      string
	AllowedOrigins []string

	ExportBucket   string
	EventsTopicARN string

	RateLimitPerMinute int
	RateLimitBurst     int

	// CloudWatch logs and metrics; off unless CLOUDWATCH_ENABLED=true.
	CloudWatchEnabled   bool
	CloudWatchLogGroup  string
	CloudWatchNamespace string
}

// AuditEnabled reports whether the postgres audit log is configured.
func (c *Config) AuditEnabled() bool {
	return c.PostgresHost != ""
}

// DSN returns the postgres connection string for gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB,
		c.PostgresPort, c.PostgresSSLMode, c.PostgresTimeZone)
}

// LoadConfig reads configuration from .env and the environment, with an
// optional Secrets Manager override.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		ctx := context.Background()
		if awsCfg, err := awspkg.LoadAWSConfig(ctx); err == nil {
			applySecrets(ctx, cfg, awspkg.NewSecretsClient(awsCfg))
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	timeout, err := getDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getDuration("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	perMinute, err := getInt("RATE_LIMIT_PER_MINUTE", 100)
	if err != nil {
		return nil, err
	}
	burst, err := getInt("RATE_LIMIT_BURST", 50)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		APIBaseURL:         strings.TrimSuffix(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
		RequestTimeout:     timeout,
		RedisURL:           os.Getenv("REDIS_URL"),
		SessionTTL:         sessionTTL,
		PostgresUser:       os.Getenv("POSTGRES_USER"),
		PostgresPassword:   os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:         os.Getenv("POSTGRES_DB"),
		PostgresHost:       os.Getenv("POSTGRES_HOST"),
		PostgresPort:       getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:    getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone:   getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		ExportBucket:       os.Getenv("EXPORT_BUCKET"),
		EventsTopicARN:     os.Getenv("EVENTS_SNS_TOPIC_ARN"),
		RateLimitPerMinute: perMinute,
		RateLimitBurst:     burst,

		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchLogGroup:  getEnv("CLOUDWATCH_LOG_GROUP", "/landdeals/bff"),
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "LandDeals"),
	}, nil
}

// applySecrets overrides DB credentials and the JWT secret. Lookups that
// fail leave the environment values in place.
func applySecrets(ctx context.Context, cfg *Config, sm awspkg.SecretGetter) {
	var db map[string]string
	if err := awspkg.DecodeSecret(ctx, sm, SecretDBCredentials, &db); err == nil {
		override(&cfg.PostgresUser, db["POSTGRES_USER"])
		override(&cfg.PostgresPassword, db["POSTGRES_PASSWORD"])
		override(&cfg.PostgresDB, db["POSTGRES_DB"])
		override(&cfg.PostgresHost, db["POSTGRES_HOST"])
		override(&cfg.PostgresPort, db["POSTGRES_PORT"])
	}
	if v, err := sm.GetSecret(ctx, SecretJWT); err == nil {
		override(&cfg.JWTSecret, v)
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.APIBaseURL)
	}
	if c.AuditEnabled() && (c.PostgresUser == "" || c.PostgresDB == "") {
		return fmt.Errorf("database config incomplete")
	}
	return nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

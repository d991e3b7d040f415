package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-this-in-production"

// Config holds all configuration for the application.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	MongoURI      string
	MongoDatabase string

	// Redis relays realtime room publishes between server processes.
	// Empty means a single in-memory hub.
	RedisAddr string
	ServerID  string

	JWTSecret      string
	AccessTokenTTL time.Duration

	// AdminID pins the admin identity customers chat with. When empty the
	// earliest registered admin account is used.
	AdminID string

	CORSOrigins []string

	Pricing PriceRates

	SMTPHost    string
	SMTPPort    int
	SMTPSecure  bool
	SMTPUser    string
	SMTPPass    string
	FromName    string
	FromEmail   string
	AdminEmails []string

	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	UploadDir          string
}

// PriceRates are the NZD coefficients of the quote estimate.
type PriceRates struct {
	PerSqm     float64
	PerWindow  float64
	PerDoor    float64
	PerFrame   float64
	PerFeature float64
}

// Load reads configuration from environment variables, after loading a
// .env file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MongoURI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "elitehomepainters"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		ServerID:  getEnv("SERVER_ID", "server-1"),

		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
		AdminID:   os.Getenv("ADMIN_ID"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASS"),
		FromName:    getEnv("FROM_NAME", "EliteHomePainters"),
		FromEmail:   os.Getenv("FROM_EMAIL"),
		AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),

		AWSRegion:          getEnv("AWS_REGION", "ap-southeast-2"),
		AWSS3Bucket:        os.Getenv("AWS_S3_BUCKET"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
	}

	var err error
	if cfg.AccessTokenTTL, err = time.ParseDuration(getEnv("JWT_ACCESS_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("JWT_ACCESS_TTL: %w", err)
	}

	if cfg.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587")); err != nil {
		return nil, fmt.Errorf("SMTP_PORT: %w", err)
	}
	// implicit TLS when asked for, or on the SMTPS port
	cfg.SMTPSecure = strings.EqualFold(os.Getenv("SMTP_SECURE"), "true") || cfg.SMTPPort == 465

	rates := []struct {
		key  string
		def  string
		dest *float64
	}{
		{"PRICE_PER_SQM", "1.5", &cfg.Pricing.PerSqm},
		{"PRICE_PER_WINDOW", "25", &cfg.Pricing.PerWindow},
		{"PRICE_PER_DOOR", "40", &cfg.Pricing.PerDoor},
		{"PRICE_PER_FRAME", "15", &cfg.Pricing.PerFrame},
		{"PRICE_PER_FEATURE", "50", &cfg.Pricing.PerFeature},
	}
	for _, r := range rates {
		v, err := strconv.ParseFloat(getEnv(r.key, r.def), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.key, err)
		}
		*r.dest = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted safely.
func (c *Config) Validate() error {
	if c.MongoDatabase == "" {
		return errors.New("MONGODB_DATABASE is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL must be positive")
	}
	p := c.Pricing
	if p.PerSqm < 0 || p.PerWindow < 0 || p.PerDoor < 0 || p.PerFrame < 0 || p.PerFeature < 0 {
		return errors.New("price rates must not be negative")
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET is required in production")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDefaultSecret reports whether tokens are signed with the built-in
// development secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	CORS     CORSConfig
	Kiosk    KioskConfig
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// JWTConfig holds the settings used to verify identity provider tokens
type JWTConfig struct {
	Secret    string
	Issuer    string
	ClockSkew time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	TimezoneOffset int // hours east of UTC for the operating timezone
	Departments    []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// KioskConfig rate limits the public check-in endpoints per client IP
type KioskConfig struct {
	RateLimit float64 // requests per second
	RateBurst int
}

var defaultDepartments = []string{"AI", "DAT", "DEV", "QA", "SEC"}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		slog.Debug("no .env file found, using environment only")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	connLifetime, err := time.ParseDuration(getEnv("DB_MAX_CONN_LIFETIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONN_LIFETIME: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            dbPort,
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		Name:            getEnv("DB_NAME", "insighthr"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxConns:        int32(maxConns),
		MinConns:        int32(minConns),
		MaxConnLifetime: connLifetime,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	tzOffset, err := strconv.Atoi(getEnv("APP_TIMEZONE_OFFSET", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE_OFFSET: %w", err)
	}

	departments := getEnvSlice("DEPARTMENTS")
	if len(departments) == 0 {
		departments = defaultDepartments
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		TimezoneOffset: tzOffset,
		Departments:    departments,
	}

	// JWT configuration
	clockSkew, err := time.ParseDuration(getEnv("JWT_CLOCK_SKEW", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_CLOCK_SKEW: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:    getEnv("JWT_SECRET_KEY", ""),
		Issuer:    getEnv("JWT_ISSUER", ""),
		ClockSkew: clockSkew,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// Kiosk rate limiting
	rateLimit, err := strconv.ParseFloat(getEnv("KIOSK_RATE_LIMIT", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_RATE_LIMIT: %w", err)
	}

	rateBurst, err := strconv.Atoi(getEnv("KIOSK_RATE_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_RATE_BURST: %w", err)
	}

	config.Kiosk = KioskConfig{
		RateLimit: rateLimit,
		RateBurst: rateBurst,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.TimezoneOffset < -12 || c.App.TimezoneOffset > 14 {
		return fmt.Errorf("APP_TIMEZONE_OFFSET must be between -12 and 14")
	}
	if c.Kiosk.RateLimit <= 0 || c.Kiosk.RateBurst <= 0 {
		return fmt.Errorf("KIOSK_RATE_LIMIT and KIOSK_RATE_BURST must be positive")
	}
	for _, d := range c.App.Departments {
		if d == "" {
			return fmt.Errorf("DEPARTMENTS contains an empty code")
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the fixed operating timezone used for attendance dates
func (c *Config) Location() *time.Location {
	offset := c.App.TimezoneOffset
	return time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*60*60)
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration. DatabaseURL, when set, takes precedence over
	// the individual fields.
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTTTL    time.Duration

	// Recipe image storage; empty bucket disables uploads
	S3Bucket  string
	AWSRegion string

	// Search
	CatalogCacheTTL  time.Duration
	EmptyQueryPolicy string
	MatchPolicyFile  string

	// Login attempts allowed per client IP per window
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// LoadConfig builds a Config from the environment. A .env file in the
// working directory is loaded first if present. Every value is read from
// its environment variable, falling back to a Docker secret of the same name
// in lowercase (SECRETS_DIR, default /run/secrets), then to the development
// default where one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := &Config{Env: env}

	dev := env != Production
	def := func(v string) string {
		if dev {
			return v
		}
		return ""
	}

	cfg.ServerPort = lookup("SERVER_PORT", "8080")
	cfg.ServerHost = lookup("SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = splitList(lookup("CORS_ALLOWED_ORIGINS", ""))

	cfg.DBHost = lookup("DB_HOST", def("localhost"))
	cfg.DBPort = lookup("DB_PORT", "5432")
	cfg.DBUser = lookup("DB_USER", def("postgres"))
	cfg.DBPassword = lookup("DB_PASSWORD", def("postgres"))
	cfg.DBName = lookup("DB_NAME", def("grocerease"))
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "disable")
	cfg.DatabaseURL = lookup("DATABASE_URL", "")

	cfg.RedisHost = lookup("REDIS_HOST", def("localhost"))
	cfg.RedisPort = lookup("REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "")
	cfg.RedisURL = lookup("REDIS_URL", "")

	cfg.JWTSecret = lookup("JWT_SECRET", def("dev-jwt-secret"))
	cfg.S3Bucket = lookup("S3_BUCKET_NAME", "")
	cfg.AWSRegion = lookup("AWS_REGION", "us-east-1")
	cfg.EmptyQueryPolicy = lookup("EMPTY_QUERY_POLICY", "all")
	cfg.MatchPolicyFile = lookup("MATCH_POLICY_FILE", "")

	var err error
	if cfg.RedisDB, err = lookupInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.LoginRateLimit, err = lookupInt("LOGIN_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = lookupDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = lookupDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.LoginRateWindow, err = lookupDuration("LOGIN_RATE_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func lookup(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func lookupInt(name string, fallback int) (int, error) {
	v := lookup(name, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func lookupDuration(name string, fallback time.Duration) (time.Duration, error) {
	v := lookup(name, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

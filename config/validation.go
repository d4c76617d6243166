package config

import (
	"fmt"
	"strings"

	"github.com/grocerease/backend/internal/matcher"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a Config.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// requiredFields lists, per environment, the fields that must be non-empty.
var requiredFields = map[Environment][]string{
	Development: {"SERVER_PORT"},
	Test:        {"SERVER_PORT"},
	CI:          {"SERVER_PORT", "DB_PASSWORD", "JWT_SECRET"},
	Production:  {"SERVER_PORT", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"},
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	values := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"JWT_SECRET":  cfg.JWTSecret,
	}
	for _, field := range requiredFields[cfg.Env] {
		if values[field] != "" {
			continue
		}
		// DATABASE_URL carries every DB_* value
		if strings.HasPrefix(field, "DB_") && cfg.DatabaseURL != "" {
			continue
		}
		errs = append(errs, ValidationError{Field: field, Message: "is required in " + string(cfg.Env)})
	}

	if cfg.Env == Production && len(cfg.JWTSecret) > 0 && len(cfg.JWTSecret) < 32 {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must be at least 32 characters in production"})
	}
	if _, err := matcher.ParseEmptyQueryPolicy(cfg.EmptyQueryPolicy); err != nil {
		errs = append(errs, ValidationError{Field: "EMPTY_QUERY_POLICY", Message: err.Error()})
	}
	if cfg.CatalogCacheTTL < 0 {
		errs = append(errs, ValidationError{Field: "CATALOG_CACHE_TTL", Message: "must not be negative"})
	}
	if cfg.LoginRateLimit < 0 {
		errs = append(errs, ValidationError{Field: "LOGIN_RATE_LIMIT", Message: "must not be negative"})
	}
	if cfg.LoginRateLimit > 0 && cfg.LoginRateWindow <= 0 {
		errs = append(errs, ValidationError{Field: "LOGIN_RATE_WINDOW", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

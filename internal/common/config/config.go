package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/carsle-auth/internal/common/constants"
	commonerrors "github.com/AlibekovAA/carsle-auth/internal/common/errors"
)

const EnvironmentProduction = "production"

type AuthConfig struct {
	Environment        string        `env:"APP_ENV" envDefault:"development"`
	HTTPPort           string        `env:"AUTH_HTTP_PORT" envDefault:"8081"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	JWTSecret          string        `env:"JWT_SECRET"`
	TokenTTL           time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`
	BcryptCost         int           `env:"BCRYPT_SALT_ROUNDS" envDefault:"10"`
	RequestTimeout     time.Duration `env:"AUTH_REQUEST_TIMEOUT" envDefault:"5s"`
	AutoMigrate        bool          `env:"AUTH_AUTO_MIGRATE" envDefault:"true"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogDir             string        `env:"LOG_DIR" envDefault:"/var/log/carsle-auth"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"INFO"`

	// InsecureJWTSecret is set when JWT_SECRET was absent and the built-in fallback is in use.
	InsecureJWTSecret bool
}

func (c AuthConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvironmentProduction)
}

// LoadAuthConfig reads an optional .env file and then the process environment.
func LoadAuthConfig() (AuthConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return AuthConfig{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return loadFromEnv()
}

func loadFromEnv() (AuthConfig, error) {
	cfg, err := env.ParseAs[AuthConfig]()
	if err != nil {
		return AuthConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return AuthConfig{}, fmt.Errorf("%w: DATABASE_URL", commonerrors.ErrMissingRequiredEnv)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = constants.DefaultJWTSecret
		cfg.InsecureJWTSecret = true
	}

	if err := validateJWTSecret(cfg); err != nil {
		return AuthConfig{}, err
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return AuthConfig{}, fmt.Errorf("%w: got %d, want %d..%d",
			commonerrors.ErrInvalidBcryptCost, cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = constants.DefaultTokenTTL
	}

	cfg.CORSAllowedOrigins = trimOrigins(cfg.CORSAllowedOrigins)

	return cfg, nil
}

func validateJWTSecret(cfg AuthConfig) error {
	if !cfg.IsProduction() {
		return nil
	}
	if cfg.InsecureJWTSecret {
		return commonerrors.ErrInsecureJWTSecret
	}
	if len(cfg.JWTSecret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidJWTSecret, len(cfg.JWTSecret))
	}
	return nil
}

func trimOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

package constants

import "time"

const (
	ServiceName = "carsle-auth"

	LoginUsernameMinLength = 3
	LoginUsernameMaxLength = 100
	LoginPasswordMinLength = 6
	LoginPasswordMaxLength = 100

	FullNameMinLength       = 2
	FullNameMaxLength       = 100
	SignupUsernameMinLength = 3
	SignupUsernameMaxLength = 50
	SignupPasswordMinLength = 8
	SignupPasswordMaxLength = 100
	EmailMaxLength          = 254
	ReferralCodeMinLength   = 3
	ReferralCodeMaxLength   = 20

	OTPLength = 6

	JWTSecretMinLength    = 32
	DefaultJWTSecret      = "your_jwt_secret"
	DefaultTokenTTL       = time.Hour
	DefaultBcryptCost     = 10
	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultAuthHTTPPort       = "8081"
	DefaultAuthRequestTimeout = 5 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
	DefaultLogDir    = "/var/log/carsle-auth"
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"

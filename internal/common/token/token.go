package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/carsle-auth/internal/common/clock"
	"github.com/AlibekovAA/carsle-auth/internal/observability/metrics"
)

var (
	ErrMissingPayload = errors.New("payload is required for token generation")
	ErrMissingToken   = errors.New("token is required for verification")
	ErrInvalidToken   = errors.New("invalid token")
)

type Payload struct {
	UserID string
	Email  string
}

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256 bearer tokens with a fixed lifetime.
type Service struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewService(secret string, ttl time.Duration, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) Issue(payload *Payload) (string, error) {
	if payload == nil {
		return "", ErrMissingPayload
	}

	now := s.clock.Now()
	claims := Claims{
		UserID: payload.UserID,
		Email:  payload.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	metrics.TokensIssued.Inc()
	return signed, nil
}

func (s *Service) Verify(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, ErrMissingToken
	}

	metrics.TokenValidationsTotal.Inc()

	claims := Claims{}
	parsed, err := jwt.ParseWithClaims(
		raw,
		&claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		metrics.TokenValidationsFailed.Inc()
		if err == nil {
			return Claims{}, ErrInvalidToken
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.UserID == "" {
		metrics.TokenValidationsFailed.Inc()
		return Claims{}, fmt.Errorf("%w: missing userId claim", ErrInvalidToken)
	}

	return claims, nil
}

// ExtractFromAuthHeader returns the second part of a two-part "Scheme token" header.
func ExtractFromAuthHeader(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[1] == "" {
		return "", ErrMissingToken
	}
	return parts[1], nil
}

package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/carsle-auth/internal/common/clock"
)

const testSecret = "test-secret-key-that-is-32-bytes!"

func TestService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewService(testSecret, time.Hour, clock.NewRealClock())

	raw, err := svc.Issue(&Payload{UserID: "user-123", Email: "test@gmail.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "test@gmail.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.ExpiresAt.Sub(claims.IssuedAt.Time) != time.Hour {
		t.Errorf("expected 1h lifetime, got %v", claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	}
}

func TestService_VerifyExpired(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	svc := NewService(testSecret, time.Hour, clk)

	raw, err := svc.Issue(&Payload{UserID: "user-123", Email: "test@gmail.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clk.Advance(59 * time.Minute)
	if _, err := svc.Verify(raw); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	clk.Advance(2 * time.Minute)
	if _, err := svc.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestService_VerifyWrongSecret(t *testing.T) {
	issuer := NewService(testSecret, time.Hour, nil)
	verifier := NewService("another-secret-key-of-32-bytes!!", time.Hour, nil)

	raw, _ := issuer.Issue(&Payload{UserID: "user-123", Email: "test@gmail.com"})
	if _, err := verifier.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestService_VerifyRejectsOtherAlgorithms(t *testing.T) {
	svc := NewService(testSecret, time.Hour, nil)

	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestService_VerifyMissingUserID(t *testing.T) {
	svc := NewService(testSecret, time.Hour, nil)

	raw, _ := svc.Issue(&Payload{Email: "test@gmail.com"})
	if _, err := svc.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestService_MissingInputs(t *testing.T) {
	svc := NewService(testSecret, time.Hour, nil)

	if _, err := svc.Issue(nil); !errors.Is(err, ErrMissingPayload) {
		t.Errorf("Issue(nil) error = %v, want ErrMissingPayload", err)
	}
	if _, err := svc.Verify(""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("Verify(\"\") error = %v, want ErrMissingToken", err)
	}
	if _, err := svc.Verify("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(garbage) error = %v, want ErrInvalidToken", err)
	}
}

func TestExtractFromAuthHeader(t *testing.T) {
	testCases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"extra spaces", "Bearer    abc", "abc", false},
		{"any scheme", "Token abc", "abc", false},
		{"empty", "", "", true},
		{"scheme only", "Bearer", "", true},
		{"three parts", "Bearer abc def", "", true},
		{"whitespace", strings.Repeat(" ", 4), "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractFromAuthHeader(tc.header)
			if tc.wantErr {
				if !errors.Is(err, ErrMissingToken) {
					t.Errorf("expected ErrMissingToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

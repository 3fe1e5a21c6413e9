package service_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/carsle-auth/internal/auth/service"
	commonerrors "github.com/AlibekovAA/carsle-auth/internal/common/errors"
)

func decodeBody(t *testing.T, raw string) any {
	t.Helper()
	if raw == "" {
		return nil
	}
	var body any
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	return body
}

func assertValidationMessage(t *testing.T, err error, want string) {
	t.Helper()
	if want == "" {
		assert.NoError(t, err)
		return
	}
	require.Error(t, err)
	domainErr, ok := commonerrors.AsDomainError(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	assert.Equal(t, commonerrors.CategoryValidation, domainErr.Category())
	assert.Equal(t, want, domainErr.Message())
}

func TestValidateLoginInput(t *testing.T) {
	long := strings.Repeat("a", 101)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "no body", body: "", want: "Request body is required"},
		{name: "string body", body: `"invalid body"`, want: "Request body is required"},
		{name: "array body", body: `[]`, want: "Username is required"},
		{name: "missing username", body: `{"password":"secret1"}`, want: "Username is required"},
		{name: "missing password", body: `{"username":"testuser"}`, want: "Password is required"},
		{name: "both null", body: `{"username":null,"password":null}`, want: "Username cannot be null or undefined"},
		{name: "password null", body: `{"username":"testuser","password":null}`, want: "Password cannot be null or undefined"},
		{name: "username blank", body: `{"username":"   ","password":"secret1"}`, want: "Username cannot be empty"},
		{name: "password blank", body: `{"username":"testuser","password":"  "}`, want: "Password cannot be empty"},
		{name: "blank wins over type", body: `{"username":123,"password":""}`, want: "Password cannot be empty"},
		{name: "username number", body: `{"username":123,"password":"secret1"}`, want: "Username must be a string"},
		{name: "password bool", body: `{"username":"testuser","password":true}`, want: "Password must be a string"},
		{name: "username too long", body: `{"username":"` + long + `","password":"x"}`, want: "Username is too long (maximum 100 characters)"},
		{name: "password too long", body: `{"username":"testuser","password":"` + long + `"}`, want: "Password is too long (maximum 100 characters)"},
		{name: "max before min", body: `{"username":"ab","password":"` + long + `"}`, want: "Password is too long (maximum 100 characters)"},
		{name: "username too short", body: `{"username":"ab","password":"secret1"}`, want: "Username must be at least 3 characters long"},
		{name: "password too short", body: `{"username":"testuser","password":"12345"}`, want: "Password must be at least 6 characters long"},
		{name: "valid username", body: `{"username":"testuser","password":"secret1"}`},
		{name: "valid email identifier", body: `{"username":"test@gmail.com","password":"secret1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidationMessage(t, service.ValidateLoginInput(decodeBody(t, tt.body)), tt.want)
		})
	}
}

func signupBody(overrides map[string]any, drop ...string) map[string]any {
	body := map[string]any{
		"fullName": "Test User",
		"username": "testuser",
		"email":    "test@gmail.com",
		"password": "TestPass123!",
	}
	for k, v := range overrides {
		body[k] = v
	}
	for _, k := range drop {
		delete(body, k)
	}
	return body
}

func TestValidateSignupInput(t *testing.T) {
	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "no body", body: nil, want: "Request body is required"},
		{name: "string body", body: "invalid body", want: "Request body is required"},
		{name: "array body", body: []any{}, want: "Request body is required"},

		{name: "fullName missing", body: signupBody(nil, "fullName"), want: "FullName is required"},
		{name: "username missing", body: signupBody(nil, "username"), want: "Username is required"},
		{name: "email missing", body: signupBody(nil, "email"), want: "Email is required"},
		{name: "password missing", body: signupBody(nil, "password"), want: "Password is required"},

		{name: "fullName null", body: signupBody(map[string]any{"fullName": nil}), want: "Full name cannot be null or undefined"},
		{name: "username null", body: signupBody(map[string]any{"username": nil}), want: "Username cannot be null or undefined"},
		{name: "email null", body: signupBody(map[string]any{"email": nil}), want: "Email cannot be null or undefined"},
		{name: "password null", body: signupBody(map[string]any{"password": nil}), want: "Password cannot be null or undefined"},
		{name: "null beats missing", body: signupBody(map[string]any{"password": nil}, "fullName"), want: "Password cannot be null or undefined"},

		{name: "fullName number", body: signupBody(map[string]any{"fullName": 123.0}), want: "Full name must be a string"},
		{name: "username number", body: signupBody(map[string]any{"username": 123.0}), want: "Username must be a string"},
		{name: "email number", body: signupBody(map[string]any{"email": 123.0}), want: "Email must be a string"},
		{name: "password number", body: signupBody(map[string]any{"password": 123.0}), want: "Password must be a string"},

		{name: "fullName blank", body: signupBody(map[string]any{"fullName": "  "}), want: "Full name cannot be empty"},
		{name: "username blank", body: signupBody(map[string]any{"username": ""}), want: "Username cannot be empty"},
		{name: "email blank", body: signupBody(map[string]any{"email": ""}), want: "Email cannot be empty"},
		{name: "password blank", body: signupBody(map[string]any{"password": "   "}), want: "Password cannot be empty"},

		{name: "referral number", body: signupBody(map[string]any{"referallCode": 123.0}), want: "Referral code must be a string"},
		{name: "referral blank", body: signupBody(map[string]any{"referallCode": "  "}), want: "Referral code cannot be empty if provided"},
		{name: "referral short", body: signupBody(map[string]any{"referallCode": "AB"}), want: "Referral code must be between 3 and 20 characters"},
		{name: "referral long", body: signupBody(map[string]any{"referallCode": strings.Repeat("A", 21)}), want: "Referral code must be between 3 and 20 characters"},
		{name: "referral null ignored", body: signupBody(map[string]any{"referallCode": nil})},
		{name: "referral valid", body: signupBody(map[string]any{"referallCode": "INVALID"})},
		{name: "referral before lengths", body: signupBody(map[string]any{"referallCode": "AB", "fullName": "A"}), want: "Referral code must be between 3 and 20 characters"},

		{name: "fullName short", body: signupBody(map[string]any{"fullName": "A"}), want: "Full name must be at least 2 characters long"},
		{name: "fullName long", body: signupBody(map[string]any{"fullName": strings.Repeat("A", 101)}), want: "Full name is too long (maximum 100 characters)"},
		{name: "username short", body: signupBody(map[string]any{"username": "ab"}), want: "Username must be at least 3 characters long"},
		{name: "username long", body: signupBody(map[string]any{"username": strings.Repeat("a", 51)}), want: "Username is too long (maximum 50 characters)"},
		{name: "password short", body: signupBody(map[string]any{"password": "Ab1!"}), want: "Password must be at least 8 characters long"},
		{name: "password long", body: signupBody(map[string]any{"password": "Ab1!" + strings.Repeat("a", 97)}), want: "Password is too long (maximum 100 characters)"},
		{name: "multibyte counted as characters", body: signupBody(map[string]any{"fullName": "Жа"})},

		{name: "email without at", body: signupBody(map[string]any{"email": "testgmail.com"}), want: "Please provide a valid email address"},
		{name: "email without domain", body: signupBody(map[string]any{"email": "test@"}), want: "Please provide a valid email address"},
		{name: "email without local part", body: signupBody(map[string]any{"email": "@gmail.com"}), want: "Please provide a valid email address"},
		{name: "email with space", body: signupBody(map[string]any{"email": "test user@gmail.com"}), want: "Please provide a valid email address"},
		{name: "email with two ats", body: signupBody(map[string]any{"email": "a@b@gmail.com"}), want: "Please provide a valid email address"},
		{name: "email without dot", body: signupBody(map[string]any{"email": "test@gmail"}), want: "Please provide a valid email address"},
		{name: "email too long", body: signupBody(map[string]any{"email": strings.Repeat("a", 250) + "@gmail.com"}), want: "Email is too long (maximum 254 characters)"},

		{name: "username hyphen", body: signupBody(map[string]any{"username": "test-user"}), want: "Username can only contain letters, numbers, and underscores"},
		{name: "username space", body: signupBody(map[string]any{"username": "test user"}), want: "Username can only contain letters, numbers, and underscores"},
		{name: "username underscores", body: signupBody(map[string]any{"username": "test_user_123"})},

		{name: "no lowercase", body: signupBody(map[string]any{"password": "TESTPASS123!"}), want: "Password must contain at least one lowercase letter"},
		{name: "no uppercase", body: signupBody(map[string]any{"password": "testpass123!"}), want: "Password must contain at least one uppercase letter"},
		{name: "no number", body: signupBody(map[string]any{"password": "TestPass!!"}), want: "Password must contain at least one number"},
		{name: "no special", body: signupBody(map[string]any{"password": "TestPass123"}), want: "Password must contain at least one special character"},
		{name: "lowercase fixed then number missing", body: signupBody(map[string]any{"password": "tESTPASS!!"}), want: "Password must contain at least one number"},

		{name: "valid", body: signupBody(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidationMessage(t, service.ValidateSignupInput(tt.body), tt.want)
		})
	}
}

func TestParseUpdateInput(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantEmail string
		wantSet   bool
		wantMsg   string
	}{
		{name: "email string", raw: `{"email":"a@b.com"}`, wantEmail: "a@b.com", wantSet: true},
		{name: "missing email", raw: `{"username":"someone"}`},
		{name: "null email", raw: `{"email":null}`},
		{name: "no body", raw: ""},
		{name: "array body", raw: `[]`},
		{name: "numeric email", raw: `{"email":42}`, wantMsg: "Please provide a valid email address"},
		{name: "object email", raw: `{"email":{"x":1}}`, wantMsg: "Please provide a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := service.ParseUpdateInput(decodeBody(t, tt.raw))
			if tt.wantMsg != "" {
				assertValidationMessage(t, err, tt.wantMsg)
				return
			}
			require.NoError(t, err)
			if !tt.wantSet {
				assert.Nil(t, input.Email)
				return
			}
			require.NotNil(t, input.Email)
			assert.Equal(t, tt.wantEmail, *input.Email)
		})
	}
}

package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/AlibekovAA/carsle-auth/internal/common/constants"
)

const (
	msgBodyRequired = "Request body is required"
	msgInvalidEmail = "Please provide a valid email address"
	specialChars    = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// jsonObject is a decoded request body. A missing key and a key set to null are different states.
type jsonObject map[string]any

func (o jsonObject) has(key string) bool {
	_, ok := o[key]
	return ok
}

func (o jsonObject) isNull(key string) bool {
	v, ok := o[key]
	return ok && v == nil
}

func (o jsonObject) str(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}

// ValidateLoginInput reports the first violated login rule, or nil.
func ValidateLoginInput(body any) error {
	var obj jsonObject
	switch v := body.(type) {
	case map[string]any:
		obj = v
	case []any:
		obj = jsonObject{}
	default:
		return validationError(msgBodyRequired)
	}

	if !obj.has("username") {
		return validationError("Username is required")
	}
	if !obj.has("password") {
		return validationError("Password is required")
	}

	if obj.isNull("username") {
		return validationError("Username cannot be null or undefined")
	}
	if obj.isNull("password") {
		return validationError("Password cannot be null or undefined")
	}

	username, usernameIsString := obj.str("username")
	password, passwordIsString := obj.str("password")

	if usernameIsString && isBlank(username) {
		return validationError("Username cannot be empty")
	}
	if passwordIsString && isBlank(password) {
		return validationError("Password cannot be empty")
	}

	if !usernameIsString {
		return validationError("Username must be a string")
	}
	if !passwordIsString {
		return validationError("Password must be a string")
	}

	if length(username) > constants.LoginUsernameMaxLength {
		return validationError(fmt.Sprintf("Username is too long (maximum %d characters)", constants.LoginUsernameMaxLength))
	}
	if length(password) > constants.LoginPasswordMaxLength {
		return validationError(fmt.Sprintf("Password is too long (maximum %d characters)", constants.LoginPasswordMaxLength))
	}

	if length(username) < constants.LoginUsernameMinLength {
		return validationError(fmt.Sprintf("Username must be at least %d characters long", constants.LoginUsernameMinLength))
	}
	if length(password) < constants.LoginPasswordMinLength {
		return validationError(fmt.Sprintf("Password must be at least %d characters long", constants.LoginPasswordMinLength))
	}

	return nil
}

type signupField struct {
	key   string
	label string
	// required is the message for a missing key; it does not always follow label.
	required string
}

var signupFields = []signupField{
	{key: "fullName", label: "Full name", required: "FullName is required"},
	{key: "username", label: "Username", required: "Username is required"},
	{key: "email", label: "Email", required: "Email is required"},
	{key: "password", label: "Password", required: "Password is required"},
}

// ValidateSignupInput reports the first violated signup rule, or nil.
func ValidateSignupInput(body any) error {
	m, ok := body.(map[string]any)
	if !ok {
		return validationError(msgBodyRequired)
	}
	obj := jsonObject(m)

	for _, f := range signupFields {
		if obj.isNull(f.key) {
			return validationError(f.label + " cannot be null or undefined")
		}
	}
	for _, f := range signupFields {
		if !obj.has(f.key) {
			return validationError(f.required)
		}
	}
	for _, f := range signupFields {
		if _, ok := obj.str(f.key); !ok {
			return validationError(f.label + " must be a string")
		}
	}
	for _, f := range signupFields {
		if v, _ := obj.str(f.key); isBlank(v) {
			return validationError(f.label + " cannot be empty")
		}
	}

	if err := validateReferralCode(obj); err != nil {
		return err
	}

	fullName, _ := obj.str("fullName")
	username, _ := obj.str("username")
	email, _ := obj.str("email")
	password, _ := obj.str("password")

	if err := checkLength("Full name", fullName, constants.FullNameMinLength, constants.FullNameMaxLength); err != nil {
		return err
	}
	if err := checkLength("Username", username, constants.SignupUsernameMinLength, constants.SignupUsernameMaxLength); err != nil {
		return err
	}
	if err := checkLength("Password", password, constants.SignupPasswordMinLength, constants.SignupPasswordMaxLength); err != nil {
		return err
	}

	if !isValidEmail(email) {
		return validationError(msgInvalidEmail)
	}
	if length(email) > constants.EmailMaxLength {
		return validationError(fmt.Sprintf("Email is too long (maximum %d characters)", constants.EmailMaxLength))
	}

	if !usernameRegex.MatchString(username) {
		return validationError("Username can only contain letters, numbers, and underscores")
	}

	if msg := passwordStrength(password); msg != "" {
		return validationError(msg)
	}

	return nil
}

// validateReferralCode checks referallCode only when it is present and not null.
func validateReferralCode(obj jsonObject) error {
	raw, ok := obj[referralKey]
	if !ok || raw == nil {
		return nil
	}
	code, ok := raw.(string)
	if !ok {
		return validationError("Referral code must be a string")
	}
	if isBlank(code) {
		return validationError("Referral code cannot be empty if provided")
	}
	if n := length(code); n < constants.ReferralCodeMinLength || n > constants.ReferralCodeMaxLength {
		return validationError(fmt.Sprintf("Referral code must be between %d and %d characters",
			constants.ReferralCodeMinLength, constants.ReferralCodeMaxLength))
	}
	return nil
}

func checkLength(label, value string, minLen, maxLen int) error {
	n := length(value)
	if n < minLen {
		return validationError(fmt.Sprintf("%s must be at least %d characters long", label, minLen))
	}
	if n > maxLen {
		return validationError(fmt.Sprintf("%s is too long (maximum %d characters)", label, maxLen))
	}
	return nil
}

func isValidEmail(email string) bool {
	if strings.ContainsFunc(email, unicode.IsSpace) {
		return false
	}
	local, domain, found := strings.Cut(email, "@")
	if !found || strings.Contains(domain, "@") {
		return false
	}
	if local == "" || domain == "" || !strings.Contains(domain, ".") {
		return false
	}
	return emailRegex.MatchString(email)
}

func passwordStrength(password string) string {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}

	switch {
	case !lower:
		return "Password must contain at least one lowercase letter"
	case !upper:
		return "Password must contain at least one uppercase letter"
	case !digit:
		return "Password must contain at least one number"
	case !special:
		return "Password must contain at least one special character"
	}
	return ""
}

// ParseUpdateInput reads the email field of a decoded update body. A missing or null email is left
// unset; any other non-string value is a validation error.
func ParseUpdateInput(body any) (UpdateInput, error) {
	obj, ok := body.(map[string]any)
	if !ok {
		return UpdateInput{}, nil
	}

	raw, present := obj["email"]
	if !present || raw == nil {
		return UpdateInput{}, nil
	}

	email, ok := raw.(string)
	if !ok {
		return UpdateInput{}, validationError(msgInvalidEmail)
	}
	return UpdateInput{Email: &email}, nil
}

package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/carsle-auth/internal/common/errors"
)

var (
	ErrMissingCredentials = commonerrors.NewDomainError(
		"MISSING_CREDENTIALS",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Email and password are required",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"User not found",
	)

	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid credentials",
	)

	ErrUserAlreadyExists = commonerrors.NewDomainError(
		"USER_ALREADY_EXISTS",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"User already exists",
	)

	ErrAuthenticationFailed = commonerrors.NewDomainError(
		"AUTHENTICATION_FAILED",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Authentication failed",
	)

	ErrNoFieldsProvided = commonerrors.NewDomainError(
		"NO_FIELDS_PROVIDED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"At least one field (username or email) must be provided for update",
	)

	// ErrValidation carries the first violated input rule as its message.
	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrInvalidReferralCode = commonerrors.NewDomainError(
		"INVALID_REFERRAL_CODE",
		commonerrors.CategoryReferral,
		http.StatusBadRequest,
		"Invalid referral code",
	)

	ErrOTPInputRequired = commonerrors.NewDomainError(
		"OTP_INPUT_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Email and OTP are required",
	)

	ErrInvalidOTPFormat = commonerrors.NewDomainError(
		"INVALID_OTP_FORMAT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Invalid OTP format",
	)
)

func validationError(message string) error {
	return ErrValidation.WithMessage(message)
}

func newInternalError(code, message string, cause error) commonerrors.DomainError {
	err := commonerrors.NewDomainError(
		code,
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		message,
	)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}

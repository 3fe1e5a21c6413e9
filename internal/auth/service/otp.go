package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/AlibekovAA/carsle-auth/internal/common/constants"
	"github.com/AlibekovAA/carsle-auth/internal/common/logger"
)

var otpRegex = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, constants.OTPLength))

type otpInput struct {
	Email string `validate:"required"`
	OTP   string `validate:"required"`
}

// OTPService hands out one-time codes. Codes are not persisted, so verification only checks their shape.
type OTPService struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewOTPService(log *logger.Logger) *OTPService {
	return &OTPService{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (s *OTPService) GenerateOTP(ctx context.Context, email string) (string, error) {
	if err := s.validate.Var(email, "required"); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "otp_generate_validation_failed",
		}).Warn("otp generate failed: email missing")
		return "", validationError("Email is required")
	}

	otp, err := randomDigits(constants.OTPLength)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "otp_generate_failed",
		}).Errorf("otp generate failed: %v", err)
		return "", newInternalError("OTP_GENERATION_FAILED", "failed to generate otp", err)
	}

	incrementOTPGenerated()
	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "otp_generated",
	}).Info("otp generated")

	return otp, nil
}

func (s *OTPService) VerifyOTP(ctx context.Context, email, otp string) error {
	if err := s.validate.Struct(otpInput{Email: email, OTP: otp}); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "otp_verify_validation_failed",
		}).Warn("otp verify failed: missing input")
		return ErrOTPInputRequired
	}

	if !otpRegex.MatchString(otp) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "otp_verify_invalid_format",
		}).Warn("otp verify failed: invalid format")
		return ErrInvalidOTPFormat
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "otp_verified",
	}).Info("otp verified")

	return nil
}

// randomDigits returns n digits with no leading zero.
func randomDigits(n int) (string, error) {
	lo := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n-1)), nil)
	span := new(big.Int).Sub(new(big.Int).Mul(lo, big.NewInt(10)), lo)

	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return v.Add(v, lo).String(), nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AlibekovAA/carsle-auth/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/carsle-auth/internal/common/crypto"
	"github.com/AlibekovAA/carsle-auth/internal/common/logger"
	"github.com/AlibekovAA/carsle-auth/internal/common/token"
	userdomain "github.com/AlibekovAA/carsle-auth/internal/user/domain"
	userrepo "github.com/AlibekovAA/carsle-auth/internal/user/repository"
)

type TokenService interface {
	Issue(payload *token.Payload) (string, error)
	Verify(raw string) (token.Claims, error)
}

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Hasher      commoncrypto.PasswordHasher
	Tokens      TokenService
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Referrals   ReferralChecker
	Log         *logger.Logger
}

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	tokens      TokenService
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	referrals   ReferralChecker
	validate    *validator.Validate
	log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	referrals := deps.Referrals
	if referrals == nil {
		referrals = AcceptAllReferrals{}
	}
	return &AuthService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		tokens:      deps.Tokens,
		idGenerator: deps.IDGenerator,
		clock:       clk,
		referrals:   referrals,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		log:         deps.Log,
	}
}

type LoginInput struct {
	// Identifier is an email when it contains "@", otherwise a username.
	Identifier string
	Password   string
}

type LoginResult struct {
	Token string
}

type SignupInput struct {
	FullName     string
	Username     string
	Email        string
	Password     string
	ReferralCode string
}

type SignupResult struct {
	Token string
	User  userdomain.Profile
}

type UpdateInput struct {
	Email *string
}

type updateEmail struct {
	Email string `validate:"required,email"`
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"identifier": input.Identifier,
		"action":     "login_attempt",
	}).Info("login attempt")

	if input.Identifier == "" || input.Password == "" {
		s.log.WithFields(ctx, logger.Fields{
			"action": "login_missing_credentials",
		}).Warn("login failed: missing credentials")
		recordOperation("login", outcomeFailure)
		return LoginResult{}, ErrMissingCredentials
	}

	user, err := s.findByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"identifier": input.Identifier,
				"action":     "login_user_not_found",
			}).Warn("login failed: not found")
			recordOperation("login", outcomeFailure)
			return LoginResult{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.Identifier,
			"action":     "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		recordOperation("login", outcomeError)
		return LoginResult{}, newInternalError("DB_ERROR", "failed to fetch user", err)
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_verify_failed",
		}).Errorf("login failed: password verify error: %v", err)
		recordOperation("login", outcomeError)
		return LoginResult{}, newInternalError("PASSWORD_VERIFY_FAILED", "failed to verify password", err)
	}
	if !ok {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_invalid_password",
		}).Warn("login failed: invalid password")
		recordOperation("login", outcomeFailure)
		return LoginResult{}, ErrInvalidCredentials
	}

	raw, err := s.issueToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		recordOperation("login", outcomeError)
		return LoginResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")
	recordOperation("login", outcomeSuccess)

	return LoginResult{Token: raw}, nil
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (SignupResult, error) {
	email := normalizeEmail(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"email":    email,
		"action":   "signup_attempt",
	}).Info("signup attempt")

	if email == "" || input.Password == "" {
		s.log.WithFields(ctx, logger.Fields{
			"action": "signup_missing_credentials",
		}).Warn("signup failed: missing credentials")
		recordOperation("signup", outcomeFailure)
		return SignupResult{}, ErrMissingCredentials
	}

	if input.ReferralCode != "" {
		if err := s.referrals.Check(ctx, input.ReferralCode); err != nil {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "signup_referral_rejected",
			}).Warnf("signup failed: referral rejected: %v", err)
			recordOperation("signup", outcomeFailure)
			return SignupResult{}, ErrInvalidReferralCode.WithCause(err)
		}
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_email_exists",
		}).Warn("signup failed: already exists")
		recordOperation("signup", outcomeFailure)
		return SignupResult{}, ErrUserAlreadyExists
	case !errors.Is(err, userrepo.ErrUserNotFound):
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_lookup_failed",
		}).Errorf("signup failed: %v", err)
		recordOperation("signup", outcomeError)
		return SignupResult{}, newInternalError("DB_ERROR", "failed to look up user", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		recordOperation("signup", outcomeError)
		return SignupResult{}, newInternalError("PASSWORD_HASH_FAILED", "failed to hash password", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_id_generation_failed",
		}).Errorf("signup failed: id generation error: %v", err)
		recordOperation("signup", outcomeError)
		return SignupResult{}, newInternalError("ID_GENERATION_FAILED", "failed to generate user id", err)
	}

	user, err := s.repo.Create(ctx, userdomain.User{
		ID:           userdomain.ID(id),
		FullName:     input.FullName,
		Username:     input.Username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) || errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"email":    email,
				"action":   "signup_unique_violation",
			}).Warnf("signup failed: %v", err)
			recordOperation("signup", outcomeFailure)
			return SignupResult{}, ErrUserAlreadyExists.WithCause(err)
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		recordOperation("signup", outcomeError)
		return SignupResult{}, newInternalError("DB_ERROR", "failed to create user", err)
	}

	raw, err := s.issueToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "signup_token_issue_failed",
		}).Errorf("signup failed: token issue error: %v", err)
		recordOperation("signup", outcomeError)
		return SignupResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id":  string(user.ID),
		"username": user.Username,
		"action":   "signup_success",
	}).Info("signup success")
	recordOperation("signup", outcomeSuccess)

	return SignupResult{Token: raw, User: user.Profile()}, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, rawToken string) (userdomain.Profile, error) {
	user, err := s.authenticate(ctx, rawToken, "get_current_user")
	if err != nil {
		return userdomain.Profile{}, err
	}

	recordOperation("get_current_user", outcomeSuccess)
	return user.Profile(), nil
}

func (s *AuthService) UpdateUser(ctx context.Context, rawToken string, input UpdateInput) (userdomain.Profile, error) {
	user, err := s.authenticate(ctx, rawToken, "update_user")
	if err != nil {
		return userdomain.Profile{}, err
	}

	return s.UpdateProfile(ctx, user, input)
}

// Authenticate resolves the token to the stored user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (userdomain.User, error) {
	return s.authenticate(ctx, rawToken, "authenticate")
}

// UpdateProfile applies input to a user already resolved by Authenticate.
func (s *AuthService) UpdateProfile(ctx context.Context, user userdomain.User, input UpdateInput) (userdomain.Profile, error) {
	if input.Email == nil || strings.TrimSpace(*input.Email) == "" {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "update_user_no_fields",
		}).Warn("update user failed: no fields provided")
		recordOperation("update_user", outcomeFailure)
		return userdomain.Profile{}, ErrNoFieldsProvided
	}

	email := normalizeEmail(*input.Email)
	if err := s.validate.Struct(updateEmail{Email: email}); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "update_user_invalid_email",
		}).Warnf("update user failed: %v", err)
		recordOperation("update_user", outcomeFailure)
		return userdomain.Profile{}, validationError(msgInvalidEmail)
	}

	updated, err := s.repo.UpdateEmail(ctx, user.ID, email)
	if err != nil {
		switch {
		case errors.Is(err, userrepo.ErrEmailAlreadyExists):
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(user.ID),
				"action":  "update_user_email_exists",
			}).Warn("update user failed: email already exists")
			recordOperation("update_user", outcomeFailure)
			return userdomain.Profile{}, ErrUserAlreadyExists.WithCause(err)
		case errors.Is(err, userrepo.ErrUserNotFound):
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(user.ID),
				"action":  "update_user_not_found",
			}).Warn("update user failed: user vanished")
			recordOperation("update_user", outcomeFailure)
			return userdomain.Profile{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "update_user_failed",
		}).Errorf("update user failed: %v", err)
		recordOperation("update_user", outcomeError)
		return userdomain.Profile{}, newInternalError("DB_ERROR", "failed to update user", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "update_user_success",
	}).Info("update user success")
	recordOperation("update_user", outcomeSuccess)

	return updated.Profile(), nil
}

func (s *AuthService) DeleteUser(ctx context.Context, rawToken string) error {
	user, err := s.authenticate(ctx, rawToken, "delete_user")
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(user.ID),
				"action":  "delete_user_not_found",
			}).Warn("delete user failed: user vanished")
			recordOperation("delete_user", outcomeFailure)
			return ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "delete_user_failed",
		}).Errorf("delete user failed: %v", err)
		recordOperation("delete_user", outcomeError)
		return newInternalError("DB_ERROR", "failed to delete user", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "delete_user_success",
	}).Info("delete user success")
	recordOperation("delete_user", outcomeSuccess)

	return nil
}

// authenticate resolves the bearer token to a stored user.
func (s *AuthService) authenticate(ctx context.Context, rawToken, operation string) (userdomain.User, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": operation + "_invalid_token",
		}).Warnf("%s failed: %v", operation, err)
		recordOperation(operation, outcomeFailure)
		return userdomain.User{}, ErrAuthenticationFailed.WithCause(err)
	}

	user, err := s.repo.FindByID(ctx, userdomain.ID(claims.UserID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": claims.UserID,
				"action":  operation + "_user_not_found",
			}).Warn(operation + " failed: user no longer exists")
			recordOperation(operation, outcomeFailure)
			return userdomain.User{}, ErrAuthenticationFailed.WithCause(err)
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": claims.UserID,
			"action":  operation + "_fetch_failed",
		}).Errorf("%s failed: %v", operation, err)
		recordOperation(operation, outcomeError)
		return userdomain.User{}, newInternalError("DB_ERROR", "failed to fetch user", err)
	}

	return user, nil
}

func (s *AuthService) findByIdentifier(ctx context.Context, identifier string) (userdomain.User, error) {
	if strings.Contains(identifier, "@") {
		return s.repo.FindByEmail(ctx, normalizeEmail(identifier))
	}
	return s.repo.FindByUsername(ctx, identifier)
}

func (s *AuthService) issueToken(user userdomain.User) (string, error) {
	raw, err := s.tokens.Issue(&token.Payload{UserID: string(user.ID), Email: user.Email})
	if err != nil {
		return "", newInternalError("TOKEN_ISSUE_FAILED", "failed to issue token", err)
	}
	return raw, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package http

import (
	"errors"
	"net/http"

	"github.com/AlibekovAA/carsle-auth/internal/auth/service"
	commonerrors "github.com/AlibekovAA/carsle-auth/internal/common/errors"
)

const (
	msgInvalidLogin      = "Invalid email or password"
	msgUserExists        = "User already exists"
	msgInvalidReferral   = "Invalid referral code"
	msgAuthFailed        = "Authentication failed"
	msgInternalServerErr = "Internal server error"
)

func messageOf(err error) string {
	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		return domainErr.Message()
	}
	return msgInternalServerErr
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if domainErr, ok := commonerrors.AsDomainError(err); ok && domainErr.Category() == commonerrors.CategoryValidation {
		h.errors.Write(w, r, domainErr.HTTPStatus(), domainErr.Message(), err)
		return
	}
	h.errors.Write(w, r, http.StatusInternalServerError, msgInternalServerErr, err)
}

// writeLoginError hides which credential check failed.
func (h *Handler) writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrMissingCredentials) {
		h.errors.Write(w, r, http.StatusUnauthorized, msgInvalidLogin, err)
		return
	}

	switch commonerrors.CategoryOf(err) {
	case commonerrors.CategoryNotFound, commonerrors.CategoryUnauthorized:
		h.errors.Write(w, r, http.StatusUnauthorized, msgInvalidLogin, err)
	case commonerrors.CategoryValidation:
		h.errors.Write(w, r, http.StatusBadRequest, messageOf(err), err)
	case commonerrors.CategoryInternal:
		h.errors.Write(w, r, http.StatusInternalServerError, msgInternalServerErr, err)
	default:
		h.errors.Write(w, r, http.StatusBadRequest, messageOf(err), err)
	}
}

func (h *Handler) writeSignupError(w http.ResponseWriter, r *http.Request, err error) {
	switch commonerrors.CategoryOf(err) {
	case commonerrors.CategoryValidation:
		h.errors.Write(w, r, http.StatusBadRequest, messageOf(err), err)
	case commonerrors.CategoryConflict:
		h.errors.Write(w, r, http.StatusConflict, msgUserExists, err)
	case commonerrors.CategoryReferral:
		h.errors.Write(w, r, http.StatusBadRequest, msgInvalidReferral, err)
	case commonerrors.CategoryInternal:
		h.errors.Write(w, r, http.StatusInternalServerError, msgInternalServerErr, err)
	default:
		h.errors.Write(w, r, http.StatusBadRequest, messageOf(err), err)
	}
}

// writeAccountError maps failures of the bearer-authenticated /me endpoints.
func (h *Handler) writeAccountError(w http.ResponseWriter, r *http.Request, err error) {
	switch commonerrors.CategoryOf(err) {
	case commonerrors.CategoryUnauthorized, commonerrors.CategoryNotFound:
		h.errors.Write(w, r, http.StatusUnauthorized, msgAuthFailed, err)
	case commonerrors.CategoryValidation:
		h.errors.Write(w, r, http.StatusBadRequest, messageOf(err), err)
	case commonerrors.CategoryConflict:
		h.errors.Write(w, r, http.StatusConflict, msgUserExists, err)
	case commonerrors.CategoryInternal:
		h.errors.Write(w, r, http.StatusInternalServerError, msgInternalServerErr, err)
	default:
		h.errors.Write(w, r, http.StatusBadRequest, messageOf(err), err)
	}
}

func (h *Handler) writeOTPError(w http.ResponseWriter, r *http.Request, err error) {
	if commonerrors.CategoryOf(err) == commonerrors.CategoryInternal {
		h.errors.Write(w, r, http.StatusInternalServerError, msgInternalServerErr, err)
		return
	}
	h.errors.Write(w, r, http.StatusBadRequest, messageOf(err), err)
}

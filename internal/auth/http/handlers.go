package http

import (
	"net/http"

	"github.com/AlibekovAA/carsle-auth/internal/auth/service"
	commonhttp "github.com/AlibekovAA/carsle-auth/internal/common/http"
	"github.com/AlibekovAA/carsle-auth/internal/common/token"
	"github.com/AlibekovAA/carsle-auth/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/carsle-auth/internal/user/domain"
)

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type signupResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    userdomain.Profile `json:"user"`
}

type userResponse struct {
	Success bool               `json:"success"`
	User    userdomain.Profile `json:"user"`
}

type otpResponse struct {
	Success bool   `json:"success"`
	OTP     string `json:"otp"`
	Message string `json:"message"`
}

type otpGenerateRequest struct {
	Email string `json:"email"`
}

type otpVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) signupHealth(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteMessage(w, http.StatusOK, "SignUp endpoint is available")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	body, err := commonhttp.DecodeJSONBody(r)
	if err != nil {
		h.writeDecodeError(w, r, err)
		return
	}

	if err := service.ValidateLoginInput(body); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("login").Inc()
		h.writeLoginError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Identifier: stringField(body, "username"),
		Password:   stringField(body, "password"),
	})
	if err != nil {
		h.writeLoginError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
	})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	body, err := commonhttp.DecodeJSONBody(r)
	if err != nil {
		h.writeDecodeError(w, r, err)
		return
	}

	if err := service.ValidateSignupInput(body); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("signup").Inc()
		h.writeSignupError(w, r, err)
		return
	}

	result, err := h.auth.Signup(r.Context(), service.SignupInput{
		FullName:     stringField(body, "fullName"),
		Username:     stringField(body, "username"),
		Email:        stringField(body, "email"),
		Password:     stringField(body, "password"),
		ReferralCode: stringField(body, "referallCode"),
	})
	if err != nil {
		h.writeSignupError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, signupResponse{
		Success: true,
		Message: "signup successful",
		Token:   result.Token,
		User:    result.User,
	})
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	profile, err := h.auth.GetCurrentUser(r.Context(), bearerToken(r))
	if err != nil {
		h.writeAccountError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, userResponse{Success: true, User: profile})
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), bearerToken(r))
	if err != nil {
		h.writeAccountError(w, r, err)
		return
	}

	body, err := commonhttp.DecodeJSONBody(r)
	if err != nil {
		h.writeDecodeError(w, r, err)
		return
	}

	input, err := service.ParseUpdateInput(body)
	if err != nil {
		h.writeAccountError(w, r, err)
		return
	}

	profile, err := h.auth.UpdateProfile(r.Context(), user, input)
	if err != nil {
		h.writeAccountError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, userResponse{Success: true, User: profile})
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.DeleteUser(r.Context(), bearerToken(r)); err != nil {
		h.writeAccountError(w, r, err)
		return
	}

	commonhttp.WriteMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *Handler) generateOTP(w http.ResponseWriter, r *http.Request) {
	var req otpGenerateRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(w, r, err)
		return
	}

	otp, err := h.otp.GenerateOTP(r.Context(), req.Email)
	if err != nil {
		h.writeOTPError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, otpResponse{
		Success: true,
		OTP:     otp,
		Message: "OTP generated successfully",
	})
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpVerifyRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.writeDecodeError(w, r, err)
		return
	}

	if err := h.otp.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		h.writeOTPError(w, r, err)
		return
	}

	commonhttp.WriteMessage(w, http.StatusOK, "OTP verified successfully")
}

// bearerToken returns the token from the Authorization header, or "" so the service reports the failure.
func bearerToken(r *http.Request) string {
	raw, err := token.ExtractFromAuthHeader(r.Header.Get("Authorization"))
	if err != nil {
		return ""
	}
	return raw
}

func stringField(body any, key string) string {
	obj, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := obj[key].(string)
	return s
}

package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// AuthHandler handles sign-up, sign-in and the password reset endpoints.
type AuthHandler struct {
	authSvc  services.AuthServiceProvider
	resetSvc services.PasswordResetServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc services.AuthServiceProvider, resetSvc services.PasswordResetServiceProvider) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, resetSvc: resetSvc}
}

// SignUpPayload defines the structure for registration requests.
type SignUpPayload struct {
	Username  string   `json:"username" validate:"required,min=3"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     string   `json:"phone" validate:"required"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Password  string   `json:"password" validate:"required,min=8"`
	Roles     []string `json:"roles" validate:"required,min=1"`
}

// SignInPayload defines the structure for login requests.
type SignInPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignUp handles new user registration.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var payload SignUpPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	token, userID, err := h.authSvc.SignUp(services.Registration{
		Username:  payload.Username,
		Email:     payload.Email,
		Phone:     payload.Phone,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Password:  payload.Password,
		Roles:     payload.Roles,
	})
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"token":  token,
		"userId": userID,
	})
}

// SignIn handles user authentication and token issuance.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var payload SignInPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	token, userID, err := h.authSvc.SignIn(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":  token,
		"userId": userID,
	})
}

// ForgotPassword kicks off the reset flow for the account behind ?email=.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, apperr.ErrInvalidInput)
		return
	}

	if err := h.resetSvc.SendResetEmail(r.Context(), email); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to send reset mail")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Reset email sent"})
}

// ResetPassword consumes ?token= and ?newPassword= to set a new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	newPassword := r.URL.Query().Get("newPassword")
	if token == "" || newPassword == "" {
		writeError(w, apperr.ErrInvalidInput)
		return
	}

	if err := h.resetSvc.ResetPassword(token, newPassword); err != nil {
		log.Warn().Err(err).Msg("Failed password reset attempt")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

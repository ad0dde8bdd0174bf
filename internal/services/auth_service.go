package services

import (
	"fmt"

	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/auth"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Registration carries the fields required to create an account.
type Registration struct {
	Username  string
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Password  string
	Roles     []string
}

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	SignUp(reg Registration) (token string, userID string, err error)
	SignIn(username, password string) (token string, userID string, err error)
}

// AuthService orchestrates sign-up and sign-in over the credential store and
// the token issuer.
type AuthService struct {
	users    UserServiceProvider
	issuer   *auth.TokenIssuer
	eventSvc EventServiceProvider
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserServiceProvider, issuer *auth.TokenIssuer, eventSvc EventServiceProvider) *AuthService {
	return &AuthService{users: users, issuer: issuer, eventSvc: eventSvc}
}

// SignUp creates a user with the requested roles and issues a session token.
// Every requested role must already exist; unknown names fail the whole
// registration with apperr.ErrRoleNotFound.
func (s *AuthService) SignUp(reg Registration) (string, string, error) {
	user, err := s.users.CreateUser(models.User{
		Username:  reg.Username,
		Email:     reg.Email,
		Phone:     reg.Phone,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
	}, reg.Password, reg.Roles)
	if err != nil {
		return "", "", err
	}

	token, err := s.issuer.Issue(user, user.Roles)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user.ID, nil
}

// SignIn verifies credentials and issues a session token. Unknown username
// and wrong password are indistinguishable to the caller; disabled accounts
// are reported separately.
func (s *AuthService) SignIn(username, password string) (string, string, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return "", "", apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.eventSvc.CreateEvent("auth.signin.fail", "warn", fmt.Sprintf("Failed sign-in for '%s'.", username), &user.ID)
		return "", "", apperr.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", apperr.ErrAccountDisabled
	}

	token, err := s.issuer.Issue(user, user.Roles)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user.ID, nil
}

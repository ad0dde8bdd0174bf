package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *UserService) {
	t.Helper()

	db := newTestDB(t)
	eventSvc := NewEventService(db)
	users := NewUserService(db, eventSvc)
	return NewAuthService(users, newTestIssuer(), eventSvc), users
}

func TestSignUp_Success(t *testing.T) {
	authSvc, users := newAuthFixture(t)

	token, userID, err := authSvc.SignUp(Registration{
		Username:  "bsmith",
		Email:     "bsmith@school.test",
		Phone:     "+7-700-000-0001",
		FirstName: "Bob",
		LastName:  "Smith",
		Password:  "s3cret-pass",
		Roles:     []string{"teacher"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, userID)

	user, err := users.GetUserByID(userID)
	require.NoError(t, err)
	assert.Equal(t, "bsmith", user.Username)
	assert.True(t, user.IsActive)
	assert.Equal(t, []string{models.RoleTeacher}, user.Roles)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	authSvc, _ := newAuthFixture(t)

	reg := Registration{
		Username: "dupe",
		Email:    "dupe@school.test",
		Phone:    "+7-700-000-0002",
		Password: "password1",
		Roles:    []string{"student"},
	}
	_, _, err := authSvc.SignUp(reg)
	require.NoError(t, err)

	reg.Email = "other@school.test"
	reg.Phone = "+7-700-000-0003"
	_, _, err = authSvc.SignUp(reg)
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
}

func TestSignUp_UnknownRole(t *testing.T) {
	authSvc, users := newAuthFixture(t)

	_, _, err := authSvc.SignUp(Registration{
		Username: "norole",
		Email:    "norole@school.test",
		Phone:    "+7-700-000-0004",
		Password: "password1",
		Roles:    []string{"janitor"},
	})
	assert.ErrorIs(t, err, apperr.ErrRoleNotFound)

	_, err = users.GetUserByUsername("norole")
	assert.ErrorIs(t, err, apperr.ErrNotFound, "failed registration must not leave a user row")
}

func TestSignIn_Success(t *testing.T) {
	authSvc, users := newAuthFixture(t)
	user := createTestUser(t, users, "carol", "carol-pass", "student")

	token, userID, err := authSvc.SignIn("carol", "carol-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	claims, err := newTestIssuer().Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "carol", claims.Subject)
	assert.Equal(t, []string{models.RoleStudent}, claims.Roles)
}

func TestSignIn_WrongPassword(t *testing.T) {
	authSvc, users := newAuthFixture(t)
	createTestUser(t, users, "dave", "right-pass", "student")

	_, _, err := authSvc.SignIn("dave", "wrong-pass")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestSignIn_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	authSvc, _ := newAuthFixture(t)

	_, _, err := authSvc.SignIn("nobody", "whatever")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestSignIn_DisabledAccount(t *testing.T) {
	authSvc, users := newAuthFixture(t)
	user := createTestUser(t, users, "erin", "erin-pass", "teacher")

	require.NoError(t, users.SetActive(user.ID, false))

	_, _, err := authSvc.SignIn("erin", "erin-pass")
	assert.ErrorIs(t, err, apperr.ErrAccountDisabled)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:       "user-123",
		Username: "alice",
		Email:    "alice@ex.com",
	}
}

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), time.Hour)
	roles := []string{models.RoleTeacher}

	token, err := issuer.Issue(testUser(), roles)
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "alice@ex.com", claims.Email)
	assert.Equal(t, roles, claims.Roles)
	assert.True(t, claims.ExpiresAt.Time.After(claims.IssuedAt.Time))
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("secret"), time.Hour)

	token, err := issuer.Issue(testUser(), nil)
	require.NoError(t, err)

	// Move the issuer's clock past the token's validity window.
	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, apperr.ErrTokenExpired)
}

func TestValidate_WrongKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("right-secret"), time.Hour)
	token, err := issuer.Issue(testUser(), nil)
	require.NoError(t, err)

	other := NewTokenIssuer([]byte("wrong-secret"), time.Hour)
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("k"), time.Hour)
	_, err := issuer.Validate("not.a.jwt")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

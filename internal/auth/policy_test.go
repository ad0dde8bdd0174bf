package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

func TestDefaultPolicy_Allows(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	cases := []struct {
		name  string
		path  string
		roles []string
		want  bool
	}{
		{"admin reaches user management", "/api/v1/users", []string{models.RoleAdmin}, true},
		{"teacher blocked from user management", "/api/v1/users/42", []string{models.RoleTeacher}, false},
		{"student blocked from roles", "/api/v1/roles", []string{models.RoleStudent}, false},
		{"director reaches employees", "/api/v1/employees", []string{models.RoleDirector}, true},
		{"teacher blocked from employees", "/api/v1/employees/7", []string{models.RoleTeacher}, false},
		{"director reaches classes", "/api/v1/classes/1/schedules", []string{models.RoleDirector}, true},
		{"parent blocked from classes", "/api/v1/classes", []string{models.RoleParent}, false},
		{"unmatched path open to anyone", "/api/v1/marks", []string{models.RoleStudent}, true},
		{"unmatched path open with no roles", "/api/v1/homework", nil, true},
		{"one matching role among several", "/api/v1/users", []string{models.RoleTeacher, models.RoleAdmin}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.Allows(tc.path, tc.roles))
		})
	}
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	t.Parallel()

	policy := NewPolicy([]Rule{
		{Prefix: "/api/v1/users/reports", Roles: []string{models.RoleDirector}},
		{Prefix: "/api/v1/users", Roles: []string{models.RoleAdmin}},
	})

	assert.True(t, policy.Allows("/api/v1/users/reports", []string{models.RoleDirector}))
	assert.False(t, policy.Allows("/api/v1/users/reports", []string{models.RoleAdmin}))
	assert.True(t, policy.Allows("/api/v1/users/42", []string{models.RoleAdmin}))
}

func TestPolicy_EmptyRoleListMeansAnyAuthenticated(t *testing.T) {
	t.Parallel()

	policy := NewPolicy([]Rule{{Prefix: "/api/v1/open"}})
	assert.True(t, policy.Allows("/api/v1/open", []string{models.RoleStudent}))
	assert.True(t, policy.Allows("/api/v1/open", nil))
}

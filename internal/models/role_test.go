package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"admin", "ROLE_ADMIN"},
		{"Teacher", "ROLE_TEACHER"},
		{"ROLE_STUDENT", "ROLE_STUDENT"},
		{"role_parent", "ROLE_PARENT"},
		{"  director  ", "ROLE_DIRECTOR"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanonicalRole(tc.in), "input %q", tc.in)
	}
}

package models

import "strings"

// RolePrefix is prepended to every canonical role name exposed as an authority.
const RolePrefix = "ROLE_"

// Built-in role names, canonical form.
const (
	RoleAdmin    = "ROLE_ADMIN"
	RoleDirector = "ROLE_DIRECTOR"
	RoleTeacher  = "ROLE_TEACHER"
	RoleStudent  = "ROLE_STUDENT"
	RoleParent   = "ROLE_PARENT"
)

// Role is a named permission group attached to users.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CanonicalRole normalizes a role name to its canonical form: upper-case
// with the ROLE_ prefix applied exactly once.
func CanonicalRole(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(name, RolePrefix) {
		name = RolePrefix + name
	}
	return name
}

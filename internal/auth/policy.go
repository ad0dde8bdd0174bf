package auth

import (
	"net/http"
	"strings"

	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// Rule maps a route-path prefix to the roles allowed to reach it. An empty
// Roles slice means any authenticated identity.
type Rule struct {
	Prefix string
	Roles  []string
}

// Policy is a fixed ordered rule list evaluated first-match.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from an ordered rule list.
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy is the route access table for the API: admin-only management
// surfaces, director-or-admin school structure surfaces, everything else open
// to any authenticated user.
func DefaultPolicy() *Policy {
	return NewPolicy([]Rule{
		{Prefix: "/api/v1/users", Roles: []string{models.RoleAdmin}},
		{Prefix: "/api/v1/roles", Roles: []string{models.RoleAdmin}},
		{Prefix: "/api/v1/employees", Roles: []string{models.RoleAdmin, models.RoleDirector}},
		{Prefix: "/api/v1/classes", Roles: []string{models.RoleAdmin, models.RoleDirector}},
	})
}

// Allows reports whether an identity holding the given roles may access path.
// The first rule whose prefix matches decides; no matching rule means any
// authenticated identity is allowed.
func (p *Policy) Allows(path string, roles []string) bool {
	for _, rule := range p.rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if len(rule.Roles) == 0 {
			return true
		}
		for _, required := range rule.Roles {
			for _, held := range roles {
				if held == required {
					return true
				}
			}
		}
		return false
	}
	return true
}

// RequirePolicy returns a middleware enforcing the policy against the
// authenticated claims. Must be mounted after Middleware.
func RequirePolicy(policy *Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}
			if !policy.Allows(r.URL.Path, claims.Roles) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
)

func TestDecide(t *testing.T) {
	admin := &domain.Identity{UserID: "u-1", Username: "admin", RoleID: domain.RoleAdmin}
	subAdmin := &domain.Identity{UserID: "u-2", Username: "sub", RoleID: domain.RoleSubAdmin}
	noRole := &domain.Identity{UserID: "u-3", Username: "norole"}

	tests := []struct {
		name        string
		requirement auth.Requirement
		identity    *domain.Identity
		want        auth.Decision
	}{
		{"public without identity", auth.Public(), nil, auth.Allow},
		{"public with identity", auth.Public(), admin, auth.Allow},
		{"authenticated without identity", auth.Authenticated(), nil, auth.DenyUnauthenticated},
		{"authenticated with identity", auth.Authenticated(), subAdmin, auth.Allow},
		{"roles without identity", auth.Roles(domain.RoleAdmin), nil, auth.DenyUnauthenticated},
		{"roles with member", auth.Roles(domain.RoleAdmin), admin, auth.Allow},
		{"roles with non member", auth.Roles(domain.RoleAdmin), subAdmin, auth.DenyForbidden},
		{"roles with either role", auth.Roles(domain.RoleAdmin, domain.RoleSubAdmin), subAdmin, auth.Allow},
		{"roles with missing role claim", auth.Roles(domain.RoleAdmin), noRole, auth.DenyForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Decide(tt.requirement, tt.identity))
			// Decision is a pure function: a second call with identical
			// inputs must agree.
			assert.Equal(t, tt.want, auth.Decide(tt.requirement, tt.identity))
		})
	}
}

func TestRouteRegistryResolve(t *testing.T) {
	reg := auth.NewRouteRegistry()
	reg.Group("/users", auth.Roles(domain.RoleAdmin))
	reg.Group("/auth", auth.Public())
	reg.Route("POST", "/users/register", auth.Public())
	reg.Route("GET", "/users/details", auth.Roles(domain.RoleAdmin, domain.RoleSubAdmin))
	reg.Route("POST", "/auth/password/change", auth.Authenticated())

	subAdmin := &domain.Identity{UserID: "u-2", Username: "sub", RoleID: domain.RoleSubAdmin}

	t.Run("route declaration overrides group", func(t *testing.T) {
		req := reg.Resolve("POST", "/users/register")
		assert.Equal(t, auth.RequirePublic, req.Kind())

		req = reg.Resolve("GET", "/users/details")
		assert.Equal(t, auth.Allow, auth.Decide(req, subAdmin))

		req = reg.Resolve("POST", "/auth/password/change")
		assert.Equal(t, auth.RequireAuthenticated, req.Kind())
	})

	t.Run("group default applies to undeclared routes", func(t *testing.T) {
		req := reg.Resolve("GET", "/users/details/bob")
		assert.Equal(t, auth.DenyForbidden, auth.Decide(req, subAdmin))

		req = reg.Resolve("DELETE", "/users/delete/bob")
		assert.Equal(t, auth.RequireRoles, req.Kind())

		req = reg.Resolve("POST", "/auth/login")
		assert.Equal(t, auth.RequirePublic, req.Kind())
	})

	t.Run("method distinguishes declarations", func(t *testing.T) {
		// Only POST /users/register is public; another method falls back
		// to the group default.
		req := reg.Resolve("GET", "/users/register")
		assert.Equal(t, auth.RequireRoles, req.Kind())
	})

	t.Run("undeclared route fails closed", func(t *testing.T) {
		req := reg.Resolve("GET", "/reports")
		assert.Equal(t, auth.RequireAuthenticated, req.Kind())
		assert.Equal(t, auth.DenyUnauthenticated, auth.Decide(req, nil))
	})

	t.Run("group prefix does not match partial segment", func(t *testing.T) {
		req := reg.Resolve("GET", "/usersextra")
		assert.Equal(t, auth.RequireAuthenticated, req.Kind())
	})
}

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-admin-service/internal/api/http"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/observability"
)

func newGuardedApp(t *testing.T, tm *auth.TokenManager) *fiber.App {
	t.Helper()

	reg := auth.NewRouteRegistry()
	reg.Route(fiber.MethodGet, "/public", auth.Public())
	reg.Route(fiber.MethodGet, "/secure", auth.Authenticated())
	reg.Route(fiber.MethodGet, "/admin", auth.Roles(domain.RoleAdmin))

	guard := auth.NewGuard(tm, reg, zap.NewNop())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Use(guard.Handle)

	echo := func(c *fiber.Ctx) error {
		if identity, ok := auth.IdentityFromContext(c); ok {
			return c.JSON(fiber.Map{"username": identity.Username})
		}
		return c.JSON(fiber.Map{"username": nil})
	}
	app.Get("/public", echo)
	app.Get("/secure", echo)
	app.Get("/admin", echo)
	app.Get("/undeclared", echo)

	return app
}

func issueToken(t *testing.T, tm *auth.TokenManager, identity domain.Identity) string {
	t.Helper()
	token, _, err := tm.Issue(identity)
	require.NoError(t, err)
	return token
}

func TestGuard(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	app := newGuardedApp(t, tm)

	adminToken := issueToken(t, tm, domain.Identity{UserID: "u-1", Username: "admin", RoleID: domain.RoleAdmin})
	subToken := issueToken(t, tm, domain.Identity{UserID: "u-2", Username: "sub", RoleID: domain.RoleSubAdmin})

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{"public route without header", "/public", "", http.StatusOK},
		{"public route skips token validation", "/public", "Bearer not-even-a-token", http.StatusOK},
		{"protected route without header", "/secure", "", http.StatusUnauthorized},
		{"protected route with valid token", "/secure", "Bearer " + subToken, http.StatusOK},
		{"protected route with malformed token", "/secure", "Bearer garbage", http.StatusUnauthorized},
		{"protected route with malformed header", "/secure", "Basic abc", http.StatusUnauthorized},
		{"admin route with admin token", "/admin", "Bearer " + adminToken, http.StatusOK},
		{"admin route with sub-admin token", "/admin", "Bearer " + subToken, http.StatusForbidden},
		{"admin route without token", "/admin", "", http.StatusUnauthorized},
		{"undeclared route fails closed", "/undeclared", "", http.StatusUnauthorized},
		{"undeclared route allows authenticated", "/undeclared", "Bearer " + subToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestGuardRoleClaimAbsent(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	app := newGuardedApp(t, tm)

	// Valid token whose identity carries no role claim: a normal deny,
	// not a fault.
	token := issueToken(t, tm, domain.Identity{UserID: "u-3", Username: "norole"})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

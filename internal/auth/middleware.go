package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/domain"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

const identityKey = "auth_identity"

// Guard is the request pipeline adapter: it resolves the route's access
// requirement, validates the bearer token when one is needed, and runs the
// access decision before any business handler.
type Guard struct {
	tokens   *TokenManager
	registry *RouteRegistry
	logger   *zap.Logger
}

// NewGuard constructs the guard middleware.
func NewGuard(tokens *TokenManager, registry *RouteRegistry, logger *zap.Logger) *Guard {
	return &Guard{tokens: tokens, registry: registry, logger: logger}
}

// Registry exposes the route registry for registration-time declarations.
func (g *Guard) Registry() *RouteRegistry {
	return g.registry
}

// Handle intercepts every inbound request before its handler runs.
func (g *Guard) Handle(c *fiber.Ctx) error {
	requirement := g.registry.Resolve(c.Method(), c.Path())

	// Public routes skip token parsing entirely.
	if requirement.Kind() == RequirePublic {
		return c.Next()
	}

	var identity *domain.Identity
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		token, ok := bearerToken(header)
		if !ok {
			return apperrors.NewUnauthorized("invalid authorization header")
		}
		claims, err := g.tokens.Validate(token)
		if err != nil {
			g.logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
			return apperrors.NewUnauthorized("invalid or expired token")
		}
		id := claims.Identity()
		identity = &id
	}

	switch Decide(requirement, identity) {
	case Allow:
		if identity != nil {
			c.Locals(identityKey, identity)
		}
		return c.Next()
	case DenyUnauthenticated:
		return apperrors.NewUnauthorized("authentication required")
	default:
		if identity != nil && identity.RoleID == 0 {
			g.logger.Warn("identity has no role assigned", zap.String("username", identity.Username))
		}
		return apperrors.NewForbidden("insufficient role")
	}
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

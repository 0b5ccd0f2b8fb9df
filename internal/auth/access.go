package auth

import (
	"strings"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// RequirementKind tags the access variants a route may declare.
type RequirementKind int

// The zero value is RequireAuthenticated so an uninitialized requirement
// fails closed.
const (
	RequireAuthenticated RequirementKind = iota
	RequirePublic
	RequireRoles
)

// Requirement is the access declaration attached to a route. Built at
// startup, read-only at request time.
type Requirement struct {
	kind  RequirementKind
	roles map[domain.RoleID]struct{}
}

// Public allows everyone, authenticated or not.
func Public() Requirement {
	return Requirement{kind: RequirePublic}
}

// Authenticated allows any caller with a valid identity.
func Authenticated() Requirement {
	return Requirement{kind: RequireAuthenticated}
}

// Roles allows identities whose role id is in the given set.
func Roles(ids ...domain.RoleID) Requirement {
	set := make(map[domain.RoleID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Requirement{kind: RequireRoles, roles: set}
}

// Kind returns the requirement variant.
func (r Requirement) Kind() RequirementKind {
	return r.kind
}

// Decision is the outcome of an access check.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Decide is the access decision engine: a pure function of the route's
// requirement and the (possibly absent) identity. Public routes never reach
// it through the request pipeline; it still answers Allow for completeness.
func Decide(requirement Requirement, identity *domain.Identity) Decision {
	switch requirement.kind {
	case RequirePublic:
		return Allow
	case RequireAuthenticated:
		if identity == nil {
			return DenyUnauthenticated
		}
		return Allow
	case RequireRoles:
		if identity == nil {
			return DenyUnauthenticated
		}
		// A missing role claim is an ordinary deny, not a fault.
		if _, ok := requirement.roles[identity.RoleID]; !ok {
			return DenyForbidden
		}
		return Allow
	default:
		return DenyUnauthenticated
	}
}

// RouteRegistry maps route identifiers to access requirements. Routes are
// keyed by method plus path pattern; group prefixes provide coarser
// declarations. Resolution is closest-declaration-wins, and a route with no
// declaration at all resolves to Authenticated (fail closed).
type RouteRegistry struct {
	routes map[string]routeEntry
	groups map[string]Requirement
}

type routeEntry struct {
	segments    []string
	requirement Requirement
}

// NewRouteRegistry creates an empty registry.
func NewRouteRegistry() *RouteRegistry {
	return &RouteRegistry{
		routes: make(map[string]routeEntry),
		groups: make(map[string]Requirement),
	}
}

// Route declares a requirement for a single route pattern. Pattern segments
// starting with ':' match any value.
func (r *RouteRegistry) Route(method, pattern string, requirement Requirement) {
	key := method + " " + pattern
	r.routes[key] = routeEntry{
		segments:    splitPath(pattern),
		requirement: requirement,
	}
}

// Group declares a default requirement for every route under the prefix.
func (r *RouteRegistry) Group(prefix string, requirement Requirement) {
	r.groups[strings.TrimSuffix(prefix, "/")] = requirement
}

// Resolve returns the requirement for a request path. A route declaration
// wins over its group's; absent both, access requires authentication.
func (r *RouteRegistry) Resolve(method, path string) Requirement {
	segments := splitPath(path)

	for key, entry := range r.routes {
		if !strings.HasPrefix(key, method+" ") {
			continue
		}
		if matchSegments(entry.segments, segments) {
			return entry.requirement
		}
	}

	if req, ok := r.longestGroup(path); ok {
		return req
	}
	return Authenticated()
}

func (r *RouteRegistry) longestGroup(path string) (Requirement, bool) {
	var (
		best    Requirement
		bestLen = -1
	)
	for prefix, req := range r.groups {
		if prefix != "" && !strings.HasPrefix(path, prefix) {
			continue
		}
		if len(path) > len(prefix) && prefix != "" && path[len(prefix)] != '/' {
			continue
		}
		if len(prefix) > bestLen {
			best = req
			bestLen = len(prefix)
		}
	}
	return best, bestLen >= 0
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}

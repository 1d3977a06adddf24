package auth

import "strings"

// Access is the requirement a route places on the resolved principal.
type Access int

const (
	// AccessPublic routes skip authentication entirely.
	AccessPublic Access = iota
	// AccessService routes require the shared API key identity.
	AccessService
	// AccessAuthenticated routes accept any non-anonymous principal.
	AccessAuthenticated
)

// RouteRule pairs an Ant-style path pattern with the access it requires.
// Rules are declared once at startup and never mutated.
type RouteRule struct {
	Pattern string
	Access  Access
}

// Routes holds the ordered rule set for the service. Lookup is first match
// wins: public list, then role-specific rules, then the default.
type Routes struct {
	rules []RouteRule
}

// DefaultRoutes is the rule set the service ships with: authentication,
// documentation, root and health endpoints are public; the internal API is
// reserved for service callers; everything else requires a bearer token.
func DefaultRoutes() *Routes {
	return NewRoutes(
		RouteRule{Pattern: "/", Access: AccessPublic},
		RouteRule{Pattern: "/health", Access: AccessPublic},
		RouteRule{Pattern: "/api/auth/**", Access: AccessPublic},
		RouteRule{Pattern: "/swagger/**", Access: AccessPublic},
		RouteRule{Pattern: "/api-docs/**", Access: AccessPublic},
		RouteRule{Pattern: "/api/v1/internal/**", Access: AccessService},
	)
}

// NewRoutes builds a rule set. Order is significant.
func NewRoutes(rules ...RouteRule) *Routes {
	return &Routes{rules: rules}
}

// IsPublic reports whether path matches a public rule.
func (r *Routes) IsPublic(path string) bool {
	return r.Required(path) == AccessPublic
}

// Required returns the access requirement for path. Paths matching no rule
// require an authenticated principal.
func (r *Routes) Required(path string) Access {
	for _, rule := range r.rules {
		if Match(rule.Pattern, path) {
			return rule.Access
		}
	}
	return AccessAuthenticated
}

// Match tests path against a single Ant-style pattern:
//
//	/literal     exact match
//	/prefix/**   any suffix below the prefix, including the prefix itself
//	/literal*    any single-segment suffix
func Match(pattern, path string) bool {
	switch {
	case strings.HasSuffix(pattern, "/**"):
		prefix := strings.TrimSuffix(pattern, "/**")
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	case strings.HasSuffix(pattern, "*"):
		prefix := strings.TrimSuffix(pattern, "*")
		if !strings.HasPrefix(path, prefix) {
			return false
		}
		return !strings.Contains(path[len(prefix):], "/")
	default:
		return path == pattern
	}
}

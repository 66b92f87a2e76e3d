package auth

import (
	"net/url"
	"path"
	"strings"

	"github.com/interinest/marketplace/internal/domain"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
	rootPath     = "/"
)

// PathKind is the gate state a request path falls into.
type PathKind int

const (
	PathPublic PathKind = iota
	PathAuthPage
	PathProtected
)

func (k PathKind) String() string {
	switch k {
	case PathAuthPage:
		return "auth_page"
	case PathProtected:
		return "protected"
	default:
		return "public"
	}
}

// ProtectedRoute requires Role for every path under Prefix.
type ProtectedRoute struct {
	Prefix string
	Role   domain.Role
}

// DefaultRoutes returns the marketplace dashboard policy.
func DefaultRoutes() []ProtectedRoute {
	return []ProtectedRoute{
		{Prefix: "/designer-dashboard", Role: domain.RoleDesigner},
		{Prefix: "/admin", Role: domain.RoleAdmin},
		{Prefix: "/user-dashboard", Role: domain.RoleUser},
	}
}

// Decision is the gate outcome. An empty Location means the request may continue.
type Decision struct {
	Kind     PathKind
	Location string
}

// Allowed reports whether the request may proceed to page logic.
func (d Decision) Allowed() bool {
	return d.Location == ""
}

// Gate evaluates the static role policy. It holds no mutable state and is
// safe for concurrent use.
type Gate struct {
	routes []ProtectedRoute
}

// NewGate builds a gate over routes, falling back to DefaultRoutes when none are given.
func NewGate(routes ...ProtectedRoute) *Gate {
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}
	owned := make([]ProtectedRoute, 0, len(routes))
	for _, r := range routes {
		owned = append(owned, ProtectedRoute{Prefix: normalizePath(r.Prefix), Role: r.Role})
	}
	return &Gate{routes: owned}
}

// Classify places p into one of the gate states. For protected paths the
// matching route is returned; the longest prefix wins and ties keep
// declaration order.
func (g *Gate) Classify(p string) (PathKind, ProtectedRoute) {
	p = normalizePath(p)
	if p == LoginPath || p == RegisterPath {
		return PathAuthPage, ProtectedRoute{}
	}

	var (
		best  ProtectedRoute
		found bool
	)
	for _, r := range g.routes {
		if !hasPathPrefix(p, r.Prefix) {
			continue
		}
		if !found || len(r.Prefix) > len(best.Prefix) {
			best, found = r, true
		}
	}
	if found {
		return PathProtected, best
	}
	return PathPublic, ProtectedRoute{}
}

// Decide maps (path, session) to allow or redirect. sess may be nil.
func (g *Gate) Decide(p string, sess *domain.Session) Decision {
	kind, route := g.Classify(p)
	loggedIn := sess.Valid()

	switch kind {
	case PathAuthPage:
		if !loggedIn {
			return Decision{Kind: kind}
		}
		home, ok := sess.Role.HomePath()
		if !ok {
			home = rootPath
		}
		return Decision{Kind: kind, Location: home}
	case PathProtected:
		if !loggedIn {
			return Decision{Kind: kind, Location: LoginRedirect(normalizePath(p))}
		}
		if sess.Role != route.Role {
			home, ok := sess.Role.HomePath()
			if !ok {
				home = LoginPath
			}
			return Decision{Kind: kind, Location: home}
		}
		return Decision{Kind: kind}
	default:
		return Decision{Kind: kind}
	}
}

// LoginRedirect builds the login URL carrying target in the redirect query parameter.
func LoginRedirect(target string) string {
	return LoginPath + "?" + url.Values{"redirect": {target}}.Encode()
}

// SafeRedirect returns target when it is a local path the role may open,
// otherwise the role's home path.
func (g *Gate) SafeRedirect(target string, role domain.Role) string {
	home, ok := role.HomePath()
	if !ok {
		home = rootPath
	}
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return home
	}
	sess := &domain.Session{SubjectID: "-", Role: role, Token: "-"}
	if d := g.Decide(target, sess); !d.Allowed() || d.Kind == PathAuthPage {
		return home
	}
	return normalizePath(target)
}

func hasPathPrefix(p, prefix string) bool {
	if prefix == rootPath {
		return true
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func normalizePath(p string) string {
	if p == "" {
		return rootPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

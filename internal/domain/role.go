package domain

// Role identifies which dashboard a subject is allowed to use.
type Role string

const (
	RoleDesigner Role = "designer"
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
)

var homePaths = map[Role]string{
	RoleDesigner: "/designer-dashboard",
	RoleAdmin:    "/admin",
	RoleUser:     "/user-dashboard",
}

// Known reports whether r is one of the three marketplace roles.
func (r Role) Known() bool {
	_, ok := homePaths[r]
	return ok
}

// HomePath returns the dashboard path for r. ok is false for unrecognized roles.
func (r Role) HomePath() (path string, ok bool) {
	path, ok = homePaths[r]
	return path, ok
}

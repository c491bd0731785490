package model

// Role values stored in users.role and user_roles.role. The two
// columns are kept in sync by the role service; user_roles is the
// authoritative assignment and may exist before the user ever logs in.
const (
	RoleScholar = "scholar"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// ValidRole reports whether s is one of the three recognized roles.
func ValidRole(s string) bool {
	switch s {
	case RoleScholar, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

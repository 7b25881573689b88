package userdomain

// Role represents an account's role for authorization purposes.
type Role string

const (
	RolePlayer    Role = "player"
	RoleDeveloper Role = "developer"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RolePlayer, RoleDeveloper:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// CanEditLayouts reports whether the role may change course layouts.
func (r Role) CanEditLayouts() bool {
	return r == RoleDeveloper
}

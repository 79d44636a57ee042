package domain

// Role is the closed set of authorization levels a subject can hold.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleStaff  Role = "staff"
	RoleViewer Role = "viewer"
)

// ParseRole maps a raw string to a Role. Unknown values return ("", false)
// so a forged or legacy cookie never yields a usable role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleMember, RoleStaff, RoleViewer:
		return Role(s), true
	}
	return "", false
}

// RoleSet is the set of roles allowed through a gate. Membership is exact:
// no role implies another (owner does not inherit admin routes).
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether role is a member of the set.
func (s RoleSet) Contains(role Role) bool {
	_, ok := s[role]
	return ok
}

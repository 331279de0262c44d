package enums

import "fmt"

// Role describes what an operator is allowed to do at the till.
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleSeller  Role = "SELLER"
)

var validRoles = []Role{
	RoleManager,
	RoleSeller,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

package domain

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// RolePolicy describes how registration treats a role.
type RolePolicy struct {
	// RequiresVerification means the account starts unverified and gets a verification code.
	// Roles without it are operator-created and verified implicitly.
	RequiresVerification bool
	RequiresEmail        bool
	Privileged           bool
}

var rolePolicies = map[Role]RolePolicy{
	RoleUser:       {RequiresVerification: true, RequiresEmail: true},
	RoleAdmin:      {RequiresVerification: false, RequiresEmail: false, Privileged: true},
	RoleSuperAdmin: {RequiresVerification: false, RequiresEmail: true, Privileged: true},
}

// ParseRole converts raw input into a Role. Empty input maps to RoleUser.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleUser, nil
	}
	r := Role(s)
	if _, ok := rolePolicies[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Policy returns the registration policy of the role.
func (r Role) Policy() RolePolicy {
	return rolePolicies[r]
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := rolePolicies[r]
	return ok
}

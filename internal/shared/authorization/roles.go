// Package authorization defines the closed set of user roles and the
// principal carried through every request.
package authorization

import "fmt"

type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleContractor UserRole = "contractor"
	RoleManager    UserRole = "manager"
	RoleSecurity   UserRole = "security"
	RoleHR         UserRole = "hr"
	RoleAdmin      UserRole = "admin"
)

// AllRoles lists every role in a stable order.
func AllRoles() []UserRole {
	return []UserRole{RoleCustomer, RoleContractor, RoleManager, RoleSecurity, RoleHR, RoleAdmin}
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCustomer, RoleContractor, RoleManager, RoleSecurity, RoleHR, RoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsStaff reports whether the role belongs to internal personnel.
func (r UserRole) IsStaff() bool {
	switch r {
	case RoleManager, RoleSecurity, RoleHR, RoleAdmin:
		return true
	case RoleCustomer, RoleContractor:
		return false
	}
	return false
}

// In reports whether r is one of roles.
func (r UserRole) In(roles ...UserRole) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ParseUserRole parses a role string; unknown roles are rejected.
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// Principal is the authenticated caller.
type Principal struct {
	UserID uint
	Role   UserRole
}

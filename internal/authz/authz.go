// internal/authz/authz.go
//
// Capability predicates over a principal. Every protected screen and every
// conditionally rendered widget goes through these; no view re-derives role
// booleans on its own. All predicates are pure and return false for a nil
// principal rather than panicking.

package authz

import (
	"strings"

	"github.com/nexthr/console/internal/hr"
)

// Role is the resolved coarse capability of a principal. It is produced once
// per principal by Resolve and consumed by dispatch tables downstream.
type Role int

const (
	RoleNone Role = iota
	RoleSystemAdmin
	RoleOrgAdmin
	RoleHRStaff
	RoleEmployee
)

// String returns the display label for a resolved role.
func (r Role) String() string {
	switch r {
	case RoleSystemAdmin:
		return "System Administrator"
	case RoleOrgAdmin:
		return "Organization Admin"
	case RoleHRStaff:
		return "HR Staff"
	case RoleEmployee:
		return "Employee"
	}
	return "Unknown"
}

// IsSystemAdmin reports whether the principal operates the platform itself.
func IsSystemAdmin(p *hr.Principal) bool {
	return p != nil && p.UserType == hr.UserTypeSystemAdmin
}

// HasRole reports whether any of the principal's role tags contains needle.
// The match is deliberately substring-tolerant: stored tags carry prefix
// variants such as ROLE_ORG_ADMIN, and every check in the application must
// treat them identically or capability drift creeps in.
func HasRole(p *hr.Principal, needle string) bool {
	if p == nil || needle == "" {
		return false
	}
	for _, tag := range p.Roles {
		if strings.Contains(tag, needle) {
			return true
		}
	}
	return false
}

// IsOrgAdmin reports the tenant administrator capability.
func IsOrgAdmin(p *hr.Principal) bool {
	return HasRole(p, hr.RoleTagOrgAdmin)
}

// IsHRStaff reports the HR staff capability.
func IsHRStaff(p *hr.Principal) bool {
	return HasRole(p, hr.RoleTagHRStaff)
}

// IsEmployee reports the plain member capability.
func IsEmployee(p *hr.Principal) bool {
	return HasRole(p, hr.RoleTagEmployee)
}

// Resolve maps a principal to its single coarse role. Precedence runs from
// the widest capability down; a principal holding several tags lands on the
// most privileged one.
func Resolve(p *hr.Principal) Role {
	switch {
	case p == nil:
		return RoleNone
	case IsSystemAdmin(p):
		return RoleSystemAdmin
	case IsOrgAdmin(p):
		return RoleOrgAdmin
	case IsHRStaff(p):
		return RoleHRStaff
	case IsEmployee(p):
		return RoleEmployee
	}
	// Authenticated org user with no recognized tag renders the employee
	// view, matching the dashboard's historical fallback.
	return RoleEmployee
}

// internal/hr/principal.go
//
// The authenticated actor as the NextHR backend describes it. A principal is
// created from a successful login, replaced wholesale on re-login, and
// destroyed on logout.

package hr

import "strings"

// UserType partitions principals into platform operators and tenant members.
type UserType string

const (
	UserTypeSystemAdmin UserType = "SYSTEM_ADMIN"
	UserTypeOrgUser     UserType = "ORG_USER"
)

// Role tags as issued by the backend. Stored tags carry a ROLE_ prefix;
// capability checks tolerate prefix variants (see internal/authz).
const (
	RoleTagSysAdmin = "SYS_ADMIN"
	RoleTagOrgAdmin = "ORG_ADMIN"
	RoleTagHRStaff  = "HR_STAFF"
	RoleTagEmployee = "EMPLOYEE"
)

// Principal is the identity a session is built around.
type Principal struct {
	UserID           int64    `json:"userId"`
	Email            string   `json:"email"`
	FullName         string   `json:"fullName"`
	Roles            []string `json:"roles"`
	OrganizationID   string   `json:"organizationUuid,omitempty"`
	OrganizationName string   `json:"organizationName,omitempty"`
	UserType         UserType `json:"userType"`
}

// ParseRoles splits the backend's comma-joined role string into tags.
// Empty segments are dropped; order is preserved but never significant.
func ParseRoles(joined string) []string {
	parts := strings.Split(joined, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}
	return roles
}

package authz

import (
	"testing"

	"github.com/nexthr/console/internal/hr"
)

func sysAdmin() *hr.Principal {
	return &hr.Principal{
		UserID:   1,
		Email:    "root@nexthr.io",
		Roles:    []string{"ROLE_SYS_ADMIN"},
		UserType: hr.UserTypeSystemAdmin,
	}
}

func orgUser(roles ...string) *hr.Principal {
	return &hr.Principal{
		UserID:         7,
		Email:          "user@acme.io",
		Roles:          roles,
		OrganizationID: "3f1c9a2e-5d14-4c0b-9a4e-1d2f3a4b5c6d",
		UserType:       hr.UserTypeOrgUser,
	}
}

func TestNilPrincipalNeverMatches(t *testing.T) {
	if IsSystemAdmin(nil) || IsOrgAdmin(nil) || IsHRStaff(nil) || IsEmployee(nil) {
		t.Fatalf("predicates must be false for nil principal")
	}
	if HasRole(nil, hr.RoleTagOrgAdmin) {
		t.Fatalf("HasRole must be false for nil principal")
	}
	if Resolve(nil) != RoleNone {
		t.Fatalf("nil principal resolves to RoleNone")
	}
}

func TestSystemAdminCapabilities(t *testing.T) {
	p := sysAdmin()
	if !IsSystemAdmin(p) {
		t.Fatalf("expected system admin")
	}
	if IsOrgAdmin(p) {
		t.Fatalf("system admin must not report org admin capability")
	}
	if p.OrganizationID != "" {
		t.Fatalf("system admin carries no organization id")
	}
	if Resolve(p) != RoleSystemAdmin {
		t.Fatalf("wrong resolution: %s", Resolve(p))
	}
}

func TestHasRoleContainsMatch(t *testing.T) {
	p := orgUser("ROLE_ORG_ADMIN", "ROLE_HR_STAFF")
	// Prefix variants must match: the needle is contained, not equal.
	if !HasRole(p, "ORG_ADMIN") {
		t.Fatalf("ORG_ADMIN must match ROLE_ORG_ADMIN")
	}
	if !HasRole(p, "HR_STAFF") {
		t.Fatalf("HR_STAFF must match ROLE_HR_STAFF")
	}
	// Multiple roles coexist; no mutual exclusivity.
	if !IsOrgAdmin(p) || !IsHRStaff(p) {
		t.Fatalf("both capabilities must hold simultaneously")
	}
	if HasRole(p, "EMPLOYEE") {
		t.Fatalf("unrelated needle must not match")
	}
	if HasRole(p, "") {
		t.Fatalf("empty needle never matches")
	}
}

func TestResolvePrecedence(t *testing.T) {
	cases := []struct {
		roles []string
		want  Role
	}{
		{[]string{"ROLE_ORG_ADMIN", "ROLE_HR_STAFF"}, RoleOrgAdmin},
		{[]string{"ROLE_HR_STAFF", "ROLE_EMPLOYEE"}, RoleHRStaff},
		{[]string{"ROLE_EMPLOYEE"}, RoleEmployee},
		{nil, RoleEmployee}, // authenticated but untagged falls back to employee view
	}
	for _, tc := range cases {
		if got := Resolve(orgUser(tc.roles...)); got != tc.want {
			t.Fatalf("roles %v resolved to %s, want %s", tc.roles, got, tc.want)
		}
	}
}

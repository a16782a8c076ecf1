package routing

import (
	"testing"

	"github.com/nexthr/console/internal/authz"
	"github.com/nexthr/console/internal/hr"
)

func sysAdmin() *hr.Principal {
	return &hr.Principal{UserID: 1, UserType: hr.UserTypeSystemAdmin}
}

func orgUser(roles ...string) *hr.Principal {
	return &hr.Principal{UserID: 2, UserType: hr.UserTypeOrgUser, Roles: roles}
}

func TestGuard(t *testing.T) {
	cases := []struct {
		name      string
		dest      Path
		principal *hr.Principal
		allowed   bool
		target    Path
	}{
		{"anonymous to login", PathLogin, nil, true, ""},
		{"anonymous to signup", PathSignup, nil, true, ""},
		{"anonymous to dashboard", PathDashboard, nil, false, PathLogin},
		{"anonymous to admin", PathAdmin, nil, false, PathLogin},
		{"anonymous to employees", PathEmployees, nil, false, PathLogin},
		{"authed back to login", PathLogin, orgUser("ROLE_EMPLOYEE"), false, PathDashboard},
		{"authed back to signup", PathSignup, orgUser("ROLE_EMPLOYEE"), false, PathDashboard},
		{"system admin back to login", PathLogin, sysAdmin(), false, PathAdmin},
		{"system admin to dashboard", PathDashboard, sysAdmin(), false, PathAdmin},
		{"system admin to admin", PathAdmin, sysAdmin(), true, ""},
		{"org user to admin", PathAdmin, orgUser("ROLE_ORG_ADMIN"), false, PathDashboard},
		{"org admin to employees", PathEmployees, orgUser("ROLE_ORG_ADMIN"), true, ""},
		{"hr staff to employees", PathEmployees, orgUser("ROLE_HR_STAFF"), true, ""},
		{"employee to employees", PathEmployees, orgUser("ROLE_EMPLOYEE"), false, PathDashboard},
		{"org admin to modules", PathModules, orgUser("ROLE_ORG_ADMIN"), true, ""},
		{"hr staff to modules", PathModules, orgUser("ROLE_HR_STAFF"), false, PathDashboard},
		{"unknown path", Path("/nope"), sysAdmin(), false, PathLogin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Guard(tc.dest, tc.principal)
			if got.Allowed != tc.allowed {
				t.Fatalf("Guard(%s) allowed = %v, want %v", tc.dest, got.Allowed, tc.allowed)
			}
			if !got.Allowed && got.Target != tc.target {
				t.Fatalf("Guard(%s) target = %s, want %s", tc.dest, got.Target, tc.target)
			}
		})
	}
}

func TestLandingPath(t *testing.T) {
	if got := LandingPath(nil); got != PathLogin {
		t.Fatalf("LandingPath(nil) = %s", got)
	}
	if got := LandingPath(orgUser("ROLE_EMPLOYEE")); got != PathDashboard {
		t.Fatalf("LandingPath = %s", got)
	}
	if got := LandingPath(sysAdmin()); got != PathAdmin {
		t.Fatalf("LandingPath for system admin = %s", got)
	}
}

func TestDashboardFor(t *testing.T) {
	cases := map[authz.Role]DashboardVariant{
		authz.RoleSystemAdmin: DashboardSystemAdmin,
		authz.RoleOrgAdmin:    DashboardOrgAdmin,
		authz.RoleHRStaff:     DashboardHRStaff,
		authz.RoleEmployee:    DashboardEmployee,
		authz.RoleNone:        DashboardNone,
	}
	for role, want := range cases {
		if got := DashboardFor(role); got != want {
			t.Fatalf("DashboardFor(%v) = %v, want %v", role, got, want)
		}
	}
}

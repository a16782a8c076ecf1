// internal/routing/routing.go
//
// Pure navigation rules: which screen a principal may see, and where they
// land instead when they may not. No side effects live here; the caller
// performs the actual screen switch.

package routing

import (
	"github.com/nexthr/console/internal/authz"
	"github.com/nexthr/console/internal/hr"
)

// Path identifies a navigable screen.
type Path string

const (
	PathLogin     Path = "/login"
	PathSignup    Path = "/signup"
	PathDashboard Path = "/dashboard"
	PathAdmin     Path = "/admin"
	PathEmployees Path = "/employees"
	PathModules   Path = "/modules"
)

// Decision is the outcome of a guard check. When Allowed is false, Target
// names the screen to show instead.
type Decision struct {
	Allowed bool
	Target  Path
}

func allow() Decision           { return Decision{Allowed: true} }
func redirect(to Path) Decision { return Decision{Allowed: false, Target: to} }

// Guard decides whether the principal may visit dest. A nil principal means
// no session is established.
func Guard(dest Path, p *hr.Principal) Decision {
	authed := p != nil

	switch dest {
	case PathLogin, PathSignup:
		if authed {
			return redirect(LandingPath(p))
		}
		return allow()
	case PathDashboard:
		if !authed {
			return redirect(PathLogin)
		}
		if authz.IsSystemAdmin(p) {
			return redirect(PathAdmin)
		}
		return allow()
	case PathAdmin:
		if !authed {
			return redirect(PathLogin)
		}
		if !authz.IsSystemAdmin(p) {
			return redirect(PathDashboard)
		}
		return allow()
	case PathEmployees:
		if !authed {
			return redirect(PathLogin)
		}
		if !authz.IsOrgAdmin(p) && !authz.IsHRStaff(p) {
			return redirect(PathDashboard)
		}
		return allow()
	case PathModules:
		if !authed {
			return redirect(PathLogin)
		}
		if !authz.IsOrgAdmin(p) {
			return redirect(PathDashboard)
		}
		return allow()
	}
	return redirect(PathLogin)
}

// LandingPath is where a principal goes right after authenticating. System
// admins have no organization dashboard; their home is the admin board.
func LandingPath(p *hr.Principal) Path {
	if p == nil {
		return PathLogin
	}
	if authz.IsSystemAdmin(p) {
		return PathAdmin
	}
	return PathDashboard
}

// DashboardVariant selects which dashboard rendering a role gets.
type DashboardVariant int

const (
	DashboardNone DashboardVariant = iota
	DashboardSystemAdmin
	DashboardOrgAdmin
	DashboardHRStaff
	DashboardEmployee
)

// DashboardFor maps a resolved role to its dashboard variant.
func DashboardFor(role authz.Role) DashboardVariant {
	switch role {
	case authz.RoleSystemAdmin:
		return DashboardSystemAdmin
	case authz.RoleOrgAdmin:
		return DashboardOrgAdmin
	case authz.RoleHRStaff:
		return DashboardHRStaff
	case authz.RoleEmployee:
		return DashboardEmployee
	}
	return DashboardNone
}

package hr

import "testing"

func TestParseOrgStatus(t *testing.T) {
	s, err := ParseOrgStatus("PENDING_APPROVAL")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if s != OrgStatusPendingApproval {
		t.Fatalf("wrong status: %s", s)
	}
	if s.FriendlyName() != "Pending Approval" {
		t.Fatalf("wrong friendly name: %s", s.FriendlyName())
	}
	if _, err := ParseOrgStatus("ARCHIVED"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestOrgStatusActionable(t *testing.T) {
	if OrgStatusDeleted.Actionable() {
		t.Fatalf("deleted organizations must not be actionable")
	}
	for _, s := range []OrgStatus{OrgStatusPendingApproval, OrgStatusActive, OrgStatusSuspended, OrgStatusDormant} {
		if !s.Actionable() {
			t.Fatalf("%s should be actionable", s)
		}
	}
}

func TestParseRoles(t *testing.T) {
	roles := ParseRoles("ROLE_ORG_ADMIN, ROLE_HR_STAFF,,")
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d (%v)", len(roles), roles)
	}
	if roles[0] != "ROLE_ORG_ADMIN" || roles[1] != "ROLE_HR_STAFF" {
		t.Fatalf("unexpected roles: %v", roles)
	}
	if got := ParseRoles(""); len(got) != 0 {
		t.Fatalf("empty input must yield no roles, got %v", got)
	}
}

func TestValidEmail(t *testing.T) {
	if !ValidEmail("admin@acme.io") {
		t.Fatalf("expected valid email")
	}
	for _, bad := range []string{"", "admin", "admin@acme", "a b@acme.io"} {
		if ValidEmail(bad) {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}

func TestStrongPassword(t *testing.T) {
	if !StrongPassword("Sup3rSecret!") {
		t.Fatalf("expected password to pass policy")
	}
	// 8 chars covering all four classes is the floor.
	if !StrongPassword("aB3!aB3!") {
		t.Fatalf("minimum compliant password should pass")
	}
	for _, bad := range []string{"aB3!a1", "alllowercase1!", "ALLUPPER1!", "NoDigits!!", "NoSpecial123"} {
		if StrongPassword(bad) {
			t.Fatalf("%q should fail policy", bad)
		}
	}
}

func TestModuleConfigClone(t *testing.T) {
	cfg := ModuleConfig{ModulePerformanceTracking: true}
	clone := cfg.Clone()
	clone[ModulePerformanceTracking] = false
	if !cfg.Enabled(ModulePerformanceTracking) {
		t.Fatalf("clone must not alias the original")
	}
	var nilCfg ModuleConfig
	if nilCfg.Enabled(ModuleHiringManagement) {
		t.Fatalf("nil config reports everything disabled")
	}
}

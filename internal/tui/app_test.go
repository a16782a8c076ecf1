package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nexthr/console/internal/config"
	"github.com/nexthr/console/internal/gateway"
	"github.com/nexthr/console/internal/hr"
	"github.com/nexthr/console/internal/logging"
	"github.com/nexthr/console/internal/routing"
	"github.com/nexthr/console/internal/session"
)

type stubGateway struct {
	loginResult *gateway.LoginResult
	loginErr    error
	employees   []hr.Employee
	stats       hr.DashboardStats
	orgs        []hr.Organization
	pending     []hr.Organization

	configured hr.ModuleConfig
}

func (s *stubGateway) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubGateway) Signup(ctx context.Context, req gateway.SignupRequest) error { return nil }

func (s *stubGateway) Me(ctx context.Context) (*hr.Principal, error) {
	if s.loginResult == nil {
		return nil, gateway.ErrUnauthorized
	}
	return s.loginResult.Principal, nil
}

func (s *stubGateway) ConfigureModules(ctx context.Context, cfg hr.ModuleConfig) (hr.ModuleConfig, error) {
	s.configured = cfg.Clone()
	return cfg, nil
}

func (s *stubGateway) Employees(ctx context.Context) ([]hr.Employee, error) {
	return s.employees, nil
}

func (s *stubGateway) CreateEmployee(ctx context.Context, emp hr.Employee) error { return nil }

func (s *stubGateway) UpdateEmployee(ctx context.Context, id int64, emp hr.Employee) error {
	return nil
}

func (s *stubGateway) DeleteEmployee(ctx context.Context, id int64) error { return nil }

func (s *stubGateway) Stats(ctx context.Context) (*hr.DashboardStats, error) {
	stats := s.stats
	return &stats, nil
}

func (s *stubGateway) PendingOrganizations(ctx context.Context) ([]hr.Organization, error) {
	return s.pending, nil
}

func (s *stubGateway) Organizations(ctx context.Context, status string) ([]hr.Organization, error) {
	return s.orgs, nil
}

func (s *stubGateway) ApproveOrganization(ctx context.Context, id int64) error { return nil }

func (s *stubGateway) RejectOrganization(ctx context.Context, id int64) error { return nil }

func (s *stubGateway) SetOrganizationStatus(ctx context.Context, id int64, st hr.OrgStatus) error {
	return nil
}

func (s *stubGateway) UpdateOrganization(ctx context.Context, id int64, upd hr.OrganizationUpdate) error {
	return nil
}

func (s *stubGateway) DeleteOrganization(ctx context.Context, id int64) error { return nil }

func orgAdminLoginResult() *gateway.LoginResult {
	return &gateway.LoginResult{
		Token: "token-1",
		Principal: &hr.Principal{
			UserID:           7,
			Email:            "admin@acme.test",
			FullName:         "Ada Admin",
			Roles:            []string{"ROLE_ORG_ADMIN"},
			OrganizationName: "Acme",
			UserType:         hr.UserTypeOrgUser,
		},
		Modules: hr.ModuleConfig{hr.ModuleLeaveManagement: true},
	}
}

func newTestApp(t *testing.T, api Gateway) *App {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	log, err := logging.Open(cfg.LogDir(), "debug")
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	store, err := session.Open(cfg.SessionDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	return NewApp(cfg, log, store, api)
}

// drain executes a command chain synchronously, feeding each produced
// message back into the model, until no command remains.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 32 {
			t.Fatalf("command chain did not settle")
		}
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				drain(t, app, sub)
			}
			return
		}
		if _, quit := msg.(tea.QuitMsg); quit {
			return
		}
		var model tea.Model
		model, cmd = app.Update(msg)
		if model.(*App) != app {
			t.Fatalf("update must return the same app model")
		}
	}
}

func signIn(t *testing.T, app *App, result *gateway.LoginResult) {
	t.Helper()
	if app.current != routing.PathLogin {
		t.Fatalf("expected to start on login, got %s", app.current)
	}
	_, cmd := app.Update(loginDoneMsg{result: result})
	drain(t, app, cmd)
}

func TestStartsOnLoginWithoutSession(t *testing.T) {
	app := newTestApp(t, &stubGateway{})
	if app.current != routing.PathLogin {
		t.Fatalf("expected login screen, got %s", app.current)
	}
}

func TestLoginLandsOnDashboard(t *testing.T) {
	app := newTestApp(t, &stubGateway{})
	signIn(t, app, orgAdminLoginResult())

	if app.current != routing.PathDashboard {
		t.Fatalf("expected dashboard after login, got %s", app.current)
	}
	if !app.store.Authenticated() {
		t.Fatalf("session should be established")
	}
	if !app.store.Modules().Enabled(hr.ModuleLeaveManagement) {
		t.Fatalf("module config should be stored with the session")
	}
}

func TestRehydratedSessionStartsOnDashboard(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := session.Open(cfg.SessionDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	result := orgAdminLoginResult()
	store.Begin()
	if err := store.Complete(result.Principal, result.Token, result.Modules); err != nil {
		t.Fatalf("complete session: %v", err)
	}

	log, err := logging.Open(cfg.LogDir(), "debug")
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer log.Close()
	reopened, err := session.Open(cfg.SessionDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	app := NewApp(cfg, log, reopened, &stubGateway{loginResult: result})
	if app.current != routing.PathDashboard {
		t.Fatalf("expected dashboard for rehydrated session, got %s", app.current)
	}

	// The startup probe confirms the session and changes nothing.
	drain(t, app, app.Init())
	if app.current != routing.PathDashboard {
		t.Fatalf("valid probe must keep the dashboard, got %s", app.current)
	}
}

func TestStaleRehydratedSessionExpiresOnProbe(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := session.Open(cfg.SessionDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	result := orgAdminLoginResult()
	store.Begin()
	if err := store.Complete(result.Principal, result.Token, result.Modules); err != nil {
		t.Fatalf("complete session: %v", err)
	}

	log, err := logging.Open(cfg.LogDir(), "debug")
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer log.Close()
	// No loginResult: the stub's Me rejects the stored token.
	app := NewApp(cfg, log, store, &stubGateway{})
	drain(t, app, app.Init())
	if app.current != routing.PathLogin {
		t.Fatalf("expected login after failed probe, got %s", app.current)
	}
	if app.store.Authenticated() {
		t.Fatalf("session must be cleared after failed probe")
	}
}

func TestGuardRedirectsOrgUserFromAdmin(t *testing.T) {
	app := newTestApp(t, &stubGateway{})
	signIn(t, app, orgAdminLoginResult())

	_, cmd := app.Update(navigateMsg{to: routing.PathAdmin})
	drain(t, app, cmd)
	if app.current != routing.PathDashboard {
		t.Fatalf("org user must be redirected from admin, got %s", app.current)
	}
}

func TestOrgAdminReachesEmployeesAndModules(t *testing.T) {
	app := newTestApp(t, &stubGateway{
		employees: []hr.Employee{{ID: 1, FirstName: "Eve", Email: "eve@acme.test", IsActive: true}},
	})
	signIn(t, app, orgAdminLoginResult())

	_, cmd := app.Update(navigateMsg{to: routing.PathEmployees})
	drain(t, app, cmd)
	if app.current != routing.PathEmployees {
		t.Fatalf("expected employees screen, got %s", app.current)
	}
	ev := app.view.(*employeesView)
	if len(ev.rows) != 1 || ev.rows[0].FirstName != "Eve" {
		t.Fatalf("directory should be loaded, got %+v", ev.rows)
	}

	_, cmd = app.Update(navigateMsg{to: routing.PathModules})
	drain(t, app, cmd)
	if app.current != routing.PathModules {
		t.Fatalf("expected modules screen, got %s", app.current)
	}
}

func TestSessionExpiryReturnsToLogin(t *testing.T) {
	app := newTestApp(t, &stubGateway{})
	signIn(t, app, orgAdminLoginResult())

	_, cmd := app.Update(sessionExpiredMsg{})
	drain(t, app, cmd)
	if app.current != routing.PathLogin {
		t.Fatalf("expected login after expiry, got %s", app.current)
	}
	if app.store.Authenticated() {
		t.Fatalf("session must be cleared on expiry")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t, &stubGateway{})
	signIn(t, app, orgAdminLoginResult())

	drain(t, app, app.logout())
	if app.store.Authenticated() {
		t.Fatalf("session should be gone after logout")
	}
	if app.current != routing.PathLogin {
		t.Fatalf("expected login after logout, got %s", app.current)
	}
}

func TestStaleDashboardStatsDropped(t *testing.T) {
	app := newTestApp(t, &stubGateway{stats: hr.DashboardStats{TotalEmployees: 5}})
	signIn(t, app, orgAdminLoginResult())

	dv := app.view.(*dashboardView)
	current := dv.stats

	stale := statsLoadedMsg{seq: dv.seq - 1, stats: &hr.DashboardStats{TotalEmployees: 99}}
	_, cmd := app.Update(stale)
	drain(t, app, cmd)
	if dv.stats != current {
		t.Fatalf("stale stats message must be dropped")
	}
}

func TestModulesViewSavesThroughGatewayThenStore(t *testing.T) {
	api := &stubGateway{}
	app := newTestApp(t, api)
	signIn(t, app, orgAdminLoginResult())

	_, cmd := app.Update(navigateMsg{to: routing.PathModules})
	drain(t, app, cmd)
	mv := app.view.(*modulesView)

	// Toggle hiring management on and save.
	mv.sel = 2
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeySpace})
	drain(t, app, cmd)
	if !mv.dirty {
		t.Fatalf("toggle should mark the draft dirty")
	}
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, app, cmd)

	if !api.configured.Enabled(hr.ModuleHiringManagement) {
		t.Fatalf("selection should reach the backend")
	}
	if !app.store.Modules().Enabled(hr.ModuleHiringManagement) {
		t.Fatalf("stored config should follow a successful save")
	}
	if mv.dirty {
		t.Fatalf("draft should be clean after save")
	}
}

func TestAdminBoardLoadsForSystemAdmin(t *testing.T) {
	api := &stubGateway{
		orgs: []hr.Organization{
			{ID: 1, Name: "Acme", Status: hr.OrgStatusActive},
			{ID: 2, Name: "Beta", Status: hr.OrgStatusPendingApproval},
		},
		pending: []hr.Organization{{ID: 2, Name: "Beta", Status: hr.OrgStatusPendingApproval}},
	}
	app := newTestApp(t, api)
	signIn(t, app, &gateway.LoginResult{
		Token:     "token-2",
		Principal: &hr.Principal{UserID: 1, Email: "root@nexthr.test", FullName: "Root", UserType: hr.UserTypeSystemAdmin},
	})

	_, cmd := app.Update(navigateMsg{to: routing.PathAdmin})
	drain(t, app, cmd)
	if app.current != routing.PathAdmin {
		t.Fatalf("system admin should reach the admin board, got %s", app.current)
	}
	av := app.view.(*adminView)
	if got := len(av.pendingRows()); got != 1 {
		t.Fatalf("expected 1 pending organization, got %d", got)
	}
	if stats := app.orgs.Stats(); stats.Total != 2 || stats.Pending != 1 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
}

// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for the NextHR console.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// Each screen is a sub-view owned by App. Every navigation request runs
// through routing.Guard, so a screen the current principal may not see is
// never constructed; the guard hands back the screen to show instead.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexthr/console/internal/config"
	"github.com/nexthr/console/internal/gateway"
	"github.com/nexthr/console/internal/hr"
	"github.com/nexthr/console/internal/logging"
	"github.com/nexthr/console/internal/orgs"
	"github.com/nexthr/console/internal/routing"
	"github.com/nexthr/console/internal/session"
)

// Gateway is the slice of the API client the screens consume. The admin
// screens reach the same backend through the lifecycle controller, which is
// why the org admin surface rides along here.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResult, error)
	Signup(ctx context.Context, req gateway.SignupRequest) error
	Me(ctx context.Context) (*hr.Principal, error)
	ConfigureModules(ctx context.Context, cfg hr.ModuleConfig) (hr.ModuleConfig, error)
	Employees(ctx context.Context) ([]hr.Employee, error)
	CreateEmployee(ctx context.Context, emp hr.Employee) error
	UpdateEmployee(ctx context.Context, id int64, emp hr.Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*hr.DashboardStats, error)

	orgs.AdminService
}

// view is the contract every screen implements.
type view interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// navigateMsg asks the app to switch screens; the guard may veto it.
type navigateMsg struct {
	to routing.Path
}

func navigate(to routing.Path) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// sessionExpiredMsg is emitted by any screen whose request came back 401.
type sessionExpiredMsg struct{}

// sessionProbeMsg carries the result of the startup identity check.
type sessionProbeMsg struct {
	err error
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
)

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	cfg   *config.Config
	log   *logging.Logger
	store *session.Store
	api   Gateway
	orgs  *orgs.Controller

	current routing.Path
	view    view

	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp wires the application model. The starting screen depends on whether
// a session was rehydrated from disk.
func NewApp(cfg *config.Config, log *logging.Logger, store *session.Store, api Gateway) *App {
	a := &App{cfg: cfg, log: log, store: store, api: api}
	a.orgs = orgs.NewController(api, store, log.Logger)

	start := routing.PathLogin
	if store.Authenticated() {
		start = routing.LandingPath(store.Principal())
	}
	a.switchTo(start)
	return a
}

// apiCtx bounds one backend call; every command closure takes one.
func (a *App) apiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.Timeout())
}

func (a *App) setStatus(format string, args ...any) {
	a.statusMsg = fmt.Sprintf(format, args...)
}

// switchTo builds the sub-view for a screen. Callers must have cleared the
// destination with the guard already; navigate() is the usual entry.
func (a *App) switchTo(dest routing.Path) {
	a.current = dest
	switch dest {
	case routing.PathLogin:
		a.view = newLoginView(a)
	case routing.PathSignup:
		a.view = newSignupView(a)
	case routing.PathDashboard:
		a.view = newDashboardView(a)
	case routing.PathAdmin:
		a.view = newAdminView(a)
	case routing.PathEmployees:
		a.view = newEmployeesView(a)
	case routing.PathModules:
		a.view = newModulesView(a)
	default:
		a.view = newLoginView(a)
		a.current = routing.PathLogin
	}
}

// handleNavigate runs the guard and performs the switch, following the
// redirect when the destination is refused.
func (a *App) handleNavigate(dest routing.Path) tea.Cmd {
	decision := routing.Guard(dest, a.store.Principal())
	target := dest
	if !decision.Allowed {
		target = decision.Target
		a.log.Debug().Str("wanted", string(dest)).Str("redirect", string(target)).Msg("navigation refused")
	}
	if target == a.current && decision.Allowed {
		return nil
	}
	a.switchTo(target)
	return a.view.Init()
}

// expireSession handles a 401 from any screen: the stored session is gone
// (the gateway hook already ended it), so land back on login.
func (a *App) expireSession() tea.Cmd {
	a.store.End()
	a.setStatus("Session expired, please sign in again")
	a.log.Warn().Msg("session expired, returning to login")
	a.switchTo(routing.PathLogin)
	return a.view.Init()
}

// reportErr routes an operation error: expiry redirects, everything else
// lands in the footer. It reports whether the session was torn down.
func (a *App) reportErr(err error) (tea.Cmd, bool) {
	if errors.Is(err, gateway.ErrUnauthorized) {
		return func() tea.Msg { return sessionExpiredMsg{} }, true
	}
	a.setStatus("%v", err)
	return nil, false
}

func (a *App) logout() tea.Cmd {
	a.store.End()
	a.log.Info().Msg("signed out")
	a.setStatus("Signed out")
	a.switchTo(routing.PathLogin)
	return a.view.Init()
}

// probeSession validates a rehydrated session in the background. The UI
// renders optimistically; a 401 from the probe tears the session down.
func (a *App) probeSession() tea.Cmd {
	if !a.store.Authenticated() {
		return nil
	}
	app := a
	return func() tea.Msg {
		ctx, cancel := app.apiCtx()
		defer cancel()
		_, err := app.api.Me(ctx)
		return sessionProbeMsg{err: err}
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	if probe := a.probeSession(); probe != nil {
		return tea.Batch(a.view.Init(), probe)
	}
	return a.view.Init()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.view.Update(msg)

	case navigateMsg:
		return a, a.handleNavigate(msg.to)

	case sessionExpiredMsg:
		return a, a.expireSession()

	case sessionProbeMsg:
		// Only a definitive 401 invalidates the session; an unreachable
		// server keeps the optimistic rendering.
		if errors.Is(msg.err, gateway.ErrUnauthorized) {
			return a, a.expireSession()
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	return a, a.view.Update(msg)
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	header := headerStyle.Render("⬡ NEXTHR CONSOLE")
	content := a.view.View()
	body := panelStyle.Width(maxInt(40, width-2)).Render(content)

	sections := []string{header, body}
	if panel := a.renderLogPanel(); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, footerStyle.Render(a.statusMsg))
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	if a.log == nil {
		return ""
	}
	lines := a.log.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := titleStyle.Render("LOG · console.log")
	tail := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, tail))
}

func identityLine(p *hr.Principal) string {
	if p == nil {
		return "not signed in"
	}
	who := p.FullName
	if who == "" {
		who = p.Email
	}
	if p.OrganizationName != "" {
		return fmt.Sprintf("%s · %s", who, p.OrganizationName)
	}
	return who
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

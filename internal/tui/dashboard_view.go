package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexthr/console/internal/authz"
	"github.com/nexthr/console/internal/hr"
	"github.com/nexthr/console/internal/routing"
)

// menuItem implements list.Item for the dashboard menu.
type menuItem struct {
	title string
	desc  string
	dest  routing.Path
	quit  bool
	out   bool
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

type statsLoadedMsg struct {
	seq   int
	stats *hr.DashboardStats
	err   error
}

type dashboardView struct {
	app     *App
	variant routing.DashboardVariant
	menu    list.Model

	seq     int
	stats   *hr.DashboardStats
	loadErr string
}

func newDashboardView(app *App) *dashboardView {
	p := app.store.Principal()
	variant := routing.DashboardFor(authz.Resolve(p))

	menu := list.New(buildDashboardMenu(variant, app.store.Modules()), list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Dashboard"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetSize(60, 14)

	return &dashboardView{app: app, variant: variant, menu: menu}
}

func buildDashboardMenu(variant routing.DashboardVariant, modules hr.ModuleConfig) []list.Item {
	items := []list.Item{}
	switch variant {
	case routing.DashboardOrgAdmin:
		items = append(items,
			menuItem{title: "Employees", desc: "Manage the employee directory", dest: routing.PathEmployees},
			menuItem{title: "Module settings", desc: "Enable or disable extended modules", dest: routing.PathModules},
		)
	case routing.DashboardHRStaff:
		items = append(items, menuItem{title: "Employees", desc: "Manage the employee directory", dest: routing.PathEmployees})
	}
	items = append(items,
		menuItem{title: "Sign out", desc: "End the current session", out: true},
		menuItem{title: "Quit", desc: "Close the console", quit: true},
	)
	return items
}

func (v *dashboardView) Init() tea.Cmd {
	return v.load()
}

// load fetches the counters for the active variant. The sequence number
// stamps the request so a result that arrives after another navigation or
// refresh is dropped instead of overwriting newer data.
func (v *dashboardView) load() tea.Cmd {
	v.seq++
	seq := v.seq
	app := v.app

	switch v.variant {
	case routing.DashboardOrgAdmin, routing.DashboardHRStaff:
		return func() tea.Msg {
			ctx, cancel := app.apiCtx()
			defer cancel()
			stats, err := app.api.Stats(ctx)
			return statsLoadedMsg{seq: seq, stats: stats, err: err}
		}
	}
	return nil
}

func (v *dashboardView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.seq != v.seq {
			return nil
		}
		if msg.err != nil {
			cmd, _ := v.app.reportErr(msg.err)
			v.loadErr = msg.err.Error()
			return cmd
		}
		v.loadErr = ""
		v.stats = msg.stats
		return nil

	case tea.WindowSizeMsg:
		v.menu.SetSize(maxInt(40, msg.Width-8), maxInt(8, msg.Height-14))
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			v.app.setStatus("Refreshing…")
			return v.load()
		case "enter":
			item, ok := v.menu.SelectedItem().(menuItem)
			if !ok {
				return nil
			}
			switch {
			case item.quit:
				return tea.Quit
			case item.out:
				return v.app.logout()
			default:
				return navigate(item.dest)
			}
		}
	}

	var cmd tea.Cmd
	v.menu, cmd = v.menu.Update(msg)
	return cmd
}

func (v *dashboardView) View() string {
	p := v.app.store.Principal()
	lines := []string{
		titleStyle.Render(dashboardTitle(v.variant)),
		hintStyle.Render(identityLine(p)),
		"",
	}
	if cards := v.renderCards(); cards != "" {
		lines = append(lines, cards, "")
	}
	if v.loadErr != "" {
		lines = append(lines, errStyle.Render(v.loadErr), "")
	}
	lines = append(lines, v.menu.View())
	lines = append(lines, hintStyle.Render("Enter → open    r → refresh    Ctrl+C → quit"))
	return strings.Join(lines, "\n")
}

func dashboardTitle(variant routing.DashboardVariant) string {
	switch variant {
	case routing.DashboardOrgAdmin:
		return "Organization Dashboard"
	case routing.DashboardHRStaff:
		return "HR Dashboard"
	case routing.DashboardEmployee:
		return "My Workspace"
	}
	return "Dashboard"
}

func (v *dashboardView) renderCards() string {
	switch v.variant {
	case routing.DashboardOrgAdmin, routing.DashboardHRStaff:
		if v.stats == nil {
			return hintStyle.Render("Loading workforce counters…")
		}
		cards := []string{
			card("Employees", fmt.Sprintf("%d", v.stats.TotalEmployees)),
			card("Active", fmt.Sprintf("%d", v.stats.ActiveEmployees)),
			card("Present today", fmt.Sprintf("%d", v.stats.PresentToday)),
		}
		modules := v.app.store.Modules()
		if modules.Enabled(hr.ModuleLeaveManagement) {
			cards = append(cards,
				card("On leave", fmt.Sprintf("%d", v.stats.EmployeesOnLeave)),
				card("Pending leave", fmt.Sprintf("%d", v.stats.PendingLeaveRequests)),
			)
		}
		return renderCardRow(cards...)
	}
	return ""
}

func card(label, value string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(value),
		hintStyle.Render(label),
	)
	return panelStyle.Render(body)
}

func renderCardRow(cards ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

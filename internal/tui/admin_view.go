package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexthr/console/internal/hr"
	"github.com/nexthr/console/internal/orgs"
	"github.com/nexthr/console/internal/routing"
)

const filterDateLayout = "2006-01-02"

type adminMode int

const (
	adminModeBrowse adminMode = iota
	adminModeFilter
	adminModeStatus
	adminModeEdit
	adminModeConfirm
)

type adminPane int

const (
	panePending adminPane = iota
	paneAll
)

type adminLoadedMsg struct {
	seq int
	err error
}

// adminActionMsg reports a mutation plus the reload that followed it. The
// reload happens in the same command, so by the time this message lands the
// controller cache already reflects the backend.
type adminActionMsg struct {
	seq  int
	verb string
	name string
	err  error
}

type adminConfirm struct {
	verb string
	org  hr.Organization
}

type adminView struct {
	app  *App
	mode adminMode
	pane adminPane

	seq  int
	busy bool

	pendingSel int
	allSel     int

	filter     orgs.FilterSpec
	statusPick string

	// filter editor
	filterInputs [3]textinput.Model // name, from, to
	filterFocus  int
	filterStatus int // index into ALL + KnownStatuses

	// status override picker
	statusIdx int
	statusOrg hr.Organization

	// edit form
	editOrg       hr.Organization
	editInputs    [4]textinput.Model // name, email, phone, address
	editFocus     int
	editBracket   int
	editModules   map[string]bool
	editModuleIdx int
	editErr       string

	confirm adminConfirm
}

func newAdminView(app *App) *adminView {
	v := &adminView{app: app, filter: orgs.FilterSpec{Status: orgs.FilterAll}}
	names := []string{"name contains", "from (2006-01-02)", "to (2006-01-02)"}
	for i := range v.filterInputs {
		in := textinput.New()
		in.Placeholder = names[i]
		in.CharLimit = 60
		v.filterInputs[i] = in
	}
	edit := []string{"name", "email", "phone", "address"}
	for i := range v.editInputs {
		in := textinput.New()
		in.Placeholder = edit[i]
		in.CharLimit = 160
		v.editInputs[i] = in
	}
	return v
}

func (v *adminView) Init() tea.Cmd {
	return v.load()
}

// load refreshes the queue and the full set in one command. Their order does
// not matter; both land before the message does.
func (v *adminView) load() tea.Cmd {
	v.seq++
	v.busy = true
	seq := v.seq
	app := v.app
	ctl := app.orgs
	return func() tea.Msg {
		ctx, cancel := app.apiCtx()
		defer cancel()
		if err := ctl.RefreshPending(ctx); err != nil {
			return adminLoadedMsg{seq: seq, err: err}
		}
		if err := ctl.RefreshAll(ctx); err != nil {
			return adminLoadedMsg{seq: seq, err: err}
		}
		return adminLoadedMsg{seq: seq}
	}
}

// action issues one mutation and reloads in the same command, strictly in
// that order. No local state is touched on the way out.
func (v *adminView) action(verb string, org hr.Organization, mutate func(ctl *orgs.Controller) error) tea.Cmd {
	v.seq++
	v.busy = true
	seq := v.seq
	app := v.app
	ctl := app.orgs
	return func() tea.Msg {
		if err := mutate(ctl); err != nil {
			return adminActionMsg{seq: seq, verb: verb, name: org.Name, err: err}
		}
		ctx, cancel := app.apiCtx()
		defer cancel()
		if err := ctl.RefreshPending(ctx); err != nil {
			return adminActionMsg{seq: seq, verb: verb, name: org.Name, err: err}
		}
		if err := ctl.RefreshAll(ctx); err != nil {
			return adminActionMsg{seq: seq, verb: verb, name: org.Name, err: err}
		}
		return adminActionMsg{seq: seq, verb: verb, name: org.Name}
	}
}

func (v *adminView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case adminLoadedMsg:
		if msg.seq != v.seq {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			cmd, _ := v.app.reportErr(msg.err)
			return cmd
		}
		v.clampSelections()
		v.app.setStatus("Organizations refreshed")
		return nil

	case adminActionMsg:
		if msg.seq != v.seq {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			cmd, _ := v.app.reportErr(msg.err)
			return cmd
		}
		v.clampSelections()
		v.app.setStatus("%s · %s", msg.name, msg.verb)
		v.app.log.Info().Str("org", msg.name).Str("action", msg.verb).Msg("organization updated")
		return nil

	case tea.KeyMsg:
		switch v.mode {
		case adminModeBrowse:
			return v.updateBrowse(msg)
		case adminModeFilter:
			return v.updateFilter(msg)
		case adminModeStatus:
			return v.updateStatusPick(msg)
		case adminModeEdit:
			return v.updateEdit(msg)
		case adminModeConfirm:
			return v.updateConfirm(msg)
		}
	}
	return nil
}

func (v *adminView) pendingRows() []hr.Organization { return v.app.orgs.Pending() }
func (v *adminView) allRows() []hr.Organization     { return v.app.orgs.Filtered(v.filter) }

func (v *adminView) clampSelections() {
	if n := len(v.pendingRows()); v.pendingSel >= n {
		v.pendingSel = maxInt(0, n-1)
	}
	if n := len(v.allRows()); v.allSel >= n {
		v.allSel = maxInt(0, n-1)
	}
}

func (v *adminView) selected() (hr.Organization, bool) {
	var rows []hr.Organization
	var idx int
	if v.pane == panePending {
		rows, idx = v.pendingRows(), v.pendingSel
	} else {
		rows, idx = v.allRows(), v.allSel
	}
	if idx < 0 || idx >= len(rows) {
		return hr.Organization{}, false
	}
	return rows[idx], true
}

func (v *adminView) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	if v.busy {
		if msg.String() == "esc" {
			return navigate(routing.PathDashboard)
		}
		return nil
	}
	switch msg.String() {
	case "esc":
		return navigate(routing.PathDashboard)
	case "q":
		return tea.Quit
	case "o":
		return v.app.logout()
	case "tab":
		if v.pane == panePending {
			v.pane = paneAll
		} else {
			v.pane = panePending
		}
	case "r":
		return v.load()
	case "f":
		v.mode = adminModeFilter
		v.filterFocus = 0
		v.filterInputs[0].Focus()
	case "up", "k":
		v.moveSelection(-1)
	case "down", "j":
		v.moveSelection(1)
	case "a":
		if org, ok := v.selected(); ok && org.Status == hr.OrgStatusPendingApproval {
			v.confirm = adminConfirm{verb: "approve", org: org}
			v.mode = adminModeConfirm
		}
	case "x":
		if org, ok := v.selected(); ok && org.Status == hr.OrgStatusPendingApproval {
			v.confirm = adminConfirm{verb: "reject", org: org}
			v.mode = adminModeConfirm
		}
	case "s":
		if org, ok := v.selected(); ok {
			v.statusOrg = org
			v.statusIdx = statusIndex(org.Status)
			v.mode = adminModeStatus
		}
	case "e":
		if org, ok := v.selected(); ok {
			v.beginEdit(org)
		}
	case "d":
		if org, ok := v.selected(); ok {
			v.confirm = adminConfirm{verb: "delete", org: org}
			v.mode = adminModeConfirm
		}
	}
	return nil
}

func (v *adminView) moveSelection(delta int) {
	if v.pane == panePending {
		n := len(v.pendingRows())
		if n > 0 {
			v.pendingSel = clampInt(v.pendingSel+delta, 0, n-1)
		}
		return
	}
	n := len(v.allRows())
	if n > 0 {
		v.allSel = clampInt(v.allSel+delta, 0, n-1)
	}
}

func (v *adminView) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		c := v.confirm
		v.mode = adminModeBrowse
		switch c.verb {
		case "approve":
			return v.action("approved", c.org, func(ctl *orgs.Controller) error {
				ctx, cancel := v.app.apiCtx()
				defer cancel()
				return ctl.Approve(ctx, c.org.ID)
			})
		case "reject":
			return v.action("rejected", c.org, func(ctl *orgs.Controller) error {
				ctx, cancel := v.app.apiCtx()
				defer cancel()
				return ctl.Reject(ctx, c.org.ID)
			})
		case "delete":
			return v.action("deleted", c.org, func(ctl *orgs.Controller) error {
				ctx, cancel := v.app.apiCtx()
				defer cancel()
				return ctl.Remove(ctx, c.org.ID)
			})
		}
	case "n", "esc":
		v.mode = adminModeBrowse
	}
	return nil
}

func statusIndex(s hr.OrgStatus) int {
	for i, known := range hr.KnownStatuses {
		if known == s {
			return i
		}
	}
	return 0
}

func (v *adminView) updateStatusPick(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.mode = adminModeBrowse
	case "up", "k":
		v.statusIdx = clampInt(v.statusIdx-1, 0, len(hr.KnownStatuses)-1)
	case "down", "j":
		v.statusIdx = clampInt(v.statusIdx+1, 0, len(hr.KnownStatuses)-1)
	case "enter":
		target := hr.KnownStatuses[v.statusIdx]
		org := v.statusOrg
		v.mode = adminModeBrowse
		if target == org.Status {
			return nil
		}
		return v.action("status set to "+target.FriendlyName(), org, func(ctl *orgs.Controller) error {
			ctx, cancel := v.app.apiCtx()
			defer cancel()
			return ctl.SetStatus(ctx, org.ID, target)
		})
	}
	return nil
}

func (v *adminView) beginEdit(org hr.Organization) {
	v.editOrg = org
	v.editInputs[0].SetValue(org.Name)
	v.editInputs[1].SetValue(org.Email)
	v.editInputs[2].SetValue(org.Phone)
	v.editInputs[3].SetValue(org.Address)
	v.editBracket = 0
	for i, r := range hr.EmployeeCountRanges {
		if r == org.EmployeeCountRange {
			v.editBracket = i
		}
	}
	v.editModules = map[string]bool{
		hr.ModulePerformanceTracking: org.ModulePerformanceTracking,
		hr.ModuleEmployeeFeedback:    org.ModuleEmployeeFeedback,
		hr.ModuleHiringManagement:    org.ModuleHiringManagement,
		hr.ModuleAIFeedbackAnalyze:   org.ModuleAIFeedbackAnalyze,
		hr.ModuleAIAttritionPredict:  org.ModuleAIAttritionPredict,
	}
	v.editFocus = 0
	v.editErr = ""
	for i := range v.editInputs {
		v.editInputs[i].Blur()
	}
	v.editInputs[0].Focus()
	v.mode = adminModeEdit
}

// Edit rows: 4 text inputs, bracket, 5 module toggles, save, cancel.
const (
	editRowBracket = 4
	editRowModules = 5
	editRowSave    = 6
	editRowCancel  = 7
	editRowCount   = 8
)

func (v *adminView) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.mode = adminModeBrowse
		return nil
	case "tab", "down":
		v.setEditFocus(v.editFocus + 1)
		return nil
	case "shift+tab", "up":
		v.setEditFocus(v.editFocus - 1)
		return nil
	case "left":
		switch v.editFocus {
		case editRowBracket:
			v.editBracket = (v.editBracket + len(hr.EmployeeCountRanges) - 1) % len(hr.EmployeeCountRanges)
			return nil
		case editRowModules:
			v.editModuleIdx = (v.editModuleIdx + len(hr.ExtendedModules) - 1) % len(hr.ExtendedModules)
			return nil
		}
	case "right":
		switch v.editFocus {
		case editRowBracket:
			v.editBracket = (v.editBracket + 1) % len(hr.EmployeeCountRanges)
			return nil
		case editRowModules:
			v.editModuleIdx = (v.editModuleIdx + 1) % len(hr.ExtendedModules)
			return nil
		}
	case " ":
		if v.editFocus == editRowModules {
			name := hr.ExtendedModules[v.editModuleIdx]
			v.editModules[name] = !v.editModules[name]
			return nil
		}
	case "enter":
		switch v.editFocus {
		case editRowSave:
			return v.submitEdit()
		case editRowCancel:
			v.mode = adminModeBrowse
			return nil
		default:
			v.setEditFocus(v.editFocus + 1)
			return nil
		}
	}
	if v.editFocus < len(v.editInputs) {
		var cmd tea.Cmd
		v.editInputs[v.editFocus], cmd = v.editInputs[v.editFocus].Update(msg)
		return cmd
	}
	return nil
}

func (v *adminView) setEditFocus(idx int) {
	v.editFocus = (idx + editRowCount) % editRowCount
	for i := range v.editInputs {
		v.editInputs[i].Blur()
	}
	if v.editFocus < len(v.editInputs) {
		v.editInputs[v.editFocus].Focus()
	}
}

func (v *adminView) submitEdit() tea.Cmd {
	name := strings.TrimSpace(v.editInputs[0].Value())
	email := strings.TrimSpace(v.editInputs[1].Value())
	if name == "" {
		v.editErr = "name is required"
		return nil
	}
	if email != "" && !hr.ValidEmail(email) {
		v.editErr = "enter a valid email address"
		return nil
	}
	upd := hr.OrganizationUpdate{
		Name:               name,
		Email:              email,
		Phone:              strings.TrimSpace(v.editInputs[2].Value()),
		Address:            strings.TrimSpace(v.editInputs[3].Value()),
		EmployeeCountRange: hr.EmployeeCountRanges[v.editBracket],

		ModulePerformanceTracking: v.editModules[hr.ModulePerformanceTracking],
		ModuleEmployeeFeedback:    v.editModules[hr.ModuleEmployeeFeedback],
		ModuleHiringManagement:    v.editModules[hr.ModuleHiringManagement],
		ModuleAIFeedbackAnalyze:   v.editModules[hr.ModuleAIFeedbackAnalyze],
		ModuleAIAttritionPredict:  v.editModules[hr.ModuleAIAttritionPredict],
	}
	org := v.editOrg
	v.mode = adminModeBrowse
	return v.action("updated", org, func(ctl *orgs.Controller) error {
		ctx, cancel := v.app.apiCtx()
		defer cancel()
		return ctl.Update(ctx, org.ID, upd)
	})
}

// Filter rows: status cycle, 3 text inputs, apply, clear.
const (
	filterRowStatus = iota
	filterRowName
	filterRowFrom
	filterRowTo
	filterRowApply
	filterRowClear
	filterRowCount
)

func (v *adminView) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.mode = adminModeBrowse
		return nil
	case "tab", "down":
		v.setFilterFocus(v.filterFocus + 1)
		return nil
	case "shift+tab", "up":
		v.setFilterFocus(v.filterFocus - 1)
		return nil
	case "left":
		if v.filterFocus == filterRowStatus {
			v.filterStatus = (v.filterStatus + len(hr.KnownStatuses)) % (len(hr.KnownStatuses) + 1)
			return nil
		}
	case "right":
		if v.filterFocus == filterRowStatus {
			v.filterStatus = (v.filterStatus + 1) % (len(hr.KnownStatuses) + 1)
			return nil
		}
	case "enter":
		switch v.filterFocus {
		case filterRowApply:
			return v.applyFilter()
		case filterRowClear:
			v.filter = orgs.FilterSpec{Status: orgs.FilterAll}
			v.filterStatus = 0
			for i := range v.filterInputs {
				v.filterInputs[i].SetValue("")
			}
			v.mode = adminModeBrowse
			v.pane = paneAll
			return nil
		default:
			v.setFilterFocus(v.filterFocus + 1)
			return nil
		}
	}
	if idx := v.filterFocus - filterRowName; idx >= 0 && idx < len(v.filterInputs) {
		var cmd tea.Cmd
		v.filterInputs[idx], cmd = v.filterInputs[idx].Update(msg)
		return cmd
	}
	return nil
}

func (v *adminView) setFilterFocus(idx int) {
	v.filterFocus = (idx + filterRowCount) % filterRowCount
	for i := range v.filterInputs {
		v.filterInputs[i].Blur()
	}
	if i := v.filterFocus - filterRowName; i >= 0 && i < len(v.filterInputs) {
		v.filterInputs[i].Focus()
	}
}

func (v *adminView) filterStatusLabel() string {
	if v.filterStatus == 0 {
		return orgs.FilterAll
	}
	return string(hr.KnownStatuses[v.filterStatus-1])
}

// applyFilter only rewrites the filter; the table reads the controller cache
// through it, so no reload is needed.
func (v *adminView) applyFilter() tea.Cmd {
	spec := orgs.FilterSpec{Status: v.filterStatusLabel(), Name: strings.TrimSpace(v.filterInputs[0].Value())}
	if raw := strings.TrimSpace(v.filterInputs[1].Value()); raw != "" {
		from, err := time.Parse(filterDateLayout, raw)
		if err != nil {
			v.app.setStatus("bad from date: %v", err)
			return nil
		}
		spec.From = from
	}
	if raw := strings.TrimSpace(v.filterInputs[2].Value()); raw != "" {
		to, err := time.Parse(filterDateLayout, raw)
		if err != nil {
			v.app.setStatus("bad to date: %v", err)
			return nil
		}
		// whole-day inclusive
		spec.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	v.filter = spec
	v.allSel = 0
	v.mode = adminModeBrowse
	v.pane = paneAll
	return nil
}

func (v *adminView) View() string {
	switch v.mode {
	case adminModeFilter:
		return v.viewFilter()
	case adminModeStatus:
		return v.viewStatusPick()
	case adminModeEdit:
		return v.viewEdit()
	case adminModeConfirm:
		return v.viewConfirm()
	}
	return v.viewBrowse()
}

func (v *adminView) viewBrowse() string {
	stats := v.app.orgs.Stats()
	counters := renderCardRow(
		card("Total", fmt.Sprintf("%d", stats.Total)),
		card("Pending", fmt.Sprintf("%d", stats.Pending)),
		card("Active", fmt.Sprintf("%d", stats.Active)),
		card("Suspended", fmt.Sprintf("%d", stats.Suspended)),
	)

	pending := v.renderOrgTable("Pending approval", v.pendingRows(), v.pendingSel, v.pane == panePending)
	all := v.renderOrgTable(fmt.Sprintf("All organizations · filter %s", v.filterSummary()), v.allRows(), v.allSel, v.pane == paneAll)

	lines := []string{
		titleStyle.Render("Organization approvals"),
		"",
		counters,
		"",
		pending,
		"",
		all,
		"",
		hintStyle.Render("Tab → pane    a → approve    x → reject    s → status    e → edit    d → delete    f → filter    r → refresh    o → sign out    q → quit"),
	}
	if v.busy {
		lines = append(lines, hintStyle.Render("Working…"))
	}
	return strings.Join(lines, "\n")
}

func (v *adminView) filterSummary() string {
	parts := []string{v.filter.Status}
	if v.filter.Status == "" {
		parts[0] = orgs.FilterAll
	}
	if v.filter.Name != "" {
		parts = append(parts, fmt.Sprintf("name~%q", v.filter.Name))
	}
	if !v.filter.From.IsZero() {
		parts = append(parts, "from "+v.filter.From.Format(filterDateLayout))
	}
	if !v.filter.To.IsZero() {
		parts = append(parts, "to "+v.filter.To.Format(filterDateLayout))
	}
	return strings.Join(parts, " · ")
}

func (v *adminView) renderOrgTable(title string, rows []hr.Organization, sel int, focused bool) string {
	head := titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(rows)))
	if len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, head, hintStyle.Render("  nothing here"))
	}
	out := []string{head}
	for i, org := range rows {
		marker := "  "
		if focused && i == sel {
			marker = "> "
		}
		line := fmt.Sprintf("%s%-28s %-18s %-10s %s",
			marker, truncate(org.Name, 28), org.Status.FriendlyName(),
			org.EmployeeCountRange, org.CreatedAt.Format(filterDateLayout))
		if focused && i == sel {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (v *adminView) viewConfirm() string {
	c := v.confirm
	return strings.Join([]string{
		titleStyle.Render("Confirm"),
		"",
		fmt.Sprintf("%s organization %q?", strings.Title(c.verb), c.org.Name),
		"",
		hintStyle.Render("y → confirm    n → cancel"),
	}, "\n")
}

func (v *adminView) viewStatusPick() string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Set status · %s (now %s)", v.statusOrg.Name, v.statusOrg.Status.FriendlyName())),
		"",
	}
	for i, s := range hr.KnownStatuses {
		marker := "  "
		if i == v.statusIdx {
			marker = "> "
		}
		lines = append(lines, marker+s.FriendlyName())
	}
	lines = append(lines, "", hintStyle.Render("Enter → apply    Esc → cancel"))
	return strings.Join(lines, "\n")
}

func (v *adminView) viewEdit() string {
	labels := []string{"Name", "Email", "Phone", "Address"}
	lines := []string{titleStyle.Render("Edit organization · " + v.editOrg.Name), ""}
	for i := range v.editInputs {
		lines = append(lines, fieldLabel(labels[i], v.editFocus == i)+v.editInputs[i].View())
	}
	bracket := fmt.Sprintf("◂ %s ▸", hr.EmployeeCountRanges[v.editBracket])
	lines = append(lines, fieldLabel("Employees", v.editFocus == editRowBracket)+bracket, "")
	for i, name := range hr.ExtendedModules {
		mark := "[ ]"
		if v.editModules[name] {
			mark = "[x]"
		}
		row := fmt.Sprintf("  %s %s", mark, moduleLabels[name])
		if v.editFocus == editRowModules && i == v.editModuleIdx {
			row = "> " + strings.TrimPrefix(row, "  ")
		}
		lines = append(lines, row)
	}
	lines = append(lines, "",
		buttonLabel("[ Save ]", v.editFocus == editRowSave),
		buttonLabel("[ Cancel ]", v.editFocus == editRowCancel),
	)
	if v.editErr != "" {
		lines = append(lines, "", errStyle.Render(v.editErr))
	}
	lines = append(lines, "", hintStyle.Render("Tab → next    Space → toggle module    Esc → cancel"))
	return strings.Join(lines, "\n")
}

func (v *adminView) viewFilter() string {
	lines := []string{titleStyle.Render("Filter organizations"), ""}
	status := fmt.Sprintf("◂ %s ▸", v.filterStatusLabel())
	lines = append(lines, fieldLabel("Status", v.filterFocus == filterRowStatus)+status)
	labels := []string{"Name", "From", "To"}
	for i := range v.filterInputs {
		lines = append(lines, fieldLabel(labels[i], v.filterFocus == filterRowName+i)+v.filterInputs[i].View())
	}
	lines = append(lines, "",
		buttonLabel("[ Apply ]", v.filterFocus == filterRowApply),
		buttonLabel("[ Clear ]", v.filterFocus == filterRowClear),
		"",
		hintStyle.Render("All predicates combine; counters stay global. Esc → cancel"),
	)
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

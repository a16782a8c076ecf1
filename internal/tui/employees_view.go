package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexthr/console/internal/hr"
	"github.com/nexthr/console/internal/routing"
)

type employeesMode int

const (
	employeesModeBrowse employeesMode = iota
	employeesModeForm
	employeesModeConfirm
)

type employeesLoadedMsg struct {
	seq  int
	rows []hr.Employee
	err  error
}

type employeeSavedMsg struct {
	seq  int
	verb string
	name string
	rows []hr.Employee
	err  error
}

// Form rows: 6 text inputs, employment type cycle, joining date, active
// toggle, save, cancel.
const (
	empFieldFirst = iota
	empFieldLast
	empFieldEmail
	empFieldPhone
	empFieldDepartment
	empFieldDesignation
	empTextFieldCount
)

const (
	empRowType = empTextFieldCount + iota
	empRowJoined
	empRowActive
	empRowSave
	empRowCancel
	empRowCount
)

type employeesView struct {
	app  *App
	mode employeesMode

	seq  int
	busy bool

	rows []hr.Employee
	sel  int

	editing   *hr.Employee // nil while creating
	inputs    [empTextFieldCount]textinput.Model
	joined    textinput.Model
	focus     int
	typeIdx   int
	active    bool
	formErr   string
	confirmed hr.Employee
}

func newEmployeesView(app *App) *employeesView {
	v := &employeesView{app: app}
	names := []string{"first name", "last name", "email", "phone", "department", "designation"}
	for i := range v.inputs {
		in := textinput.New()
		in.Placeholder = names[i]
		in.CharLimit = 120
		v.inputs[i] = in
	}
	v.joined = textinput.New()
	v.joined.Placeholder = "2006-01-02"
	v.joined.CharLimit = 10
	return v
}

func (v *employeesView) Init() tea.Cmd {
	return v.load()
}

func (v *employeesView) load() tea.Cmd {
	v.seq++
	v.busy = true
	seq := v.seq
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.apiCtx()
		defer cancel()
		rows, err := app.api.Employees(ctx)
		return employeesLoadedMsg{seq: seq, rows: rows, err: err}
	}
}

// save issues the mutation, then reloads the directory in the same command.
func (v *employeesView) save(verb string, emp hr.Employee, mutate func() error) tea.Cmd {
	v.seq++
	v.busy = true
	seq := v.seq
	app := v.app
	name := emp.FullName()
	return func() tea.Msg {
		if err := mutate(); err != nil {
			return employeeSavedMsg{seq: seq, verb: verb, name: name, err: err}
		}
		ctx, cancel := app.apiCtx()
		defer cancel()
		rows, err := app.api.Employees(ctx)
		return employeeSavedMsg{seq: seq, verb: verb, name: name, rows: rows, err: err}
	}
}

func (v *employeesView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case employeesLoadedMsg:
		if msg.seq != v.seq {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			cmd, _ := v.app.reportErr(msg.err)
			return cmd
		}
		v.rows = msg.rows
		v.sel = clampInt(v.sel, 0, maxInt(0, len(v.rows)-1))
		return nil

	case employeeSavedMsg:
		if msg.seq != v.seq {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			cmd, _ := v.app.reportErr(msg.err)
			return cmd
		}
		v.rows = msg.rows
		v.sel = clampInt(v.sel, 0, maxInt(0, len(v.rows)-1))
		v.app.setStatus("%s · %s", msg.name, msg.verb)
		v.app.log.Info().Str("employee", msg.name).Str("action", msg.verb).Msg("directory updated")
		return nil

	case tea.KeyMsg:
		switch v.mode {
		case employeesModeBrowse:
			return v.updateBrowse(msg)
		case employeesModeForm:
			return v.updateForm(msg)
		case employeesModeConfirm:
			return v.updateConfirm(msg)
		}
	}
	return nil
}

func (v *employeesView) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return navigate(routing.PathDashboard)
	case "r":
		return v.load()
	case "up", "k":
		if len(v.rows) > 0 {
			v.sel = clampInt(v.sel-1, 0, len(v.rows)-1)
		}
	case "down", "j":
		if len(v.rows) > 0 {
			v.sel = clampInt(v.sel+1, 0, len(v.rows)-1)
		}
	case "n":
		if !v.busy {
			v.beginForm(nil)
		}
	case "e", "enter":
		if !v.busy && v.sel < len(v.rows) {
			emp := v.rows[v.sel]
			v.beginForm(&emp)
		}
	case "d":
		if !v.busy && v.sel < len(v.rows) {
			v.confirmed = v.rows[v.sel]
			v.mode = employeesModeConfirm
		}
	}
	return nil
}

func (v *employeesView) beginForm(emp *hr.Employee) {
	v.editing = emp
	v.formErr = ""
	v.typeIdx = 0
	v.active = true
	for i := range v.inputs {
		v.inputs[i].SetValue("")
		v.inputs[i].Blur()
	}
	v.joined.SetValue("")
	v.joined.Blur()
	if emp != nil {
		v.inputs[empFieldFirst].SetValue(emp.FirstName)
		v.inputs[empFieldLast].SetValue(emp.LastName)
		v.inputs[empFieldEmail].SetValue(emp.Email)
		v.inputs[empFieldPhone].SetValue(emp.Phone)
		v.inputs[empFieldDepartment].SetValue(emp.Department)
		v.inputs[empFieldDesignation].SetValue(emp.Designation)
		v.joined.SetValue(emp.DateOfJoining)
		v.active = emp.IsActive
		for i, et := range hr.EmploymentTypes {
			if et == emp.EmploymentType {
				v.typeIdx = i
			}
		}
	}
	v.focus = empFieldFirst
	v.inputs[empFieldFirst].Focus()
	v.mode = employeesModeForm
}

func (v *employeesView) setFormFocus(idx int) {
	v.focus = (idx + empRowCount) % empRowCount
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	v.joined.Blur()
	switch {
	case v.focus < empTextFieldCount:
		v.inputs[v.focus].Focus()
	case v.focus == empRowJoined:
		v.joined.Focus()
	}
}

func (v *employeesView) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.mode = employeesModeBrowse
		return nil
	case "tab", "down":
		v.setFormFocus(v.focus + 1)
		return nil
	case "shift+tab", "up":
		v.setFormFocus(v.focus - 1)
		return nil
	case "left":
		if v.focus == empRowType {
			v.typeIdx = (v.typeIdx + len(hr.EmploymentTypes) - 1) % len(hr.EmploymentTypes)
			return nil
		}
	case "right":
		if v.focus == empRowType {
			v.typeIdx = (v.typeIdx + 1) % len(hr.EmploymentTypes)
			return nil
		}
	case " ":
		if v.focus == empRowActive {
			v.active = !v.active
			return nil
		}
	case "enter":
		switch v.focus {
		case empRowSave:
			return v.submit()
		case empRowCancel:
			v.mode = employeesModeBrowse
			return nil
		default:
			v.setFormFocus(v.focus + 1)
			return nil
		}
	}
	switch {
	case v.focus < empTextFieldCount:
		var cmd tea.Cmd
		v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		return cmd
	case v.focus == empRowJoined:
		var cmd tea.Cmd
		v.joined, cmd = v.joined.Update(msg)
		return cmd
	}
	return nil
}

func (v *employeesView) submit() tea.Cmd {
	first := strings.TrimSpace(v.inputs[empFieldFirst].Value())
	last := strings.TrimSpace(v.inputs[empFieldLast].Value())
	email := strings.TrimSpace(v.inputs[empFieldEmail].Value())
	if first == "" && last == "" {
		v.formErr = "a name is required"
		return nil
	}
	if !hr.ValidEmail(email) {
		v.formErr = "enter a valid email address"
		return nil
	}
	joined := strings.TrimSpace(v.joined.Value())
	if joined != "" {
		if _, err := time.Parse(filterDateLayout, joined); err != nil {
			v.formErr = "joining date must be 2006-01-02"
			return nil
		}
	}
	emp := hr.Employee{
		FirstName:      first,
		LastName:       last,
		Email:          email,
		Phone:          strings.TrimSpace(v.inputs[empFieldPhone].Value()),
		Department:     strings.TrimSpace(v.inputs[empFieldDepartment].Value()),
		Designation:    strings.TrimSpace(v.inputs[empFieldDesignation].Value()),
		EmploymentType: hr.EmploymentTypes[v.typeIdx],
		DateOfJoining:  joined,
		IsActive:       v.active,
	}
	v.formErr = ""
	v.mode = employeesModeBrowse

	app := v.app
	if v.editing != nil {
		id := v.editing.ID
		emp.ID = id
		emp.EmployeeCode = v.editing.EmployeeCode
		return v.save("updated", emp, func() error {
			ctx, cancel := app.apiCtx()
			defer cancel()
			return app.api.UpdateEmployee(ctx, id, emp)
		})
	}
	return v.save("created", emp, func() error {
		ctx, cancel := app.apiCtx()
		defer cancel()
		return app.api.CreateEmployee(ctx, emp)
	})
}

func (v *employeesView) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		emp := v.confirmed
		v.mode = employeesModeBrowse
		app := v.app
		return v.save("removed", emp, func() error {
			ctx, cancel := app.apiCtx()
			defer cancel()
			return app.api.DeleteEmployee(ctx, emp.ID)
		})
	case "n", "esc":
		v.mode = employeesModeBrowse
	}
	return nil
}

func (v *employeesView) View() string {
	switch v.mode {
	case employeesModeForm:
		return v.viewForm()
	case employeesModeConfirm:
		return strings.Join([]string{
			titleStyle.Render("Confirm"),
			"",
			fmt.Sprintf("Remove employee %q?", v.confirmed.FullName()),
			"",
			hintStyle.Render("y → confirm    n → cancel"),
		}, "\n")
	}
	return v.viewBrowse()
}

func (v *employeesView) viewBrowse() string {
	lines := []string{titleStyle.Render(fmt.Sprintf("Employees (%d)", len(v.rows))), ""}
	if len(v.rows) == 0 {
		lines = append(lines, hintStyle.Render("No employees yet. Press n to add the first one."))
	}
	for i, emp := range v.rows {
		marker := "  "
		state := "active"
		if !emp.IsActive {
			state = "inactive"
		}
		line := fmt.Sprintf("%s%-24s %-28s %-16s %s",
			marker, truncate(emp.FullName(), 24), truncate(emp.Email, 28),
			truncate(emp.Department, 16), state)
		if i == v.sel {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Render("> " + line[2:])
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", hintStyle.Render("n → new    e → edit    d → delete    r → refresh    Esc → back"))
	if v.busy {
		lines = append(lines, hintStyle.Render("Working…"))
	}
	return strings.Join(lines, "\n")
}

func (v *employeesView) viewForm() string {
	head := "New employee"
	if v.editing != nil {
		head = "Edit employee · " + v.editing.FullName()
	}
	labels := []string{"First name", "Last name", "Email", "Phone", "Department", "Designation"}
	lines := []string{titleStyle.Render(head), ""}
	for i := range v.inputs {
		lines = append(lines, fieldLabel(labels[i], v.focus == i)+v.inputs[i].View())
	}
	lines = append(lines,
		fieldLabel("Type", v.focus == empRowType)+fmt.Sprintf("◂ %s ▸", hr.EmploymentTypes[v.typeIdx]),
		fieldLabel("Joined", v.focus == empRowJoined)+v.joined.View(),
	)
	mark := "[ ]"
	if v.active {
		mark = "[x]"
	}
	lines = append(lines, fieldLabel("Active", v.focus == empRowActive)+mark)
	lines = append(lines, "",
		buttonLabel("[ Save ]", v.focus == empRowSave),
		buttonLabel("[ Cancel ]", v.focus == empRowCancel),
	)
	if v.formErr != "" {
		lines = append(lines, "", errStyle.Render(v.formErr))
	}
	lines = append(lines, "", hintStyle.Render("Tab → next    ◂ ▸ → choose    Space → toggle    Esc → cancel"))
	return strings.Join(lines, "\n")
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexthr/console/internal/gateway"
	"github.com/nexthr/console/internal/hr"
	"github.com/nexthr/console/internal/routing"
)

// Text rows first, then the bracket picker, module toggles and buttons.
const (
	signupFieldOrgName = iota
	signupFieldIndustry
	signupFieldCountry
	signupFieldCity
	signupFieldAdminName
	signupFieldAdminEmail
	signupFieldAdminPhone
	signupFieldPassword
	signupFieldConfirm
	signupTextFieldCount
)

const (
	signupRowBracket = signupTextFieldCount + iota
	signupRowModules
	signupRowSubmit
	signupRowBack
	signupRowCount
)

var moduleLabels = map[string]string{
	hr.ModulePerformanceTracking: "Performance Tracking",
	hr.ModuleEmployeeFeedback:    "Employee Feedback",
	hr.ModuleHiringManagement:    "Hiring Management",
	hr.ModuleAIFeedbackAnalyze:   "AI Feedback Analysis",
	hr.ModuleAIAttritionPredict:  "AI Attrition Prediction",
}

type signupDoneMsg struct {
	err error
}

type signupView struct {
	app    *App
	inputs []textinput.Model
	focus  int

	bracketIdx int
	moduleIdx  int
	modules    map[string]bool

	busy    bool
	formErr string
}

func newSignupView(app *App) *signupView {
	labels := []string{
		"organization name", "industry", "country", "city (optional)",
		"admin full name", "admin email", "admin phone", "password", "confirm password",
	}
	inputs := make([]textinput.Model, signupTextFieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 160
		if i == signupFieldPassword || i == signupFieldConfirm {
			in.EchoMode = textinput.EchoPassword
		}
		inputs[i] = in
	}
	inputs[signupFieldOrgName].Focus()

	return &signupView{
		app:     app,
		inputs:  inputs,
		modules: map[string]bool{},
	}
}

func (v *signupView) Init() tea.Cmd {
	return nil
}

func (v *signupView) setFocus(idx int) {
	v.focus = (idx + signupRowCount) % signupRowCount
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	if v.focus < signupTextFieldCount {
		v.inputs[v.focus].Focus()
	}
}

func (v *signupView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case signupDoneMsg:
		v.busy = false
		if msg.err != nil {
			v.formErr = msg.err.Error()
			v.app.log.Warn().Err(msg.err).Msg("signup failed")
			return nil
		}
		v.app.log.Info().Msg("organization registration submitted")
		v.app.setStatus("Registration submitted · an administrator must approve the organization before you can sign in")
		return navigate(routing.PathLogin)

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch msg.String() {
		case "esc":
			return navigate(routing.PathLogin)
		case "tab", "down":
			v.setFocus(v.focus + 1)
			return nil
		case "shift+tab", "up":
			v.setFocus(v.focus - 1)
			return nil
		case "left":
			switch v.focus {
			case signupRowBracket:
				v.bracketIdx = (v.bracketIdx + len(hr.EmployeeCountRanges) - 1) % len(hr.EmployeeCountRanges)
				return nil
			case signupRowModules:
				v.moduleIdx = (v.moduleIdx + len(hr.ExtendedModules) - 1) % len(hr.ExtendedModules)
				return nil
			}
		case "right":
			switch v.focus {
			case signupRowBracket:
				v.bracketIdx = (v.bracketIdx + 1) % len(hr.EmployeeCountRanges)
				return nil
			case signupRowModules:
				v.moduleIdx = (v.moduleIdx + 1) % len(hr.ExtendedModules)
				return nil
			}
		case " ":
			if v.focus == signupRowModules {
				name := hr.ExtendedModules[v.moduleIdx]
				v.modules[name] = !v.modules[name]
				return nil
			}
		case "enter":
			switch v.focus {
			case signupRowSubmit:
				return v.submit()
			case signupRowBack:
				return navigate(routing.PathLogin)
			default:
				v.setFocus(v.focus + 1)
				return nil
			}
		}
	}

	if v.focus < signupTextFieldCount {
		var cmd tea.Cmd
		v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		return cmd
	}
	return nil
}

func (v *signupView) value(idx int) string {
	return strings.TrimSpace(v.inputs[idx].Value())
}

func (v *signupView) validate() string {
	if v.value(signupFieldOrgName) == "" {
		return "organization name is required"
	}
	if v.value(signupFieldIndustry) == "" {
		return "industry is required"
	}
	if v.value(signupFieldCountry) == "" {
		return "country is required"
	}
	if v.value(signupFieldAdminName) == "" {
		return "admin name is required"
	}
	if !hr.ValidEmail(v.value(signupFieldAdminEmail)) {
		return "enter a valid admin email address"
	}
	if v.value(signupFieldAdminPhone) == "" {
		return "admin phone is required"
	}
	password := v.inputs[signupFieldPassword].Value()
	if !hr.StrongPassword(password) {
		return "password needs 8+ characters with upper, lower, digit and special (@$!%*?&#)"
	}
	if password != v.inputs[signupFieldConfirm].Value() {
		return "passwords do not match"
	}
	return ""
}

func (v *signupView) submit() tea.Cmd {
	if msg := v.validate(); msg != "" {
		v.formErr = msg
		return nil
	}
	v.formErr = ""
	v.busy = true
	v.app.setStatus("Submitting registration…")

	req := gateway.SignupRequest{
		OrganizationName: v.value(signupFieldOrgName),
		EmployeeCount:    hr.EmployeeCountRanges[v.bracketIdx],
		Industry:         v.value(signupFieldIndustry),
		Country:          v.value(signupFieldCountry),
		City:             v.value(signupFieldCity),
		AdminName:        v.value(signupFieldAdminName),
		AdminEmail:       v.value(signupFieldAdminEmail),
		AdminPhone:       v.value(signupFieldAdminPhone),
		Password:         v.inputs[signupFieldPassword].Value(),

		ModulePerformanceTracking: v.modules[hr.ModulePerformanceTracking],
		ModuleEmployeeFeedback:    v.modules[hr.ModuleEmployeeFeedback],
		ModuleHiringManagement:    v.modules[hr.ModuleHiringManagement],
		ModuleAIFeedbackAnalyze:   v.modules[hr.ModuleAIFeedbackAnalyze],
		ModuleAIAttritionPredict:  v.modules[hr.ModuleAIAttritionPredict],
	}
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.apiCtx()
		defer cancel()
		return signupDoneMsg{err: app.api.Signup(ctx, req)}
	}
}

func (v *signupView) View() string {
	labels := []string{
		"Organization", "Industry", "Country", "City",
		"Admin name", "Admin email", "Admin phone", "Password", "Confirm",
	}
	lines := []string{titleStyle.Render("Register organization"), ""}
	for i := range v.inputs {
		lines = append(lines, fieldLabel(labels[i], v.focus == i)+v.inputs[i].View())
	}

	bracket := fmt.Sprintf("◂ %s ▸", hr.EmployeeCountRanges[v.bracketIdx])
	lines = append(lines, fieldLabel("Employees", v.focus == signupRowBracket)+bracket)

	lines = append(lines, "", titleStyle.Render("Extended modules"))
	for i, name := range hr.ExtendedModules {
		mark := "[ ]"
		if v.modules[name] {
			mark = "[x]"
		}
		row := fmt.Sprintf("  %s %s", mark, moduleLabels[name])
		if v.focus == signupRowModules && i == v.moduleIdx {
			row = "> " + strings.TrimPrefix(row, "  ")
		}
		lines = append(lines, row)
	}

	lines = append(lines, "",
		buttonLabel("[ Submit registration ]", v.focus == signupRowSubmit),
		buttonLabel("[ Back to sign in ]", v.focus == signupRowBack),
	)
	if v.formErr != "" {
		lines = append(lines, "", errStyle.Render(v.formErr))
	}
	if v.busy {
		lines = append(lines, "", hintStyle.Render("Contacting server…"))
	}
	lines = append(lines, "", hintStyle.Render("Tab → next    ◂ ▸ → choose    Space → toggle module    Esc → back"))
	return strings.Join(lines, "\n")
}

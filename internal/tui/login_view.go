package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexthr/console/internal/gateway"
	"github.com/nexthr/console/internal/hr"
	"github.com/nexthr/console/internal/routing"
)

const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldSubmit
	loginFieldSignup
	loginFieldCount
)

type loginDoneMsg struct {
	result *gateway.LoginResult
	err    error
}

type loginView struct {
	app      *App
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	formErr  string
}

func newLoginView(app *App) *loginView {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return &loginView{app: app, email: email, password: password}
}

func (v *loginView) Init() tea.Cmd {
	return nil
}

func (v *loginView) setFocus(idx int) {
	v.focus = (idx + loginFieldCount) % loginFieldCount
	v.email.Blur()
	v.password.Blur()
	switch v.focus {
	case loginFieldEmail:
		v.email.Focus()
	case loginFieldPassword:
		v.password.Focus()
	}
}

func (v *loginView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginDoneMsg:
		v.busy = false
		if msg.err != nil {
			v.formErr = msg.err.Error()
			v.app.log.Warn().Err(msg.err).Msg("login failed")
			return nil
		}
		return v.completeLogin(msg.result)

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			v.setFocus(v.focus + 1)
			return nil
		case "shift+tab", "up":
			v.setFocus(v.focus - 1)
			return nil
		case "enter":
			switch v.focus {
			case loginFieldSignup:
				return navigate(routing.PathSignup)
			case loginFieldEmail, loginFieldPassword:
				v.setFocus(v.focus + 1)
				return nil
			default:
				return v.submit()
			}
		}
	}

	var cmd tea.Cmd
	switch v.focus {
	case loginFieldEmail:
		v.email, cmd = v.email.Update(msg)
	case loginFieldPassword:
		v.password, cmd = v.password.Update(msg)
	}
	return cmd
}

func (v *loginView) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()
	if !hr.ValidEmail(email) {
		v.formErr = "enter a valid email address"
		return nil
	}
	if password == "" {
		v.formErr = "password is required"
		return nil
	}
	v.formErr = ""
	v.busy = true
	v.app.setStatus("Signing in…")
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.apiCtx()
		defer cancel()
		result, err := app.api.Login(ctx, email, password)
		return loginDoneMsg{result: result, err: err}
	}
}

// completeLogin lands the session in the store and moves on. A login against
// an organization that is no longer actionable never reaches this point; the
// backend refuses it first.
func (v *loginView) completeLogin(result *gateway.LoginResult) tea.Cmd {
	v.app.store.Begin()
	if err := v.app.store.Complete(result.Principal, result.Token, result.Modules); err != nil {
		v.app.store.Fail(err.Error())
		v.formErr = err.Error()
		return nil
	}
	v.app.log.Info().Str("email", result.Principal.Email).Msg("signed in")
	if result.MustChangePassword {
		v.app.setStatus("Welcome %s · a password change is required", result.Principal.FullName)
	} else {
		v.app.setStatus("Welcome %s", result.Principal.FullName)
	}
	return navigate(routing.LandingPath(v.app.store.Principal()))
}

func (v *loginView) View() string {
	lines := []string{
		titleStyle.Render("Sign in"),
		"",
		fieldLabel("Email", v.focus == loginFieldEmail) + v.email.View(),
		fieldLabel("Password", v.focus == loginFieldPassword) + v.password.View(),
		"",
		buttonLabel("[ Sign in ]", v.focus == loginFieldSubmit),
		buttonLabel("[ Register a new organization ]", v.focus == loginFieldSignup),
	}
	if v.formErr != "" {
		lines = append(lines, "", errStyle.Render(v.formErr))
	}
	if v.busy {
		lines = append(lines, "", hintStyle.Render("Contacting server…"))
	}
	lines = append(lines, "", hintStyle.Render("Tab → next field    Enter → confirm    Ctrl+C → quit"))
	return strings.Join(lines, "\n")
}

func fieldLabel(name string, focused bool) string {
	style := lipgloss.NewStyle().Width(12)
	if focused {
		style = style.Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	}
	return style.Render(name)
}

func buttonLabel(text string, focused bool) string {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50")).Render("> " + text)
	}
	return "  " + text
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexthr/console/internal/hr"
	"github.com/nexthr/console/internal/routing"
)

type modulesSavedMsg struct {
	seq    int
	config hr.ModuleConfig
	err    error
}

// modulesView edits the organization's extended module selection. The draft
// is a copy; the stored config only changes once the backend accepts the new
// selection.
type modulesView struct {
	app   *App
	draft hr.ModuleConfig
	sel   int
	seq   int
	busy  bool
	dirty bool
}

func newModulesView(app *App) *modulesView {
	draft := app.store.Modules().Clone()
	if draft == nil {
		draft = hr.ModuleConfig{}
	}
	return &modulesView{app: app, draft: draft}
}

func (v *modulesView) Init() tea.Cmd {
	return nil
}

func (v *modulesView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case modulesSavedMsg:
		if msg.seq != v.seq {
			return nil
		}
		v.busy = false
		if msg.err != nil {
			cmd, _ := v.app.reportErr(msg.err)
			return cmd
		}
		if err := v.app.store.UpdateModules(msg.config); err != nil {
			v.app.setStatus("saved remotely but not locally: %v", err)
			return nil
		}
		v.draft = msg.config.Clone()
		v.dirty = false
		v.app.setStatus("Module selection saved")
		v.app.log.Info().Msg("module selection saved")
		return nil

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch msg.String() {
		case "esc":
			return navigate(routing.PathDashboard)
		case "up", "k":
			v.sel = clampInt(v.sel-1, 0, len(hr.ExtendedModules)-1)
		case "down", "j":
			v.sel = clampInt(v.sel+1, 0, len(hr.ExtendedModules)-1)
		case " ":
			name := hr.ExtendedModules[v.sel]
			v.draft[name] = !v.draft[name]
			v.dirty = true
		case "enter":
			if v.dirty {
				return v.submit()
			}
		}
	}
	return nil
}

func (v *modulesView) submit() tea.Cmd {
	v.seq++
	v.busy = true
	seq := v.seq
	app := v.app
	draft := v.draft.Clone()
	return func() tea.Msg {
		ctx, cancel := app.apiCtx()
		defer cancel()
		config, err := app.api.ConfigureModules(ctx, draft)
		return modulesSavedMsg{seq: seq, config: config, err: err}
	}
}

func (v *modulesView) View() string {
	lines := []string{
		titleStyle.Render("Module settings"),
		hintStyle.Render(identityLine(v.app.store.Principal())),
		"",
	}
	for i, name := range hr.ExtendedModules {
		mark := "[ ]"
		if v.draft.Enabled(name) {
			mark = "[x]"
		}
		row := fmt.Sprintf("  %s %s", mark, moduleLabels[name])
		if i == v.sel {
			row = "> " + strings.TrimPrefix(row, "  ")
		}
		lines = append(lines, row)
	}
	lines = append(lines, "")
	if v.dirty {
		lines = append(lines, hintStyle.Render("Unsaved changes · Enter → save"))
	}
	if v.busy {
		lines = append(lines, hintStyle.Render("Saving…"))
	}
	lines = append(lines, hintStyle.Render("Space → toggle    Enter → save    Esc → back"))
	return strings.Join(lines, "\n")
}

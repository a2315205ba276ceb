package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"debuglocale/internal/config"
	"debuglocale/internal/locale"
	"debuglocale/internal/version"
	tea "github.com/charmbracelet/bubbletea"
)

type tuiAction struct {
	id       string
	labelKey string
	quit     bool
}

type tuiMode int

const (
	tuiModeMain tuiMode = iota
	tuiModeSettings
)

type resumedMsg struct {
	changed bool
	err     error
}

type prefLoadedMsg struct {
	code string
	err  error
}

type tuiModel struct {
	ctx      context.Context
	sess     *session
	now      func() time.Time
	actions  []tuiAction
	cursor   int
	mode     tuiMode
	selected int
	// standalone is set when the settings screen was opened directly; leaving
	// it quits instead of returning to the main screen.
	standalone    bool
	statusMessage string
}

func (a *App) runInteractiveTUI(ctx context.Context, settingsOnly bool) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		if settingsOnly {
			return fmt.Errorf("settings screen requires a terminal; use %s locale set <code>", appName)
		}
		return a.show(ctx)
	}
	a.rootLog.MuteConsole()
	model := newTUIModel(ctx, a.session(), a.now, settingsOnly)
	program := tea.NewProgram(model, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		a.log.Errorf("tui error: %v", err)
		return err
	}
	return nil
}

func newTUIModel(ctx context.Context, sess *session, now func() time.Time, settingsOnly bool) tuiModel {
	actions := []tuiAction{
		{id: "app-settings", labelKey: "menu_app_settings"},
	}
	if sess.overrider.SettingsAvailable() {
		actions = append(actions, tuiAction{id: "debug-settings", labelKey: "menu_debug_settings"})
	}
	actions = append(actions, tuiAction{id: "quit", labelKey: "menu_quit", quit: true})

	return tuiModel{
		ctx:        ctx,
		sess:       sess,
		now:        now,
		actions:    actions,
		mode:       tuiModeMain,
		standalone: settingsOnly,
	}
}

func (m tuiModel) Init() tea.Cmd {
	if m.standalone {
		return tea.Batch(m.resumeCmd(), m.loadPrefCmd())
	}
	return m.resumeCmd()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case tuiModeMain:
			return m.updateMain(msg)
		case tuiModeSettings:
			return m.updateSettings(msg)
		}
	case resumedMsg:
		if msg.err != nil {
			m.statusMessage = m.t("status_error", map[string]any{"Error": msg.err.Error()})
		} else if msg.changed {
			m.statusMessage = m.t("status_locale_changed", map[string]any{"Locale": m.sess.binding.Default().String()})
		}
	case prefLoadedMsg:
		if msg.err != nil {
			m.statusMessage = m.t("status_error", map[string]any{"Error": msg.err.Error()})
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		}
		idx := locale.IndexOf(m.sess.options, msg.code)
		if idx < 0 {
			idx = 0
		}
		m.selected = idx
		m.mode = tuiModeSettings
		m.statusMessage = ""
	}
	return m, nil
}

func (m tuiModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.actions)-1 {
			m.cursor++
		}
	case "enter":
		action := m.actions[m.cursor]
		if action.quit {
			return m, tea.Quit
		}
		switch action.id {
		case "app-settings":
			buildType := m.t("build_type_release", nil)
			if m.sess.variant == config.VariantDebug {
				buildType = m.t("build_type_debug", nil)
			}
			m.statusMessage = m.t("snackbar_build_type", map[string]any{"Type": buildType})
		case "debug-settings":
			if m.sess.overrider.SettingsAvailable() {
				return m, m.loadPrefCmd()
			}
		}
	}
	return m, nil
}

// updateSettings moves the selector. Every change of selection is written
// before Update returns, so writes land in selection order and a resume or
// quit issued afterwards always sees the latest choice.
func (m tuiModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		if m.standalone {
			return m, tea.Quit
		}
		m.mode = tuiModeMain
		m.statusMessage = ""
		return m, m.resumeCmd()
	case "up", "k":
		if m.selected > 0 {
			return m.selectOption(m.selected - 1), nil
		}
	case "down", "j":
		if m.selected < len(m.sess.options)-1 {
			return m.selectOption(m.selected + 1), nil
		}
	case "x":
		return m.selectOption(0), nil
	}
	return m, nil
}

func (m tuiModel) View() string {
	tag, loc := m.sess.binding.Snapshot()
	var b strings.Builder
	b.WriteString(loc.T("app_title", nil) + "\n\n")

	if m.mode == tuiModeMain {
		renderMainScreen(&b, tag, loc, m.now())
		b.WriteString("\n")
		for i, action := range m.actions {
			cursor := " "
			if i == m.cursor {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %d) %s\n", cursor, i+1, loc.T(action.labelKey, nil)))
		}
		b.WriteString("\n" + loc.T("hint", nil) + "\n")
	} else {
		b.WriteString(loc.T("settings_title", nil) + "\n")
		b.WriteString(loc.T("settings_locale_label", nil) + ":\n")
		for i := range m.sess.options {
			marker := " "
			if i == m.selected {
				marker = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", marker, m.optionLabel(i)))
		}
		b.WriteString("\n" + loc.T("settings_hint", nil) + "\n")
	}

	b.WriteString(loc.T("version_label", nil) + ": " + version.Version + "\n")
	if strings.TrimSpace(m.statusMessage) != "" {
		b.WriteString(loc.T("status_label", nil) + ": " + m.statusMessage + "\n")
	}
	return b.String()
}

func (m tuiModel) resumeCmd() tea.Cmd {
	ctx, ov := m.ctx, m.sess.overrider
	return func() tea.Msg {
		changed, err := ov.OverrideLocale(ctx)
		return resumedMsg{changed: changed, err: err}
	}
}

func (m tuiModel) loadPrefCmd() tea.Cmd {
	ctx, pref := m.ctx, m.sess.pref
	return func() tea.Msg {
		if pref == nil {
			return prefLoadedMsg{err: locale.ErrDebugFeatureUnavailable}
		}
		code, err := pref.Read(ctx)
		return prefLoadedMsg{code: code, err: err}
	}
}

func (m tuiModel) selectOption(i int) tuiModel {
	m.selected = i
	if err := m.writePref(m.sess.options[i].Code); err != nil {
		m.statusMessage = m.t("status_error", map[string]any{"Error": err.Error()})
		return m
	}
	m.statusMessage = m.t("status_saved", map[string]any{"Label": m.optionLabel(i)})
	return m
}

func (m tuiModel) writePref(code string) error {
	if m.sess.pref == nil {
		return locale.ErrDebugFeatureUnavailable
	}
	return m.sess.pref.Write(m.ctx, code)
}

func (m tuiModel) t(key string, data map[string]any) string {
	return m.sess.binding.Localizer().T(key, data)
}

func (m tuiModel) optionLabel(i int) string {
	if i < 0 || i >= len(m.sess.options) {
		return ""
	}
	return m.sess.options[i].Label(m.t("device_default", nil))
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}

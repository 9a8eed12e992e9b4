package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskfocus/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.TickInterval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewFocus {
			return m.handleFocusKey(typed)
		}
		return m.handleTaskListKey(typed), nil
	case SwitchViewMsg:
		switch typed.View {
		case ViewTasks:
			m.CurrentView = ViewTasks
		case ViewFocus:
			m = m.openFocus(m.SelectedTaskID)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case FocusTickMsg:
		m.refreshTimer()
		return m, tickCmd(m.cfg.TickInterval)
	case ExportDoneMsg:
		if typed.Err != nil {
			m.logger.Error("export failed", "path", typed.Path, "err", typed.Err)
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("export to %s failed: %v", typed.Path, typed.Err), IsError: true}
			return m, nil
		}
		m.logger.Info("export finished", "path", typed.Path, "tasks", typed.Result.Tasks, "sessions", typed.Result.Sessions)
		m.Status = StatusBar{Text: fmt.Sprintf("exported %d task(s) and %d session(s) to %s", typed.Result.Tasks, typed.Result.Sessions, typed.Path)}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	var left, right string
	switch m.CurrentView {
	case ViewFocus:
		left = m.renderFocusView()
		right = m.renderCommandPalette() + m.renderHelpIfVisible()
	default:
		left = m.renderTaskListView()
		right = m.renderTaskDetailPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	header := fmt.Sprintf("taskfocus | view: %s | selected: %s", m.CurrentView, m.selectedTitle())
	if id, ok := m.store.ActiveTimerTaskID(); ok {
		if task, found := m.store.Get(id); found {
			header += " | timer: " + task.Title
		}
	}

	return views.RenderApp(views.AppData{
		Header:     header,
		LeftPane:   left,
		RightPane:  right,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer: fmt.Sprintf("keys: j/k move | enter focus | x done | d delete | %s cmd | %s help | %s quit",
			m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

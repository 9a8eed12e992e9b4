package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskfocus/internal/commands"
	"github.com/sandeepkv93/taskfocus/internal/model"
	"github.com/sandeepkv93/taskfocus/internal/storage"
	"github.com/sandeepkv93/taskfocus/internal/views"
)

const exportTimeout = 30 * time.Second

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	parsed, err := commands.Parse(raw)
	if err != nil {
		m = m.closePalette()
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(parsed, commands.Handlers{
		Add: func(a commands.TaskArgs) (commands.Result, error) {
			settings := m.cfg.PomodoroDefaults()
			if a.WorkMinutes > 0 {
				settings.WorkMinutes = a.WorkMinutes
			}
			if a.BreakMinutes > 0 {
				settings.BreakMinutes = a.BreakMinutes
			}
			task, err := m.store.AddTask(a.Title, a.Description, a.Tags, a.Due, settings)
			if err != nil {
				return commands.Result{}, err
			}
			m.SelectedTaskID = task.ID
			m.CurrentView = ViewTasks
			msg := fmt.Sprintf("added task: %s", task.Title)
			if a.Due != "" && task.Deadline == nil {
				msg += " (deadline not understood, left unset)"
			}
			return commands.Result{Message: msg}, nil
		},
		Edit: func(a commands.TaskArgs) (commands.Result, error) {
			if a.WorkMinutes > 0 || a.BreakMinutes > 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "pomodoro settings are fixed once a task is created"}
			}
			current, ok := m.store.Get(m.targetTaskID())
			if !ok {
				return commands.Result{}, noSelection()
			}
			desc, tags, due := current.Description, model.JoinTags(current.Tags), model.FormatDeadline(current.Deadline)
			if a.Description != "" {
				desc = a.Description
			}
			if a.Tags != "" {
				tags = a.Tags
			}
			if a.Due != "" {
				due = a.Due
			}
			task, err := m.store.UpdateTaskMeta(current.ID, a.Title, desc, tags, due)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("updated task: %s", task.Title)}, nil
		},
		Done: func() (commands.Result, error) {
			return m.markSelected(true)
		},
		Undo: func() (commands.Result, error) {
			return m.markSelected(false)
		},
		Delete: func() (commands.Result, error) {
			id := m.targetTaskID()
			if _, ok := m.store.Get(id); !ok {
				return commands.Result{}, noSelection()
			}
			m.SelectedTaskID = id
			m = m.deleteSelected()
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Start: func() (commands.Result, error) {
			id := m.targetTaskID()
			if id == "" {
				return commands.Result{}, noSelection()
			}
			if err := m.store.StartTimer(id); err != nil {
				return commands.Result{}, err
			}
			m.refreshTimer()
			return commands.Result{Message: "timer running"}, nil
		},
		Pause: func() (commands.Result, error) {
			if err := m.store.PauseTimer(); err != nil {
				return commands.Result{}, err
			}
			m.refreshTimer()
			return commands.Result{Message: "timer paused"}, nil
		},
		Finish: func() (commands.Result, error) {
			if _, ok := m.store.ActiveTimerTaskID(); !ok {
				return commands.Result{}, model.ErrNoActiveTimer
			}
			session, ok := m.store.FinishSession()
			m.refreshTimer()
			if !ok {
				return commands.Result{Message: "no focused time; nothing recorded"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("session recorded: %s", formatDuration(session.DurationSeconds))}, nil
		},
		Find: func(f commands.FindArgs) (commands.Result, error) {
			m.Query = strings.TrimSpace(f.Query)
			m.CurrentView = ViewTasks
			m.ensureSelection()
			if m.Query == "" {
				return commands.Result{Message: "filter cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("filter: %s (%d match(es))", m.Query, m.store.Search(m.Query).Len())}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			path := strings.TrimSpace(e.Path)
			if path == "" {
				path = m.cfg.ExportPath
			}
			if path == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "export needs a path"}
			}
			next = exportCmd(path, m.store.List(), m.store.AllSessions())
			return commands.Result{Message: fmt.Sprintf("exporting to %s", path)}, nil
		},
	})
	if err != nil {
		m.logger.Debug("command failed", "command", parsed.Type, "err", err)
		m.setError(err)
	} else {
		m.logger.Debug("command executed", "command", parsed.Type)
		m.Status = StatusBar{Text: res.Message}
	}

	m = m.closePalette()
	return m, next
}

// targetTaskID is the task palette commands act on: the focused task in the
// focus view, otherwise the list selection.
func (m Model) targetTaskID() string {
	if m.CurrentView == ViewFocus && m.Focus.TaskID != "" {
		return m.Focus.TaskID
	}
	return m.SelectedTaskID
}

func (m Model) markSelected(done bool) (commands.Result, error) {
	task, err := m.store.MarkDone(m.targetTaskID(), done)
	if err != nil {
		return commands.Result{}, err
	}
	if done {
		return commands.Result{Message: fmt.Sprintf("completed: %s", task.Title)}, nil
	}
	return commands.Result{Message: fmt.Sprintf("reopened: %s", task.Title)}, nil
}

func noSelection() error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
}

// exportCmd writes the snapshot off the update loop. The slices are copies
// taken when the command was issued.
func exportCmd(path string, tasks []model.Task, sessions []model.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		res, err := storage.ExportFile(ctx, path, tasks, sessions)
		return ExportDoneMsg{Path: path, Result: res, Err: err}
	}
}

func (m Model) renderCommandPalette() string {
	out := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
	if out == "" {
		return ""
	}
	return "\n\n" + out
}

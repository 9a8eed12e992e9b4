package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskfocus/internal/model"
	"github.com/sandeepkv93/taskfocus/internal/views"
)

const focusSessionHistory = 5

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		m.refreshTimer()
		if m.Focus.HasTimer && m.Focus.Timer.Running {
			m = m.pauseTimer()
		} else {
			m = m.startTimer(m.Focus.TaskID)
		}
		return m, nil
	case "f":
		return m.finishSession(), nil
	case "esc":
		m.CurrentView = ViewTasks
		m.SelectedTaskID = m.Focus.TaskID
		m.ensureSelection()
		return m, nil
	}
	return m, nil
}

// refreshTimer pulls a fresh snapshot for the focused task. Reading the
// snapshot is what advances a running timer.
func (m *Model) refreshTimer() {
	if m.Focus.TaskID == "" {
		m.Focus.HasTimer = false
		return
	}
	m.Focus.Timer, m.Focus.HasTimer = m.store.TimerSnapshot(m.Focus.TaskID)
}

func (m Model) startTimer(id string) Model {
	if id == "" {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	if err := m.store.StartTimer(id); err != nil {
		m.setError(err)
		return m
	}
	m.refreshTimer()
	m.Status = StatusBar{Text: "timer running"}
	return m
}

func (m Model) pauseTimer() Model {
	if err := m.store.PauseTimer(); err != nil {
		m.setError(err)
		return m
	}
	m.refreshTimer()
	m.Status = StatusBar{Text: "timer paused"}
	return m
}

func (m Model) finishSession() Model {
	if _, ok := m.store.ActiveTimerTaskID(); !ok {
		m.setError(model.ErrNoActiveTimer)
		return m
	}
	session, ok := m.store.FinishSession()
	m.refreshTimer()
	if !ok {
		m.Status = StatusBar{Text: "no focused time; nothing recorded"}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("session recorded: %s", formatDuration(session.DurationSeconds))}
	return m
}

func (m Model) renderFocusView() string {
	data := views.FocusPanelData{
		SessionCount: m.store.SessionCount(m.Focus.TaskID),
		FocusedTotal: formatDuration(m.store.TotalFocusedSeconds(m.Focus.TaskID)),
	}
	if task, ok := m.store.Get(m.Focus.TaskID); ok {
		data.TaskTitle = task.Title
	}
	if m.Focus.HasTimer {
		snap := m.Focus.Timer
		data.HasTimer = true
		data.Phase = string(snap.Phase)
		data.Running = snap.Running
		data.Timer = formatDuration(snap.RemainingSeconds)
		data.ProgressView = m.focusProgress.ViewAs(snap.Progress())
		data.ProgressPct = int(snap.Progress() * 100)
		data.Accrued = formatDuration(snap.WorkSecondsAccrued)
	}
	for i, s := range m.store.ListSessions(m.Focus.TaskID) {
		if i == focusSessionHistory {
			break
		}
		data.Sessions = append(data.Sessions, fmt.Sprintf("%s  %s",
			s.EndedAt.Local().Format("2006-01-02 15:04"), formatDuration(s.DurationSeconds)))
	}
	return views.RenderFocusPanel(data)
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return FocusTickMsg{} })
}

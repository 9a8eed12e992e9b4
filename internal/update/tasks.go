package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskfocus/internal/model"
	"github.com/sandeepkv93/taskfocus/internal/views"
)

// visibleTasks lists the tasks the cursor can land on: Active first, then
// Done, both filtered by the current query. Deleted tasks are only counted.
func (m Model) visibleTasks() []model.Task {
	parts := m.store.Search(m.Query)
	out := make([]model.Task, 0, len(parts.Active)+len(parts.Done))
	out = append(out, parts.Active...)
	return append(out, parts.Done...)
}

func (m *Model) ensureSelection() {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		m.SelectedTaskID = ""
		return
	}
	for _, t := range tasks {
		if t.ID == m.SelectedTaskID {
			return
		}
	}
	m.SelectedTaskID = tasks[0].ID
}

func (m *Model) moveSelection(delta int) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		m.SelectedTaskID = ""
		return
	}
	idx := 0
	for i, t := range tasks {
		if t.ID == m.SelectedTaskID {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(tasks) {
		idx = len(tasks) - 1
	}
	m.SelectedTaskID = tasks[idx].ID
}

func (m Model) selectedTitle() string {
	if m.SelectedTaskID == "" {
		return "-"
	}
	if task, ok := m.store.Get(m.SelectedTaskID); ok {
		return task.Title
	}
	return "-"
}

func (m Model) handleTaskListKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "enter":
		m = m.openFocus(m.SelectedTaskID)
	case "x":
		m = m.toggleSelectedDone()
	case "d":
		m = m.deleteSelected()
	case "esc":
		if m.Query != "" {
			m.Query = ""
			m.ensureSelection()
			m.Status = StatusBar{Text: "filter cleared"}
		}
	}
	return m
}

// openFocus switches to the focus view for id. A task cannot be opened while
// another task's timer is running.
func (m Model) openFocus(id string) Model {
	if id == "" {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	if !m.store.CanOpenTask(id) {
		m.Status = StatusBar{Text: "another task's timer is running; pause or finish it first", IsError: true}
		return m
	}
	m.CurrentView = ViewFocus
	m.Focus = FocusState{TaskID: id}
	m.refreshTimer()
	return m
}

func (m Model) toggleSelectedDone() Model {
	task, ok := m.store.Get(m.SelectedTaskID)
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	done := task.Status != model.TaskStatusDone
	if _, err := m.store.MarkDone(task.ID, done); err != nil {
		m.setError(err)
		return m
	}
	if done {
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Title)}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", task.Title)}
	}
	return m
}

func (m Model) deleteSelected() Model {
	task, ok := m.store.Get(m.SelectedTaskID)
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	if err := m.store.DeleteTask(task.ID); err != nil {
		m.setError(err)
		return m
	}
	if m.Focus.TaskID == task.ID {
		m.Focus = FocusState{}
		m.CurrentView = ViewTasks
	}
	m.ensureSelection()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Title)}
	return m
}

func (m *Model) setError(err error) {
	m.LastError = err
	text := err.Error()
	switch {
	case errors.Is(err, model.ErrTimerConflict):
		text = "another task's timer is running"
	case errors.Is(err, model.ErrTaskDeleted):
		text = "task is deleted"
	case errors.Is(err, model.ErrNoActiveTimer):
		text = "no active timer"
	case errors.Is(err, model.ErrEmptyTitle):
		text = "title must not be empty"
	}
	m.Status = StatusBar{Text: text, IsError: true}
}

func (m Model) renderTaskListView() string {
	parts := m.store.Search(m.Query)
	timerID, _ := m.store.ActiveTimerTaskID()
	row := func(t model.Task) views.TaskRowData {
		return views.TaskRowData{
			ID:         t.ID,
			Title:      t.Title,
			Tags:       t.Tags,
			Deadline:   model.FormatDeadline(t.Deadline),
			Overdue:    parts.Overdue[t.ID],
			Done:       t.Status == model.TaskStatusDone,
			TimerOwner: t.ID == timerID,
		}
	}
	data := views.TaskListPanelData{
		Query:        m.Query,
		DeletedCount: len(parts.Deleted),
		SelectedID:   m.SelectedTaskID,
	}
	for _, t := range parts.Active {
		data.Active = append(data.Active, row(t))
	}
	for _, t := range parts.Done {
		data.Done = append(data.Done, row(t))
	}
	return views.RenderTaskListPanel(data)
}

func (m Model) renderTaskDetailPane() string {
	task, ok := m.store.Get(m.SelectedTaskID)
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		ID:             task.ID,
		Title:          task.Title,
		Status:         string(task.Status),
		Tags:           task.Tags,
		Deadline:       model.FormatDeadline(task.Deadline),
		Overdue:        m.store.IsOverdue(task),
		WorkMinutes:    task.Pomodoro.WorkMinutes,
		BreakMinutes:   task.Pomodoro.BreakMinutes,
		SessionCount:   m.store.SessionCount(task.ID),
		FocusedTotal:   formatDuration(m.store.TotalFocusedSeconds(task.ID)),
		DescriptionMD:  views.RenderMarkdown(task.Description, 54),
		TimerElsewhere: m.store.IsTimerRunningForOtherTask(task.ID),
	})
}

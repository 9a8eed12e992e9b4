package update

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskfocus/internal/model"
	"github.com/sandeepkv93/taskfocus/internal/store"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestModel(t *testing.T) (Model, *store.Store, *stepClock) {
	t.Helper()
	clock := &stepClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	n := 0
	s := store.New(
		store.WithClock(clock),
		store.WithLocation(time.UTC),
		store.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return NewModel(s, DefaultRuntimeConfig(), nil), s, clock
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runCommand(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m = press(t, m, runes("/"), runes(line))
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected default view %q, got %q", ViewTasks, m.CurrentView)
	}
	if m.Keys.Quit != "q" || m.Keys.Palette != "/" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	if m.SelectedTaskID != "" {
		t.Fatalf("expected no selection on empty store, got %q", m.SelectedTaskID)
	}
	if m.Init() == nil {
		t.Fatal("expected tick command from Init")
	}
}

func TestPaletteAddCreatesAndSelectsTask(t *testing.T) {
	m, s, _ := newTestModel(t)
	m, _ = runCommand(t, m, "add Write report tags:work,q1 due:2026-03-01T10:00 work:50 break:10")

	if m.Palette.Active {
		t.Fatal("expected palette closed after enter")
	}
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
	task, ok := s.Get(m.SelectedTaskID)
	if !ok {
		t.Fatalf("expected selected task, status: %+v", m.Status)
	}
	if task.Title != "Write report" || strings.Join(task.Tags, ",") != "work,q1" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.Pomodoro.WorkMinutes != 50 || task.Pomodoro.BreakMinutes != 10 {
		t.Fatalf("unexpected pomodoro settings: %+v", task.Pomodoro)
	}
	if !s.IsOverdue(task) {
		t.Fatal("expected task with past deadline to be overdue")
	}
}

func TestPaletteAddUsesConfiguredDefaults(t *testing.T) {
	m, s, _ := newTestModel(t)
	m.cfg.WorkMinutes = 40
	m.cfg.BreakMinutes = 8
	m, _ = runCommand(t, m, "add plan sprint")
	task, _ := s.Get(m.SelectedTaskID)
	if task.Pomodoro.WorkMinutes != 40 || task.Pomodoro.BreakMinutes != 8 {
		t.Fatalf("expected config defaults, got %+v", task.Pomodoro)
	}
}

func TestPaletteEditKeepsUnspecifiedFields(t *testing.T) {
	m, s, _ := newTestModel(t)
	m, _ = runCommand(t, m, "add draft tags:a,b due:2026-04-01T12:00 desc:keep me")
	m, _ = runCommand(t, m, "edit final draft")

	task, _ := s.Get(m.SelectedTaskID)
	if task.Title != "final draft" || task.Description != "keep me" {
		t.Fatalf("unexpected edit result: %+v", task)
	}
	if strings.Join(task.Tags, ",") != "a,b" || model.FormatDeadline(task.Deadline) != "2026-04-01T12:00" {
		t.Fatalf("expected tags and deadline kept: %+v", task)
	}

	m, _ = runCommand(t, m, "edit final draft work:30")
	if !m.Status.IsError {
		t.Fatalf("expected error editing pomodoro settings, got %+v", m.Status)
	}
}

func TestPaletteErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "unknown command", line: "launch rockets"},
		{name: "add without title", line: "add tags:x"},
		{name: "done without selection", line: "done"},
		{name: "pause without timer", line: "pause"},
		{name: "finish without timer", line: "finish"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestModel(t)
			m, _ = runCommand(t, m, tt.line)
			if !m.Status.IsError {
				t.Fatalf("expected error status for %q, got %+v", tt.line, m.Status)
			}
			if m.Palette.Active {
				t.Fatal("expected palette closed after failure")
			}
		})
	}
}

func TestTaskListNavigation(t *testing.T) {
	m, s, _ := newTestModel(t)
	for _, title := range []string{"one", "two", "three"} {
		if _, err := s.AddTask(title, "", "", "", model.DefaultPomodoroSettings()); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	m.ensureSelection()
	if m.SelectedTaskID != "id-3" {
		t.Fatalf("expected newest task selected, got %q", m.SelectedTaskID)
	}
	m = press(t, m, runes("j"), runes("j"), runes("j"))
	if m.SelectedTaskID != "id-1" {
		t.Fatalf("expected cursor clamped at last task, got %q", m.SelectedTaskID)
	}
	m = press(t, m, runes("k"))
	if m.SelectedTaskID != "id-2" {
		t.Fatalf("expected id-2 after moving up, got %q", m.SelectedTaskID)
	}
}

func TestToggleDoneAndDeleteFromList(t *testing.T) {
	m, s, _ := newTestModel(t)
	m, _ = runCommand(t, m, "add ship it")
	id := m.SelectedTaskID

	m = press(t, m, runes("x"))
	if task, _ := s.Get(id); task.Status != model.TaskStatusDone {
		t.Fatalf("expected done, got %s", task.Status)
	}
	m = press(t, m, runes("x"))
	if task, _ := s.Get(id); task.Status != model.TaskStatusActive {
		t.Fatalf("expected active again, got %s", task.Status)
	}

	m = press(t, m, runes("d"))
	if task, _ := s.Get(id); task.Status != model.TaskStatusDeleted {
		t.Fatalf("expected deleted, got %s", task.Status)
	}
	if m.SelectedTaskID != "" {
		t.Fatalf("expected no selectable task after delete, got %q", m.SelectedTaskID)
	}
}

func TestFocusTimerLifecycle(t *testing.T) {
	m, s, clock := newTestModel(t)
	m, _ = runCommand(t, m, "add deep work")
	id := m.SelectedTaskID

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentView != ViewFocus || m.Focus.TaskID != id {
		t.Fatalf("expected focus view on %q, got %q/%q", id, m.CurrentView, m.Focus.TaskID)
	}
	if m.Focus.HasTimer {
		t.Fatal("expected no timer before start")
	}

	m = press(t, m, space)
	if !m.Focus.HasTimer || !m.Focus.Timer.Running {
		t.Fatalf("expected running timer, got %+v", m.Focus)
	}

	clock.Advance(70 * time.Second)
	updated, cmd := m.Update(FocusTickMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected tick to reschedule itself")
	}
	if m.Focus.Timer.RemainingSeconds != 25*60-70 || m.Focus.Timer.WorkSecondsAccrued != 70 {
		t.Fatalf("unexpected snapshot after tick: %+v", m.Focus.Timer)
	}

	m = press(t, m, space)
	if m.Focus.Timer.Running {
		t.Fatal("expected paused timer")
	}
	clock.Advance(time.Hour)
	m = press(t, m, runes("f"))
	if m.Focus.HasTimer {
		t.Fatal("expected timer cleared after finish")
	}
	sessions := s.ListSessions(id)
	if len(sessions) != 1 || sessions[0].DurationSeconds != 70 {
		t.Fatalf("expected one 70s session, got %+v", sessions)
	}
	if !strings.Contains(m.Status.Text, "01:10") {
		t.Fatalf("expected session duration in status, got %q", m.Status.Text)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.CurrentView != ViewTasks || m.SelectedTaskID != id {
		t.Fatalf("expected back to task list on %q, got %q/%q", id, m.CurrentView, m.SelectedTaskID)
	}
}

func TestFinishWithoutFocusedTimeRecordsNothing(t *testing.T) {
	m, s, _ := newTestModel(t)
	m, _ = runCommand(t, m, "add quick")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, space, runes("f"))
	if len(s.AllSessions()) != 0 {
		t.Fatalf("expected no sessions, got %d", len(s.AllSessions()))
	}
	if m.Status.IsError || !strings.Contains(m.Status.Text, "nothing recorded") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestOpenFocusBlockedByRunningTimerElsewhere(t *testing.T) {
	m, s, _ := newTestModel(t)
	a, _ := s.AddTask("A", "", "", "", model.DefaultPomodoroSettings())
	b, _ := s.AddTask("B", "", "", "", model.DefaultPomodoroSettings())
	if err := s.StartTimer(a.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	m.SelectedTaskID = b.ID
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentView != ViewTasks || !m.Status.IsError {
		t.Fatalf("expected blocked open, got view %q status %+v", m.CurrentView, m.Status)
	}

	if err := s.PauseTimer(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentView != ViewFocus || m.Focus.TaskID != b.ID {
		t.Fatalf("expected focus on B after pause, got %q/%q", m.CurrentView, m.Focus.TaskID)
	}
}

func TestPaletteStartConflictSurfacesError(t *testing.T) {
	m, s, _ := newTestModel(t)
	a, _ := s.AddTask("A", "", "", "", model.DefaultPomodoroSettings())
	b, _ := s.AddTask("B", "", "", "", model.DefaultPomodoroSettings())
	if err := s.StartTimer(a.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.SelectedTaskID = b.ID
	m, _ = runCommand(t, m, "start")
	if !m.Status.IsError || !errors.Is(m.LastError, model.ErrTimerConflict) {
		t.Fatalf("expected timer conflict, got %v / %+v", m.LastError, m.Status)
	}
}

func TestFindFiltersList(t *testing.T) {
	m, s, _ := newTestModel(t)
	_, _ = s.AddTask("Buy milk", "", "errand", "", model.DefaultPomodoroSettings())
	_, _ = s.AddTask("Write tests", "", "work", "", model.DefaultPomodoroSettings())

	m, _ = runCommand(t, m, "find ERRAND")
	if m.Query != "ERRAND" {
		t.Fatalf("expected query set, got %q", m.Query)
	}
	tasks := m.visibleTasks()
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || m.SelectedTaskID != tasks[0].ID {
		t.Fatalf("unexpected filtered tasks: %+v selected %q", tasks, m.SelectedTaskID)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Query != "" || len(m.visibleTasks()) != 2 {
		t.Fatalf("expected filter cleared, query %q", m.Query)
	}
}

func TestExportCommandWritesSnapshot(t *testing.T) {
	m, s, clock := newTestModel(t)
	task, _ := s.AddTask("exported", "", "x", "", model.DefaultPomodoroSettings())
	if err := s.StartTimer(task.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(90 * time.Second)
	if _, ok := s.FinishSession(); !ok {
		t.Fatal("expected session")
	}

	path := filepath.Join(t.TempDir(), "snap.db")
	m, cmd := runCommand(t, m, "export "+path)
	if cmd == nil {
		t.Fatalf("expected export command, status %+v", m.Status)
	}
	msg, ok := cmd().(ExportDoneMsg)
	if !ok {
		t.Fatal("expected ExportDoneMsg")
	}
	if msg.Err != nil || msg.Result.Tasks != 1 || msg.Result.Sessions != 1 {
		t.Fatalf("unexpected export result: %+v", msg)
	}

	updated, _ := m.Update(msg)
	m = updated.(Model)
	if m.Status.IsError || !strings.Contains(m.Status.Text, "exported 1 task(s)") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, runes("?"))
	if !m.HelpVisible {
		t.Fatalf("expected help visible, got %+v", m.Status)
	}
	if !strings.Contains(m.View(), "toggle done") {
		t.Fatal("expected task list bindings in help")
	}
	m = press(t, m, runes("?"))
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = runCommand(t, m, "add Review PR tags:code")
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"view: Tasks", "selected: Review PR", "status: all good", "#code"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{in: -5, want: "00:00"},
		{in: 70, want: "01:10"},
		{in: 25 * 60, want: "25:00"},
		{in: 3661, want: "1:01:01"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Fatalf("formatDuration(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrInvalidStatus  = errors.New("model: invalid task status")
	ErrEmptyTitle     = errors.New("model: task title is required")
	ErrTaskNotFound   = errors.New("model: task not found")
	ErrTaskDeleted    = errors.New("model: task is deleted")
	ErrTimerConflict  = errors.New("model: another task's timer is running")
	ErrNoActiveTimer  = errors.New("model: no active timer")
	ErrInvalidSession = errors.New("model: invalid session")
)

type TaskStatus string

const (
	TaskStatusActive  TaskStatus = "Active"
	TaskStatusDone    TaskStatus = "Done"
	TaskStatusDeleted TaskStatus = "Deleted"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusActive, TaskStatusDone, TaskStatusDeleted:
		return true
	default:
		return false
	}
}

const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// PomodoroSettings are stored as given; the one-minute floor is applied only
// when sizing a timer phase.
type PomodoroSettings struct {
	WorkMinutes  int
	BreakMinutes int
}

func DefaultPomodoroSettings() PomodoroSettings {
	return PomodoroSettings{WorkMinutes: DefaultWorkMinutes, BreakMinutes: DefaultBreakMinutes}
}

func (p PomodoroSettings) WorkSeconds() int {
	return max(p.WorkMinutes, 1) * 60
}

func (p PomodoroSettings) BreakSeconds() int {
	return max(p.BreakMinutes, 1) * 60
}

type Task struct {
	ID          string
	Title       string
	Description string
	Tags        []string
	Deadline    *time.Time
	Status      TaskStatus
	Pomodoro    PomodoroSettings
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if len(t.Tags) > MaxTags {
		return fmt.Errorf("model: at most %d tags allowed, got %d", MaxTags, len(t.Tags))
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return errors.New("model: task updated_at must not precede created_at")
	}
	return nil
}

// Clone returns a copy that shares no mutable memory with t.
func (t Task) Clone() Task {
	out := t
	out.Tags = slices.Clone(t.Tags)
	if t.Deadline != nil {
		d := *t.Deadline
		out.Deadline = &d
	}
	return out
}

func (t Task) IsOverdue(now time.Time) bool {
	return t.Status == TaskStatusActive && t.Deadline != nil && now.After(*t.Deadline)
}

func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

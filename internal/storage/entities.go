package storage

import (
	"slices"
	"time"

	"github.com/sandeepkv93/taskfocus/internal/model"
)

type Task struct {
	ID           string
	Title        string
	Description  string
	Status       string
	Tags         []string
	WorkMinutes  int
	BreakMinutes int
	DeadlineAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Session struct {
	ID              string
	TaskID          string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
}

type TaskListFilter struct {
	Status string
	Limit  int
	Offset int
}

type SessionListFilter struct {
	TaskID string
	Limit  int
	Offset int
}

func TaskFromModel(t model.Task) Task {
	out := Task{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Tags:         slices.Clone(t.Tags),
		WorkMinutes:  t.Pomodoro.WorkMinutes,
		BreakMinutes: t.Pomodoro.BreakMinutes,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.Deadline != nil {
		d := *t.Deadline
		out.DeadlineAt = &d
	}
	return out
}

func SessionFromModel(s model.Session) Session {
	return Session{
		ID:              s.ID,
		TaskID:          s.TaskID,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		DurationSeconds: s.DurationSeconds,
	}
}

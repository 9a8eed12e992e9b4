package store

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskfocus/internal/model"
)

// AddTask creates an Active task at the front of the list. Tags and deadline
// are parsed leniently; only a blank title is an error.
func (s *Store) AddTask(title, description, tagsCSV, deadlineText string, settings model.PomodoroSettings) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, model.ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := model.Task{
		ID:          s.newID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Tags:        model.ParseTags(tagsCSV),
		Deadline:    model.ParseDeadline(deadlineText, s.loc),
		Status:      model.TaskStatusActive,
		Pomodoro:    settings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("add task: %w", err)
	}

	s.tasks = append([]model.Task{task}, s.tasks...)
	s.logger.Debug("task added", "task_id", task.ID, "tags", len(task.Tags), "has_deadline", task.Deadline != nil)
	return task.Clone(), nil
}

// UpdateTaskMeta replaces the editable fields of a task. Status, pomodoro
// settings and identity are carried over from the stored record.
func (s *Store) UpdateTaskMeta(id, title, description, tagsCSV, deadlineText string) (model.Task, error) {
	title = strings.TrimSpace(title)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", model.ErrTaskNotFound, id)
	}
	if title == "" {
		return model.Task{}, model.ErrEmptyTitle
	}

	next := s.tasks[idx].Clone()
	next.Title = title
	next.Description = strings.TrimSpace(description)
	next.Tags = model.ParseTags(tagsCSV)
	next.Deadline = model.ParseDeadline(deadlineText, s.loc)
	next.UpdatedAt = s.now()
	s.tasks[idx] = next

	s.logger.Debug("task updated", "task_id", id)
	return next.Clone(), nil
}

// MarkDone toggles a task between Done and Active. Deleted tasks are terminal
// and reject the toggle in both directions.
func (s *Store) MarkDone(id string, done bool) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", model.ErrTaskNotFound, id)
	}
	if s.tasks[idx].Status == model.TaskStatusDeleted {
		return model.Task{}, fmt.Errorf("%w: %s", model.ErrTaskDeleted, id)
	}

	next := s.tasks[idx].Clone()
	next.Status = model.TaskStatusActive
	if done {
		next.Status = model.TaskStatusDone
	}
	next.UpdatedAt = s.now()
	s.tasks[idx] = next

	s.logger.Debug("task status changed", "task_id", id, "status", next.Status)
	return next.Clone(), nil
}

// DeleteTask marks a task Deleted. A timer bound to the task is dropped along
// with any work it accrued; no session is recorded for it.
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", model.ErrTaskNotFound, id)
	}
	if s.tasks[idx].Status == model.TaskStatusDeleted {
		return nil
	}

	next := s.tasks[idx].Clone()
	next.Status = model.TaskStatusDeleted
	next.UpdatedAt = s.now()
	s.tasks[idx] = next

	if s.timer != nil && s.timer.TaskID == id {
		s.logger.Info("timer discarded with deleted task",
			"task_id", id, "discarded_work_seconds", s.timer.WorkSecondsAccrued)
		s.timer = nil
	}
	s.logger.Debug("task deleted", "task_id", id)
	return nil
}

// List returns a copy of every task, most recently added first.
func (s *Store) List() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	for i, task := range s.tasks {
		out[i] = task.Clone()
	}
	return out
}

func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx].Clone(), true
}

// IsOverdue reports whether an Active task is past its deadline right now.
func (s *Store) IsOverdue(task model.Task) bool {
	return task.IsOverdue(s.now())
}

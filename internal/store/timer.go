package store

import (
	"fmt"

	"github.com/sandeepkv93/taskfocus/internal/model"
)

// StartTimer starts or resumes the pomodoro timer for taskID. Only a running
// timer of another task blocks the call; a paused one is replaced.
func (s *Store) StartTimer(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.timer != nil {
		if s.timer.TaskID == taskID {
			s.timer.Running = true
			s.timer.LastUpdatedAt = now
			s.logger.Debug("timer resumed", "task_id", taskID, "phase", s.timer.Phase, "remaining", s.timer.RemainingSeconds)
			return nil
		}
		if s.timer.Running {
			return fmt.Errorf("%w: %s", model.ErrTimerConflict, s.timer.TaskID)
		}
	}

	idx := s.indexOf(taskID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", model.ErrTaskNotFound, taskID)
	}
	task := s.tasks[idx]
	if task.Status == model.TaskStatusDeleted {
		return fmt.Errorf("%w: %s", model.ErrTaskDeleted, taskID)
	}

	if s.timer != nil {
		s.logger.Info("paused timer replaced",
			"task_id", s.timer.TaskID, "discarded_work_seconds", s.timer.WorkSecondsAccrued)
	}
	timer := model.NewActiveTimer(taskID, task.Pomodoro, now)
	s.timer = &timer
	s.logger.Debug("timer started", "task_id", taskID,
		"work_seconds", timer.WorkDurationSeconds, "break_seconds", timer.BreakDurationSeconds)
	return nil
}

// PauseTimer folds elapsed time into the timer and stops the countdown.
func (s *Store) PauseTimer() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return model.ErrNoActiveTimer
	}
	now := s.now()
	if s.timer.Running {
		s.timer.Reconcile(now)
	}
	s.timer.Running = false
	s.timer.LastUpdatedAt = now
	s.logger.Debug("timer paused", "task_id", s.timer.TaskID,
		"phase", s.timer.Phase, "remaining", s.timer.RemainingSeconds, "accrued", s.timer.WorkSecondsAccrued)
	return nil
}

// FinishSession closes the active timer. The accrued work time becomes a
// Session when positive; the timer is discarded either way.
func (s *Store) FinishSession() (model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return model.Session{}, false
	}
	now := s.now()
	timer := *s.timer
	s.timer = nil
	if timer.Running {
		timer.Reconcile(now)
	}
	if timer.WorkSecondsAccrued <= 0 {
		s.logger.Debug("timer finished without work", "task_id", timer.TaskID)
		return model.Session{}, false
	}

	session := model.Session{
		ID:              s.newID(),
		TaskID:          timer.TaskID,
		StartedAt:       timer.SessionStartedAt,
		EndedAt:         now,
		DurationSeconds: timer.WorkSecondsAccrued,
	}
	if session.EndedAt.Before(session.StartedAt) {
		session.EndedAt = session.StartedAt
	}
	s.sessions = append([]model.Session{session}, s.sessions...)
	s.logger.Info("session recorded", "task_id", session.TaskID, "session_id", session.ID, "seconds", session.DurationSeconds)
	return session, true
}

// TimerSnapshot returns the timer view for taskID. A running timer is
// reconciled first; this is how the countdown advances between pause/finish.
func (s *Store) TimerSnapshot(taskID string) (model.TimerSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil || s.timer.TaskID != taskID {
		return model.TimerSnapshot{}, false
	}
	if s.timer.Running {
		s.timer.Reconcile(s.now())
	}
	return s.timer.Snapshot(), true
}

func (s *Store) ActiveTimerTaskID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return "", false
	}
	return s.timer.TaskID, true
}

func (s *Store) IsTimerRunningForOtherTask(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runningElsewhere(taskID)
}

// CanOpenTask is the inverse of IsTimerRunningForOtherTask.
func (s *Store) CanOpenTask(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.runningElsewhere(taskID)
}

func (s *Store) runningElsewhere(taskID string) bool {
	return s.timer != nil && s.timer.Running && s.timer.TaskID != taskID
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// Session is one finished window of focused work on a task. Sessions are
// append-only and outlive the task they belong to.
type Session struct {
	ID              string
	TaskID          string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidSession)
	}
	if strings.TrimSpace(s.TaskID) == "" {
		return fmt.Errorf("%w: task id is required", ErrInvalidSession)
	}
	if s.EndedAt.Before(s.StartedAt) {
		return fmt.Errorf("%w: ended_at precedes started_at", ErrInvalidSession)
	}
	if s.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidSession, s.DurationSeconds)
	}
	return nil
}

func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

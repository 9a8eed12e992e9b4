package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository receives exported snapshots of tasks and sessions.
type Repository interface {
	UpsertTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateSession(ctx context.Context, in Session) error
	ListSessions(ctx context.Context, filter SessionListFilter) ([]Session, error)
}

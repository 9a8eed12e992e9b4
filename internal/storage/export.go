package storage

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/taskfocus/internal/model"
)

type ExportResult struct {
	Tasks    int
	Sessions int
}

// Export writes a point-in-time copy of tasks and sessions to repo. Tasks go
// first so session rows always find their owner.
func Export(ctx context.Context, repo Repository, tasks []model.Task, sessions []model.Session) (ExportResult, error) {
	var res ExportResult
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := repo.UpsertTask(ctx, TaskFromModel(t)); err != nil {
			return res, fmt.Errorf("export task %s: %w", t.ID, err)
		}
		res.Tasks++
	}
	for _, s := range sessions {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := repo.CreateSession(ctx, SessionFromModel(s)); err != nil {
			return res, fmt.Errorf("export session %s: %w", s.ID, err)
		}
		res.Sessions++
	}
	return res, nil
}

// ExportFile opens or creates the SQLite file at path and exports into it.
func ExportFile(ctx context.Context, path string, tasks []model.Task, sessions []model.Session) (ExportResult, error) {
	repo, err := OpenSQLite(ctx, path)
	if err != nil {
		return ExportResult{}, err
	}
	res, err := Export(ctx, repo, tasks, sessions)
	if closeErr := repo.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close export db: %w", closeErr)
	}
	return res, err
}

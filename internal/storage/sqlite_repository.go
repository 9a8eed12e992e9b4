package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens path, applies the schema and returns a ready repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// PRAGMA foreign_keys is per connection.
	db.SetMaxOpenConns(1)
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// UpsertTask writes the task row and replaces its tag rows in one transaction.
func (r *SQLiteRepository) UpsertTask(ctx context.Context, in Task) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, work_minutes, break_minutes, deadline_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			work_minutes = excluded.work_minutes,
			break_minutes = excluded.break_minutes,
			deadline_at = excluded.deadline_at,
			updated_at = excluded.updated_at`,
		in.ID, in.Title, in.Description, in.Status, in.WorkMinutes, in.BreakMinutes,
		nullTime(in.DeadlineAt), mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	); err != nil {
		return fmt.Errorf("upsert task %s: %w", in.ID, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = ?`, in.ID); err != nil {
		return fmt.Errorf("clear tags %s: %w", in.ID, err)
	}
	for i, tag := range in.Tags {
		if _, err = tx.ExecContext(ctx, `INSERT INTO task_tags (task_id, position, name) VALUES (?, ?, ?)`, in.ID, i, tag); err != nil {
			return fmt.Errorf("insert tag %s: %w", in.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit task %s: %w", in.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, work_minutes, break_minutes, deadline_at, created_at, updated_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	tags, err := r.loadTags(ctx, task.ID)
	if err != nil {
		return Task{}, err
	}
	task.Tags = tags
	return task, nil
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, title, description, status, work_minutes, break_minutes, deadline_at, created_at, updated_at FROM tasks`
	args := make([]any, 0, 3)
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			_ = rows.Close()
			return nil, scanErr
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range out {
		tags, tagErr := r.loadTags(ctx, out[i].ID)
		if tagErr != nil {
			return nil, tagErr
		}
		out[i].Tags = tags
	}
	return out, nil
}

func (r *SQLiteRepository) CreateSession(ctx context.Context, in Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, task_id, started_at, ended_at, duration_seconds)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		in.ID, in.TaskID, mustTime(in.StartedAt), mustTime(in.EndedAt), in.DurationSeconds,
	)
	return err
}

func (r *SQLiteRepository) ListSessions(ctx context.Context, filter SessionListFilter) ([]Session, error) {
	query := `SELECT id, task_id, started_at, ended_at, duration_seconds FROM sessions`
	args := make([]any, 0, 3)
	if filter.TaskID != "" {
		query += ` WHERE task_id = ?`
		args = append(args, filter.TaskID)
	}
	query += ` ORDER BY ended_at DESC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0)
	for rows.Next() {
		item, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) loadTags(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM task_tags WHERE task_id = ? ORDER BY position ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var deadline sql.NullString
	var created, updated string
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.Status, &out.WorkMinutes, &out.BreakMinutes, &deadline, &created, &updated); err != nil {
		return Task{}, err
	}
	deadlineAt, err := parseNullableTime(deadline)
	if err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Task{}, err
	}
	out.DeadlineAt = deadlineAt
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanSession(s scanner) (Session, error) {
	var out Session
	var started, ended string
	if err := s.Scan(&out.ID, &out.TaskID, &started, &ended, &out.DurationSeconds); err != nil {
		return Session{}, err
	}
	startedAt, err := parseRequiredTime(started)
	if err != nil {
		return Session{}, err
	}
	endedAt, err := parseRequiredTime(ended)
	if err != nil {
		return Session{}, err
	}
	out.StartedAt = startedAt
	out.EndedAt = endedAt
	return out, nil
}

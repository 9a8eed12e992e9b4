package store

import (
	"strings"

	"github.com/sandeepkv93/taskfocus/internal/model"
)

// ListSessions returns the sessions recorded for taskID, newest first.
func (s *Store) ListSessions(taskID string) []model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Session, 0)
	for _, sess := range s.sessions {
		if sess.TaskID == taskID {
			out = append(out, sess)
		}
	}
	return out
}

func (s *Store) AllSessions() []model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

func (s *Store) TotalFocusedSeconds(taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, sess := range s.sessions {
		if sess.TaskID == taskID {
			total += sess.DurationSeconds
		}
	}
	return total
}

func (s *Store) SessionCount(taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, sess := range s.sessions {
		if sess.TaskID == taskID {
			n++
		}
	}
	return n
}

// Partitions groups tasks by status in list order. Overdue holds the IDs of
// Active tasks past their deadline at query time.
type Partitions struct {
	Active  []model.Task
	Done    []model.Task
	Deleted []model.Task
	Overdue map[string]bool
}

func (p Partitions) Len() int {
	return len(p.Active) + len(p.Done) + len(p.Deleted)
}

// Search partitions the tasks matching query. The query is matched
// case-insensitively against title, description and tags; a blank query
// matches everything.
func (s *Store) Search(query string) Partitions {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	q := strings.ToLower(strings.TrimSpace(query))
	out := Partitions{
		Active:  make([]model.Task, 0),
		Done:    make([]model.Task, 0),
		Deleted: make([]model.Task, 0),
		Overdue: make(map[string]bool),
	}
	for _, task := range s.tasks {
		if q != "" && !matches(task, q) {
			continue
		}
		switch task.Status {
		case model.TaskStatusDone:
			out.Done = append(out.Done, task.Clone())
		case model.TaskStatusDeleted:
			out.Deleted = append(out.Deleted, task.Clone())
		default:
			out.Active = append(out.Active, task.Clone())
			if task.IsOverdue(now) {
				out.Overdue[task.ID] = true
			}
		}
	}
	return out
}

func matches(task model.Task, q string) bool {
	if strings.Contains(strings.ToLower(task.Title), q) || strings.Contains(strings.ToLower(task.Description), q) {
		return true
	}
	for _, tag := range task.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

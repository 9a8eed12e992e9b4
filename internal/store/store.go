// Package store holds the in-memory task list, session history and the single
// active pomodoro timer. Every exported method is safe for concurrent use; the
// whole store sits behind one mutex because no operation blocks.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskfocus/internal/model"
)

// Clock provides the current time. Tests inject a controllable clock.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocation sets the zone deadline strings are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type Store struct {
	mu       sync.Mutex
	clock    Clock
	newID    func() string
	logger   *slog.Logger
	loc      *time.Location
	tasks    []model.Task
	sessions []model.Session
	timer    *model.ActiveTimer
}

func New(opts ...Option) *Store {
	s := &Store{
		clock:    RealClock{},
		newID:    uuid.NewString,
		logger:   slog.New(slog.DiscardHandler),
		loc:      time.Local,
		tasks:    make([]model.Task, 0),
		sessions: make([]model.Session, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) now() time.Time {
	return s.clock.Now()
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/organizeme/internal/model"
	"github.com/sandeepkv93/organizeme/internal/storage"
)

var ErrClosed = errors.New("store: closed")

// Store owns the application state for one session. It is created with Open
// and ended with Close; every transition in between is saved through the
// persister on a best-effort basis.
type Store struct {
	mu        sync.Mutex
	state     *State
	persister storage.Persister
	logger    *log.Logger
	subs      map[int]func(*State)
	nextSub   int
	closed    bool
}

type Options struct {
	Logger *log.Logger
	Now    func() time.Time
}

// Open loads the persisted snapshot, falling back to the built-in defaults
// when nothing usable is stored, and initializes the store with it.
func Open(ctx context.Context, p storage.Persister, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Store{
		state:     &State{},
		persister: p,
		logger:    logger,
		subs:      make(map[int]func(*State)),
	}

	var snap storage.Snapshot
	var err error
	if p == nil {
		err = storage.ErrNotFound
	} else {
		snap, err = p.Load(ctx)
	}
	switch {
	case err == nil:
		logger.WithFields(log.Fields{"tasks": len(snap.Tasks), "categories": len(snap.Categories)}).Debug("loaded persisted state")
	case errors.Is(err, storage.ErrNotFound):
		logger.Debug("no persisted state, using defaults")
		snap = defaultSnapshot(now())
	default:
		logger.WithError(err).Error("failed to load state, using defaults")
		snap = defaultSnapshot(now())
	}
	_, _ = s.Dispatch(ctx, Initialize{Tasks: snap.Tasks, Categories: snap.Categories})
	return s
}

func defaultSnapshot(now time.Time) storage.Snapshot {
	return storage.Snapshot{Tasks: model.DefaultTasks(now), Categories: model.DefaultCategories()}
}

func (s *Store) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the action and returns the resulting state. Save failures
// are logged, never returned.
func (s *Store) Dispatch(ctx context.Context, a Action) (*State, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	prev := s.state
	next := Reduce(prev, a)
	if next == prev {
		s.mu.Unlock()
		return next, nil
	}
	s.state = next
	subs := make([]func(*State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	if next.Initialized && s.persister != nil {
		snap := storage.Snapshot{Tasks: next.Tasks, Categories: next.Categories}
		if err := s.persister.Save(ctx, snap); err != nil {
			s.logger.WithError(err).Error("failed to save state")
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next, nil
}

// Subscribe registers fn to be called after every state change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(*State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.subs = nil
	return nil
}

func (s *Store) AddTask(ctx context.Context, t model.Task) error {
	_, err := s.Dispatch(ctx, AddTask{Task: t})
	return err
}

func (s *Store) UpdateTask(ctx context.Context, t model.Task) error {
	_, err := s.Dispatch(ctx, UpdateTask{Task: t})
	return err
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	_, err := s.Dispatch(ctx, DeleteTask{ID: id})
	return err
}

func (s *Store) ToggleTaskCompleted(ctx context.Context, id string) error {
	_, err := s.Dispatch(ctx, ToggleTaskCompleted{ID: id})
	return err
}

func (s *Store) ToggleSubtaskCompleted(ctx context.Context, taskID, subtaskID string) error {
	_, err := s.Dispatch(ctx, ToggleSubtaskCompleted{TaskID: taskID, SubtaskID: subtaskID})
	return err
}

func (s *Store) AddCategory(ctx context.Context, c model.Category) error {
	_, err := s.Dispatch(ctx, AddCategory{Category: c})
	return err
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	_, err := s.Dispatch(ctx, DeleteCategory{ID: id})
	return err
}

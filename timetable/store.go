package timetable

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
)

var (
	// the class has no timetable
	ErrTimetableNotFound = errors.New("timetable not found")

	// the lookup failed in transport or decoding, retrying later could work
	ErrStoreUnavailable = errors.New("timetable store unavailable")
)

// Store holds timetables keyed by class. Get returns ErrTimetableNotFound when
// there is none; any other error means the store could not answer.
type Store interface {
	Get(ctx context.Context, key Key) (Timetable, error)
	Save(ctx context.Context, timetable Timetable) error
	List(ctx context.Context) ([]Key, error)
}

type MemoryStore struct {
	mu         sync.RWMutex
	timetables map[string]Timetable
}

func NewMemoryStore(timetables ...Timetable) *MemoryStore {
	s := &MemoryStore{timetables: make(map[string]Timetable, len(timetables))}
	for _, t := range timetables {
		s.timetables[t.Key.String()] = t.Clone()
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, key Key) (Timetable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.timetables[key.String()]
	if !ok {
		return Timetable{}, ErrTimetableNotFound
	}
	return t.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, timetable Timetable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timetables[timetable.Key.String()] = timetable.Clone()
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]Key, 0, len(s.timetables))
	for _, t := range s.timetables {
		keys = append(keys, t.Key)
	}
	sortKeys(keys)
	return keys, nil
}

func sortKeys(keys []Key) {
	slices.SortFunc(keys, func(a, b Key) int {
		return strings.Compare(a.String(), b.String())
	})
}

// defaultsStore falls back to the built in timetables. Stored timetables win.
type defaultsStore struct {
	Store
	defaults map[string]Timetable
}

// WithDefaults serves the built in timetables for any class the backing store lacks
func WithDefaults(store Store) Store {
	defaults := make(map[string]Timetable)
	for _, t := range DefaultTimetables() {
		defaults[t.Key.String()] = t
	}
	return &defaultsStore{Store: store, defaults: defaults}
}

func (s *defaultsStore) Get(ctx context.Context, key Key) (Timetable, error) {
	t, err := s.Store.Get(ctx, key)
	if !errors.Is(err, ErrTimetableNotFound) {
		return t, err
	}
	fallback, ok := s.defaults[key.String()]
	if !ok {
		return Timetable{}, err
	}
	return fallback.Clone(), nil
}

func (s *defaultsStore) List(ctx context.Context) ([]Key, error) {
	keys, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range s.defaults {
		if !slices.Contains(keys, t.Key) {
			keys = append(keys, t.Key)
		}
	}
	sortKeys(keys)
	return keys, nil
}

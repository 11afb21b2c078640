package odrequest

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Store persists requests. Failures are returned to the caller, never retried.
type Store interface {
	Save(ctx context.Context, r Request) error
	Get(ctx context.Context, id string) (Request, error)
	List(ctx context.Context) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Request, error)
	Delete(ctx context.Context, id string) error
}

type EventKind string

const (
	EventSubmitted     EventKind = "submitted"
	EventStatusChanged EventKind = "status_changed"
	EventDeleted       EventKind = "deleted"
)

// Publisher is told about request changes, for example to push them to open dashboards
type Publisher interface {
	Publish(ctx context.Context, kind EventKind, r Request)
}

type MemoryStore struct {
	mu       sync.RWMutex
	requests map[string]Request
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{requests: make(map[string]Request)}
}

func (s *MemoryStore) Save(ctx context.Context, r Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.ID] = r
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return Request{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, nil
}

// List returns newest first
func (s *MemoryStore) List(ctx context.Context) ([]Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Request, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Request) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status Status) (Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return Request{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := r.Decide(status); err != nil {
		return Request{}, err
	}
	s.requests[id] = r
	return r, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := r.Deletable(); err != nil {
		return err
	}
	delete(s.requests, id)
	return nil
}

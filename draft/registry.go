package draft

import (
	"errors"
	"fmt"
	"sync"
)

var ErrDraftNotFound = errors.New("draft not found")

type entry struct {
	mu    sync.Mutex
	draft ClassDraft
}

// Registry keeps in-progress drafts. Changes to one draft are serialized by
// that draft's own lock so different drafts never wait on each other.
type Registry struct {
	mu     sync.RWMutex
	drafts map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*entry)}
}

func (r *Registry) Create() ClassDraft {
	d := New()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[d.ID] = &entry{draft: d}
	return d.Clone()
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.drafts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	return e, nil
}

func (r *Registry) Get(id string) (ClassDraft, error) {
	e, err := r.lookup(id)
	if err != nil {
		return ClassDraft{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone(), nil
}

// Update runs fn on a copy of the draft and keeps the copy only when fn succeeds
func (r *Registry) Update(id string, fn func(*ClassDraft) error) (ClassDraft, error) {
	e, err := r.lookup(id)
	if err != nil {
		return ClassDraft{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.draft.Clone()
	if err := fn(&working); err != nil {
		return e.draft.Clone(), err
	}
	e.draft = working
	return working.Clone(), nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[id]; !ok {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	delete(r.drafts, id)
	return nil
}

// Take removes the drafts and returns them in the order asked for.
// Nothing is removed unless every id exists.
func (r *Registry) Take(ids ...string) ([]ClassDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]*entry, len(ids))
	for i, id := range ids {
		e, ok := r.drafts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
		}
		entries[i] = e
	}
	drafts := make([]ClassDraft, len(ids))
	for i, e := range entries {
		e.mu.Lock()
		drafts[i] = e.draft.Clone()
		e.mu.Unlock()
		delete(r.drafts, ids[i])
	}
	return drafts, nil
}

// Restore puts drafts back, used when a request built from them could not be saved
func (r *Registry) Restore(drafts ...ClassDraft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range drafts {
		r.drafts[d.ID] = &entry{draft: d.Clone()}
	}
}

package odrequest

import (
	"context"
	"log/slog"
)

// Service saves request changes and announces them once they are stored
type Service struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
}

func NewService(store Store, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{store: store, publisher: publisher, logger: logger}
}

func (s *Service) Submit(ctx context.Context, sub Submission) (Request, error) {
	r, err := New(sub)
	if err != nil {
		return Request{}, err
	}
	if err := s.store.Save(ctx, r); err != nil {
		s.logger.Error("Could not save od request", "request", r.ID, "err", err)
		return Request{}, err
	}
	s.logger.Info("Saved od request", "request", r.ID, "event", r.EventName, "classes", len(r.Classes))
	s.publish(ctx, EventSubmitted, r)
	return r, nil
}

func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Request, error) {
	return s.store.List(ctx)
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	requests, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(requests), nil
}

func (s *Service) Decide(ctx context.Context, id string, status Status) (Request, error) {
	r, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return Request{}, err
	}
	s.logger.Info("Od request decided", "request", id, "status", status)
	s.publish(ctx, EventStatusChanged, r)
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.Deletable(); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, EventDeleted, r)
	return nil
}

func (s *Service) publish(ctx context.Context, kind EventKind, r Request) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, kind, r)
}

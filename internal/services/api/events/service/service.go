// Package service contains the event log workflows
package service

import (
	"context"
	"time"

	"gatehouse/internal/services/api/events/domain"
	"gatehouse/internal/services/api/events/repo"
)

// Service is the contract exposed to http and to other modules
type Service interface {
	domain.RecorderPort
	domain.ReaderPort
}

// Svc implements Service over a storage backend
type Svc struct {
	Repo repo.Repo
	now  func() time.Time
}

// New creates the events service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("events.Service requires a non nil Repo")
	}
	return &Svc{Repo: r, now: time.Now}
}

// Record stamps the arrival time and appends the event
func (s *Svc) Record(ctx context.Context, rec domain.Record) error {
	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = s.now().UTC()
	}
	return s.Repo.Append(ctx, rec)
}

// List returns all stored events in arrival order
func (s *Svc) List(ctx context.Context) ([]domain.Record, error) {
	return s.Repo.All(ctx)
}

// Latest returns the most recently stored event
func (s *Svc) Latest(ctx context.Context) (domain.Record, bool, error) {
	recs, err := s.Repo.All(ctx)
	if err != nil || len(recs) == 0 {
		return domain.Record{}, false, err
	}
	return recs[len(recs)-1], true, nil
}

// Clear drops all stored events
func (s *Svc) Clear(ctx context.Context) error {
	return s.Repo.Clear(ctx)
}

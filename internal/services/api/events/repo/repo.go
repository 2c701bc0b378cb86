// Package repo provides storage backends for the webhook event log
// the file backend mirrors the demo deployment, postgres is the
// production path, both keep arrival order
package repo

import (
	"context"

	"gatehouse/internal/services/api/events/domain"
)

// Repo is the storage contract shared by both backends
type Repo interface {
	Append(ctx context.Context, rec domain.Record) error
	All(ctx context.Context) ([]domain.Record, error)
	Clear(ctx context.Context) error
}

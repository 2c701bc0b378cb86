package domain

import "context"

// RecorderPort accepts a validated, tenant-attributed event for persistence
// consumed by the webhook dispatcher across the module boundary
type RecorderPort interface {
	Record(ctx context.Context, rec Record) error
}

// ReaderPort is the management read/clear surface over stored events
type ReaderPort interface {
	List(ctx context.Context) ([]Record, error)
	Latest(ctx context.Context) (Record, bool, error)
	Clear(ctx context.Context) error
}

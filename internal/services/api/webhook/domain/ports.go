package domain

import "context"

// ServicePort is the dispatch contract exposed to transport
type ServicePort interface {
	Dispatch(ctx context.Context, in Inbound) (Result, error)
}

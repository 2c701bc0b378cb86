// Package http provides the event log management endpoints
package http

import (
	stdhttp "net/http"

	"gatehouse/internal/modkit/httpkit"
	"gatehouse/internal/services/api/events/domain"
	svc "gatehouse/internal/services/api/events/service"
)

// Register mounts the event log endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/latest", h.latest)
	httpkit.Delete(r, "/", h.clear)
}

type handlers struct{ svc svc.Service }

// ClearResponse acknowledges a log wipe
type ClearResponse struct {
	Message string `json:"message"`
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	recs, err := h.svc.List(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.ListOutput{Count: len(recs), Webhooks: recs}, nil
}

func (h *handlers) latest(r *stdhttp.Request) (any, error) {
	rec, ok, err := h.svc.Latest(r.Context())
	if err != nil {
		return nil, err
	}
	if !ok {
		return ClearResponse{Message: "No webhooks found"}, nil
	}
	return rec, nil
}

func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	if err := h.svc.Clear(r.Context()); err != nil {
		return nil, err
	}
	return ClearResponse{Message: "All webhooks cleared"}, nil
}

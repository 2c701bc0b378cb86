// Package http provides the webhook receive endpoint
//
// this endpoint deliberately bypasses the envelope writer, validation
// challenges must be reflected back byte for byte and the ack shapes
// are part of the sender facing contract
package http

import (
	"encoding/json"
	"io"
	stdhttp "net/http"

	"gatehouse/internal/modkit/httpkit"
	perr "gatehouse/internal/platform/errors"
	phttp "gatehouse/internal/platform/net/http"
	"gatehouse/internal/services/api/webhook/domain"
	svc "gatehouse/internal/services/api/webhook/service"
)

// maxBody caps inbound webhook payloads
const maxBody = 1 << 20

// Register mounts the webhook endpoint on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Post("/", httpkit.Raw(h.receive))
}

type handlers struct{ svc svc.Service }

func (h *handlers) receive(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSON(w, stdhttp.StatusRequestEntityTooLarge, domain.Rejection{
			Status: "error",
			Reason: "body_too_large",
		})
		return
	}

	res, err := h.svc.Dispatch(r.Context(), domain.Inbound{
		Body:    body,
		Headers: r.Header,
		Remote:  r.RemoteAddr,
	})
	if err != nil {
		status, wire := perr.HTTP(err)
		writeJSON(w, status, wire)
		return
	}

	switch res.Disposition {
	case domain.DispositionEcho:
		phttp.Raw(w, stdhttp.StatusOK, res.Echo)
	case domain.DispositionAccepted:
		writeJSON(w, stdhttp.StatusOK, res.Ack)
	default:
		writeJSON(w, stdhttp.StatusUnauthorized, domain.Rejection{
			Status: "error",
			Reason: res.Reason,
		})
	}
}

func readBody(w stdhttp.ResponseWriter, r *stdhttp.Request) ([]byte, error) {
	r.Body = stdhttp.MaxBytesReader(w, r.Body, maxBody)
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

func writeJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

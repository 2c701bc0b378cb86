// Package service contains the webhook dispatch workflow
package service

import (
	"context"
	"encoding/json"

	"gatehouse/internal/core/authn"
	"gatehouse/internal/core/challenge"
	"gatehouse/internal/platform/logger"
	"gatehouse/internal/platform/net/http/bind"

	eventsdomain "gatehouse/internal/services/api/events/domain"
	"gatehouse/internal/services/api/webhook/domain"
)

// Service is the dispatch contract
type Service interface{ domain.ServicePort }

// Svc runs the per request state machine
// Received -> Classified{challenge|event} -> Echo | Accepted | Rejected
type Svc struct {
	auth     *authn.Authenticator
	recorder eventsdomain.RecorderPort
}

// New creates the dispatcher
func New(auth *authn.Authenticator, recorder eventsdomain.RecorderPort) *Svc {
	if auth == nil {
		panic("webhook.Service requires a non nil Authenticator")
	}
	if recorder == nil {
		panic("webhook.Service requires a non nil Recorder port")
	}
	return &Svc{auth: auth, recorder: recorder}
}

// Dispatch classifies, authenticates, and persists one inbound request
// challenges are echoed before any credential check runs, that includes
// the empty document case even when a credential header is present
func (s *Svc) Dispatch(ctx context.Context, in domain.Inbound) (domain.Result, error) {
	log := logger.C(ctx)

	if res := challenge.Classify(in.Body); res.IsChallenge {
		log.Info().
			Str("remote", in.Remote).
			Int("body_bytes", len(in.Body)).
			Msg("validation challenge echoed")
		return domain.Result{Disposition: domain.DispositionEcho, Echo: res.Echo}, nil
	}

	out := s.auth.Authenticate(in.Headers, in.Body)
	if !out.Verified {
		reason := out.Reason
		if reason == authn.ReasonMissingCredential && !parsesAsDocument(in.Body) {
			reason = authn.ReasonMalformedBody
		}
		log.Warn().
			Str("remote", in.Remote).
			Str("reason", string(reason)).
			Msg("webhook rejected")
		return domain.Result{Disposition: domain.DispositionRejected, Reason: string(reason)}, nil
	}

	rec := eventsdomain.Record{
		Method:            string(out.Method),
		SignatureVerified: s.auth.Enforced(),
		VerifiedWith:      out.SecretPreview,
		Payload:           rawPayload(in.Body),
	}
	ack := domain.Ack{
		Status:            "success",
		Message:           "Webhook received and stored",
		SignatureVerified: s.auth.Enforced(),
		VerifiedWith:      out.SecretPreview,
	}

	// authenticated payloads are stored even when they do not conform
	// to the event schema, the typed fields are best effort audit data
	var data domain.WebhookData
	if err := json.Unmarshal(in.Body, &data); err == nil {
		if err := bind.Validate(&data); err == nil {
			rec.Type = data.Type
			rec.AssetName = data.Payload.AssetDetails.Name
			ack.Type = data.Type
			ack.AssetName = data.Payload.AssetDetails.Name
		}
	}

	if err := s.recorder.Record(ctx, rec); err != nil {
		return domain.Result{}, err
	}

	log.Info().
		Str("remote", in.Remote).
		Str("method", string(out.Method)).
		Str("tenant", out.SecretPreview).
		Str("type", rec.Type).
		Msg("webhook accepted")
	return domain.Result{Disposition: domain.DispositionAccepted, Ack: ack}, nil
}

// parsesAsDocument reports whether body is a JSON key-value document
func parsesAsDocument(body []byte) bool {
	var doc map[string]json.RawMessage
	return json.Unmarshal(body, &doc) == nil
}

// rawPayload keeps valid JSON verbatim and wraps anything else as a string
// so the stored log stays parseable
func rawPayload(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	wrapped, _ := json.Marshal(string(body))
	return wrapped
}

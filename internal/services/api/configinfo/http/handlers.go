// Package http provides the configuration introspection endpoint
package http

import (
	stdhttp "net/http"

	"gatehouse/internal/core/authn"
	"gatehouse/internal/modkit/httpkit"
)

// Deps are the handler dependencies
type Deps struct {
	Auth     *authn.Authenticator
	Backend  string
	FilePath string
}

// ConfigResponse reports receiver configuration without secret material
// previews are truncated, full values never leave the process
type ConfigResponse struct {
	SignatureVerificationEnabled bool     `json:"signature_verification_enabled"`
	SecretsConfigured            int      `json:"secrets_configured"`
	SecretPreviews               []string `json:"secret_previews"`
	MultiTenantSupport           bool     `json:"multi_tenant_support"`
	StorageBackend               string   `json:"storage_backend"`
	WebhookFile                  string   `json:"webhook_file,omitempty"`
}

// Register mounts the config introspection route
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/", h.config)
}

type handlers struct{ deps Deps }

func (h *handlers) config(_ *stdhttp.Request) (any, error) {
	reg := h.deps.Auth.Registry()
	return ConfigResponse{
		SignatureVerificationEnabled: h.deps.Auth.Enforced(),
		SecretsConfigured:            reg.Count(),
		SecretPreviews:               reg.Previews(),
		MultiTenantSupport:           reg.Count() > 1,
		StorageBackend:               h.deps.Backend,
		WebhookFile:                  h.deps.FilePath,
	}, nil
}

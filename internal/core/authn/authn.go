// Package authn decides whether an inbound webhook request is authentic
// and which configured tenant secret vouches for it
package authn

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"gatehouse/internal/core/secrets"
)

// DirectHeader carries a raw secret value for exact match authentication
const DirectHeader = "secret-key"

// signatureHeaders are consulted in priority order, first present one wins
var signatureHeaders = []string{
	"X-Signature-256",
	"X-Hub-Signature-256",
	"X-Signature",
}

// signaturePrefixes are algorithm tags senders may prepend to the hex digest
var signaturePrefixes = []string{"sha256=", "sha1="}

// Method identifies how a request was verified
type Method string

// Verification methods
const (
	MethodDirect   Method = "direct"
	MethodHMAC     Method = "hmac"
	MethodDisabled Method = "disabled"
)

// Reason classifies why a request was rejected
// the taxonomy tag is safe to surface to callers, secret values never are
type Reason string

// Rejection reasons
const (
	ReasonMissingCredential   Reason = "missing_credential"
	ReasonInvalidDirectSecret Reason = "invalid_direct_secret"
	ReasonInvalidSignature    Reason = "invalid_signature"

	// ReasonMalformedBody is assigned by the dispatcher when an
	// unparseable non-challenge body also carries no credential
	ReasonMalformedBody Reason = "malformed_body"
)

// ErrNoSecrets means enforcement is on but the registry is empty
// fatal at startup, never a per request condition
var ErrNoSecrets = errors.New("authn: signature enforcement requires at least one configured secret")

// Outcome is the result of authenticating a single request
// exactly one of Verified or Reason is meaningful
type Outcome struct {
	Verified      bool
	Method        Method
	SecretPreview string
	Reason        Reason
}

// Authenticator checks inbound credentials against the secret registry
// read-only after construction, safe for concurrent use
type Authenticator struct {
	reg     *secrets.Registry
	enforce bool
}

// New builds an Authenticator
// rejects the empty-registry-with-enforcement configuration up front
func New(reg *secrets.Registry, enforce bool) (*Authenticator, error) {
	if enforce && reg.Empty() {
		return nil, ErrNoSecrets
	}
	return &Authenticator{reg: reg, enforce: enforce}, nil
}

// Enforced reports whether verification is required
func (a *Authenticator) Enforced() bool { return a.enforce }

// Registry exposes the secret registry for introspection surfaces
func (a *Authenticator) Registry() *secrets.Registry { return a.reg }

// Authenticate applies the credential policy in strict priority order
// direct secret header first, then HMAC signature headers, then nothing
// a present but wrong direct secret short-circuits, the sender declared
// its intended method so signature headers are not consulted as a fallback
func (a *Authenticator) Authenticate(headers http.Header, body []byte) Outcome {
	if !a.enforce {
		return Outcome{Verified: true, Method: MethodDisabled}
	}

	if direct := headers.Get(DirectHeader); direct != "" {
		if a.reg.Contains(direct) {
			return Outcome{
				Verified:      true,
				Method:        MethodDirect,
				SecretPreview: secrets.Preview(direct),
			}
		}
		return Outcome{Reason: ReasonInvalidDirectSecret}
	}

	if sig := firstSignature(headers); sig != "" {
		received := stripPrefix(sig)
		var matched string
		a.reg.ForEach(func(secret string) bool {
			if hmac.Equal([]byte(hexDigest(secret, body)), []byte(received)) {
				matched = secret
				return false
			}
			return true
		})
		if matched != "" {
			return Outcome{
				Verified:      true,
				Method:        MethodHMAC,
				SecretPreview: secrets.Preview(matched),
			}
		}
		return Outcome{Reason: ReasonInvalidSignature}
	}

	return Outcome{Reason: ReasonMissingCredential}
}

// firstSignature returns the first present signature header value in priority order
func firstSignature(headers http.Header) string {
	for _, name := range signatureHeaders {
		if v := headers.Get(name); v != "" {
			return v
		}
	}
	return ""
}

func stripPrefix(sig string) string {
	for _, p := range signaturePrefixes {
		if strings.HasPrefix(sig, p) {
			return sig[len(p):]
		}
	}
	return sig
}

// hexDigest computes the lowercase hex HMAC-SHA256 of body keyed by secret
func hexDigest(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign computes the signature header value for body under secret
// exported for tests and local tooling
func Sign(secret string, body []byte) string {
	return "sha256=" + hexDigest(secret, body)
}

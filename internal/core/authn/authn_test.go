package authn

import (
	"net/http"
	"strings"
	"testing"

	"gatehouse/internal/core/secrets"
)

func mustNew(t *testing.T, raw string, enforce bool) *Authenticator {
	t.Helper()
	a, err := New(secrets.Load(raw), enforce)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func hdr(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestNewRejectsEmptyRegistryWhenEnforced(t *testing.T) {
	if _, err := New(secrets.Load(""), true); err != ErrNoSecrets {
		t.Fatalf("err = %v want ErrNoSecrets", err)
	}
	if _, err := New(secrets.Load(""), false); err != nil {
		t.Fatalf("enforce=false should accept empty registry, got %v", err)
	}
}

func TestEnforcementDisabled(t *testing.T) {
	a := mustNew(t, "s1,s2", false)

	for _, h := range []http.Header{
		hdr(),
		hdr("secret-key", "wrong"),
		hdr("X-Signature-256", "sha256=garbage"),
	} {
		out := a.Authenticate(h, []byte(`{"type":"EVENT"}`))
		if !out.Verified || out.Method != MethodDisabled {
			t.Fatalf("outcome = %+v want Verified via disabled", out)
		}
	}
}

func TestDirectSecret(t *testing.T) {
	a := mustNew(t, "alpha,bravo,charlie", true)
	body := []byte(`{"type":"EVENT"}`)

	for _, s := range []string{"alpha", "bravo", "charlie"} {
		out := a.Authenticate(hdr("secret-key", s), body)
		if !out.Verified || out.Method != MethodDirect {
			t.Fatalf("secret-key %q: outcome = %+v", s, out)
		}
		if out.SecretPreview != secrets.Preview(s) {
			t.Fatalf("preview = %q want %q", out.SecretPreview, secrets.Preview(s))
		}
	}

	out := a.Authenticate(hdr("secret-key", "intruder"), body)
	if out.Verified || out.Reason != ReasonInvalidDirectSecret {
		t.Fatalf("outcome = %+v want invalid_direct_secret", out)
	}
}

func TestDirectSecretHeaderCaseInsensitive(t *testing.T) {
	a := mustNew(t, "alpha", true)
	out := a.Authenticate(hdr("Secret-Key", "alpha"), nil)
	if !out.Verified || out.Method != MethodDirect {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestDirectFailureShortCircuits(t *testing.T) {
	a := mustNew(t, "alpha", true)
	body := []byte(`{"x":1}`)

	// valid signature alongside a bad direct secret must still reject
	h := hdr("secret-key", "wrong", "X-Signature-256", Sign("alpha", body))
	out := a.Authenticate(h, body)
	if out.Verified || out.Reason != ReasonInvalidDirectSecret {
		t.Fatalf("outcome = %+v want invalid_direct_secret", out)
	}
}

func TestHMACSignature(t *testing.T) {
	a := mustNew(t, "first,second", true)
	body := []byte(`{"type":"EVENT","payload":{}}`)

	out := a.Authenticate(hdr("X-Signature-256", Sign("second", body)), body)
	if !out.Verified || out.Method != MethodHMAC {
		t.Fatalf("outcome = %+v want Verified via hmac", out)
	}
	if out.SecretPreview != secrets.Preview("second") {
		t.Fatalf("preview = %q", out.SecretPreview)
	}
}

func TestHMACBareHexAccepted(t *testing.T) {
	a := mustNew(t, "first", true)
	body := []byte(`{"x":1}`)

	bare := strings.TrimPrefix(Sign("first", body), "sha256=")
	out := a.Authenticate(hdr("X-Signature-256", bare), body)
	if !out.Verified {
		t.Fatalf("outcome = %+v want Verified", out)
	}
}

func TestHMACBodyTamperInvalidates(t *testing.T) {
	a := mustNew(t, "first", true)
	body := []byte(`{"amount":100}`)
	sig := Sign("first", body)

	tampered := []byte(`{"amount":900}`)
	out := a.Authenticate(hdr("X-Signature-256", sig), tampered)
	if out.Verified || out.Reason != ReasonInvalidSignature {
		t.Fatalf("outcome = %+v want invalid_signature", out)
	}
}

func TestSignatureHeaderPriority(t *testing.T) {
	a := mustNew(t, "alpha", true)
	body := []byte(`{"x":1}`)

	// X-Signature-256 outranks the others, its bogus value must lose to
	// a valid X-Hub-Signature-256 never being consulted
	h := hdr(
		"X-Signature-256", "sha256=bogus",
		"X-Hub-Signature-256", Sign("alpha", body),
	)
	out := a.Authenticate(h, body)
	if out.Verified || out.Reason != ReasonInvalidSignature {
		t.Fatalf("outcome = %+v want invalid_signature", out)
	}

	// fallback headers work when the primary is absent
	for _, name := range []string{"X-Hub-Signature-256", "X-Signature"} {
		out := a.Authenticate(hdr(name, Sign("alpha", body)), body)
		if !out.Verified {
			t.Fatalf("%s: outcome = %+v want Verified", name, out)
		}
	}
}

func TestNoCredentialHeaders(t *testing.T) {
	a := mustNew(t, "alpha", true)
	out := a.Authenticate(hdr("Content-Type", "application/json"), []byte(`{"type":"EVENT"}`))
	if out.Verified || out.Reason != ReasonMissingCredential {
		t.Fatalf("outcome = %+v want missing_credential", out)
	}
}

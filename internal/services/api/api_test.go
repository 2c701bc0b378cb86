package api

import (
	"bytes"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"gatehouse/internal/core/authn"
	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/logger"
	phttp "gatehouse/internal/platform/net/http"
)

// newHandler mounts a full API over a temp file store
func newHandler(t *testing.T, env map[string]string) stdhttp.Handler {
	t.Helper()

	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("STORE_FILE_PATH", filepath.Join(t.TempDir(), "webhooks.json"))
	t.Setenv("CORE_API_SWAGGER", "false")
	for k, v := range env {
		t.Setenv(k, v)
	}

	srv := phttp.NewServer(config.New().Prefix("CORE_API_"))
	Mount(srv.Router(), Options{
		Config: config.New(),
		Logger: logger.Get(),
	})
	return srv.Router().Mux()
}

func do(t *testing.T, h stdhttp.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelopeData(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var env struct {
		StatusCode int            `json:"status_code"`
		Data       map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, body)
	}
	return env.Data
}

const apiEventBody = `{"type":"DATA_ACCESS_REQUEST","payload":{` +
	`"asset_details":{"guid":"g-1","name":"CUSTOMER_DATA",` +
	`"qualified_name":"snowflake/db/schema/customer_data",` +
	`"url":"https://example.atlan.com/assets/g-1","type_name":"Table",` +
	`"connector_name":"snowflake","database_name":"db","schema_name":"schema"},` +
	`"request_timestamp":"2026-08-30T12:00:00Z",` +
	`"approval_details":{"is_auto_approved":true,"approvers":[]},` +
	`"requestor":"jordan","requestor_email":"jordan@example.com",` +
	`"requestor_comment":"quarterly report"}}`

func TestIndexListsEndpoints(t *testing.T) {
	h := newHandler(t, map[string]string{"WEBHOOK_SECRET": "alpha"})

	rec := do(t, h, stdhttp.MethodGet, "/", "", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/webhook") {
		t.Fatalf("index missing endpoints: %s", rec.Body.String())
	}
}

func TestWebhookChallengeEchoedVerbatim(t *testing.T) {
	h := newHandler(t, map[string]string{"WEBHOOK_SECRET": "alpha"})

	body := `{"atlan-webhook": "ping"}`
	rec := do(t, h, stdhttp.MethodPost, "/webhook", body, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != body {
		t.Fatalf("echo = %q want %q", rec.Body.String(), body)
	}

	// no storage write for challenges
	list := do(t, h, stdhttp.MethodGet, "/webhooks", "", nil)
	data := decodeEnvelopeData(t, list.Body.Bytes())
	if data["count"].(float64) != 0 {
		t.Fatalf("challenge was stored: %v", data)
	}
}

func TestWebhookEmptyObjectEchoBypassesAuth(t *testing.T) {
	h := newHandler(t, map[string]string{"WEBHOOK_SECRET": "alpha"})

	rec := do(t, h, stdhttp.MethodPost, "/webhook", `{}`, map[string]string{"secret-key": "wrong"})
	if rec.Code != stdhttp.StatusOK || rec.Body.String() != `{}` {
		t.Fatalf("status = %d body = %q", rec.Code, rec.Body.String())
	}
}

func TestWebhookMissingCredential(t *testing.T) {
	h := newHandler(t, map[string]string{"WEBHOOK_SECRET": "alpha"})

	rec := do(t, h, stdhttp.MethodPost, "/webhook", `{"type":"EVENT","payload":{}}`, nil)
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d want 401", rec.Code)
	}
	var rej map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &rej); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rej["status"] != "error" || rej["reason"] != "missing_credential" {
		t.Fatalf("rejection = %v", rej)
	}
}

func TestWebhookDirectSecretFlow(t *testing.T) {
	h := newHandler(t, map[string]string{"WEBHOOK_SECRET": "alpha-secret,bravo-secret"})

	rec := do(t, h, stdhttp.MethodPost, "/webhook", apiEventBody,
		map[string]string{"secret-key": "bravo-secret"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var ack map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if ack["status"] != "success" || ack["type"] != "DATA_ACCESS_REQUEST" || ack["asset_name"] != "CUSTOMER_DATA" {
		t.Fatalf("ack = %v", ack)
	}
	if ack["signature_verified"] != true || ack["verified_with_secret"] != "bravo-se..." {
		t.Fatalf("ack audit = %v", ack)
	}

	list := do(t, h, stdhttp.MethodGet, "/webhooks", "", nil)
	data := decodeEnvelopeData(t, list.Body.Bytes())
	if data["count"].(float64) != 1 {
		t.Fatalf("count = %v want 1", data["count"])
	}

	latest := do(t, h, stdhttp.MethodGet, "/webhooks/latest", "", nil)
	ldata := decodeEnvelopeData(t, latest.Body.Bytes())
	if ldata["asset_name"] != "CUSTOMER_DATA" {
		t.Fatalf("latest = %v", ldata)
	}

	clr := do(t, h, stdhttp.MethodDelete, "/webhooks", "", nil)
	if clr.Code != stdhttp.StatusOK {
		t.Fatalf("clear status = %d", clr.Code)
	}
	list = do(t, h, stdhttp.MethodGet, "/webhooks", "", nil)
	data = decodeEnvelopeData(t, list.Body.Bytes())
	if data["count"].(float64) != 0 {
		t.Fatalf("count after clear = %v", data["count"])
	}
}

func TestWebhookInvalidDirectSecret(t *testing.T) {
	h := newHandler(t, map[string]string{"WEBHOOK_SECRET": "alpha"})

	rec := do(t, h, stdhttp.MethodPost, "/webhook", apiEventBody,
		map[string]string{"secret-key": "intruder"})
	if rec.Code != stdhttp.StatusUnauthorized || !strings.Contains(rec.Body.String(), "invalid_direct_secret") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestWebhookHMACSignature(t *testing.T) {
	h := newHandler(t, map[string]string{"WEBHOOK_SECRET": "alpha-secret"})

	sig := authn.Sign("alpha-secret", []byte(apiEventBody))
	rec := do(t, h, stdhttp.MethodPost, "/webhook", apiEventBody,
		map[string]string{"X-Hub-Signature-256": sig})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	// same signature over a tampered body must fail
	tampered := strings.Replace(apiEventBody, "jordan", "mallory", 1)
	rec = do(t, h, stdhttp.MethodPost, "/webhook", tampered,
		map[string]string{"X-Hub-Signature-256": sig})
	if rec.Code != stdhttp.StatusUnauthorized || !strings.Contains(rec.Body.String(), "invalid_signature") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestWebhookEnforcementDisabled(t *testing.T) {
	h := newHandler(t, map[string]string{
		"WEBHOOK_SECRET":            "",
		"WEBHOOK_REQUIRE_SIGNATURE": "false",
	})

	rec := do(t, h, stdhttp.MethodPost, "/webhook", `{"type":"EVENT","payload":{}}`, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var ack map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &ack)
	if ack["signature_verified"] != false {
		t.Fatalf("ack = %v", ack)
	}
}

func TestConfigEndpointNeverLeaksSecrets(t *testing.T) {
	h := newHandler(t, map[string]string{"WEBHOOK_SECRET": "super-secret-alpha,super-secret-bravo"})

	rec := do(t, h, stdhttp.MethodGet, "/config", "", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, full := range []string{"super-secret-alpha", "super-secret-bravo"} {
		if strings.Contains(body, full) {
			t.Fatalf("config response leaks full secret %q: %s", full, body)
		}
	}

	data := decodeEnvelopeData(t, rec.Body.Bytes())
	if data["signature_verification_enabled"] != true {
		t.Fatalf("config = %v", data)
	}
	if data["secrets_configured"].(float64) != 2 || data["multi_tenant_support"] != true {
		t.Fatalf("config = %v", data)
	}
	previews, _ := data["secret_previews"].([]any)
	if len(previews) != 2 || previews[0] != "super-se..." {
		t.Fatalf("previews = %v", previews)
	}
}

func TestMetaHealth(t *testing.T) {
	h := newHandler(t, map[string]string{"WEBHOOK_SECRET": "alpha"})

	rec := do(t, h, stdhttp.MethodGet, "/meta/health", "", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := decodeEnvelopeData(t, rec.Body.Bytes())
	if data["ok"] != true || data["service"] != "gatehouse-api" {
		t.Fatalf("health = %v", data)
	}
}

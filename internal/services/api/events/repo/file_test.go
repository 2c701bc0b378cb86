package repo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gatehouse/internal/services/api/events/domain"
)

func newFileRepo(t *testing.T) *File {
	t.Helper()
	f, err := NewFile(filepath.Join(t.TempDir(), "data", "webhooks.json"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return f
}

func rec(typ string, n int) domain.Record {
	return domain.Record{
		Type:              typ,
		AssetName:         "CUSTOMER_DATA",
		Method:            "direct",
		SignatureVerified: true,
		VerifiedWith:      "alpha-se...",
		Payload:           json.RawMessage(`{"n":` + string(rune('0'+n)) + `}`),
		ReceivedAt:        time.Date(2026, 8, 30, 12, 0, n, 0, time.UTC),
	}
}

func TestFileAppendKeepsArrivalOrder(t *testing.T) {
	ctx := context.Background()
	f := newFileRepo(t)

	for i := 1; i <= 3; i++ {
		if err := f.Append(ctx, rec("DATA_ACCESS_REQUEST", i)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := f.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d want 3", len(got))
	}
	for i, r := range got {
		if r.ReceivedAt.Second() != i+1 {
			t.Fatalf("record %d out of order: %v", i, r.ReceivedAt)
		}
	}
}

func TestFileAllMissingFile(t *testing.T) {
	f := newFileRepo(t)
	got, err := f.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty log, got %d records", len(got))
	}
}

func TestFileCorruptedFileReadsEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFileRepo(t)
	if err := f.Append(ctx, rec("DATA_ACCESS_REQUEST", 1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := os.WriteFile(f.path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	got, err := f.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty log after corruption, got %d", len(got))
	}

	// appending after corruption starts a fresh log
	if err := f.Append(ctx, rec("DATA_ACCESS_REQUEST", 2)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ = f.All(ctx)
	if len(got) != 1 {
		t.Fatalf("len = %d want 1", len(got))
	}
}

func TestFileClear(t *testing.T) {
	ctx := context.Background()
	f := newFileRepo(t)

	// clearing a missing file is fine
	if err := f.Clear(ctx); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}

	if err := f.Append(ctx, rec("DATA_ACCESS_REQUEST", 1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := f.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ := f.All(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty log after Clear, got %d", len(got))
	}
}

func TestFilePayloadSurvivesVerbatim(t *testing.T) {
	ctx := context.Background()
	f := newFileRepo(t)

	payload := json.RawMessage(`{"type":"DATA_ACCESS_REQUEST","payload":{"requestor":"jordan"}}`)
	r := rec("DATA_ACCESS_REQUEST", 1)
	r.Payload = payload
	if err := f.Append(ctx, r); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, _ := f.All(ctx)
	var want, have any
	if err := json.Unmarshal(payload, &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(got[0].Payload, &have); err != nil {
		t.Fatalf("stored payload not JSON: %v", err)
	}
	wb, _ := json.Marshal(want)
	hb, _ := json.Marshal(have)
	if string(wb) != string(hb) {
		t.Fatalf("payload = %s want %s", hb, wb)
	}
}

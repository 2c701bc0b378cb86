package service

import (
	"context"
	"testing"
	"time"

	"gatehouse/internal/services/api/events/domain"
)

type memRepo struct {
	recs []domain.Record
}

func (m *memRepo) Append(_ context.Context, r domain.Record) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memRepo) All(_ context.Context) ([]domain.Record, error) {
	return append([]domain.Record(nil), m.recs...), nil
}

func (m *memRepo) Clear(_ context.Context) error {
	m.recs = nil
	return nil
}

func TestRecordStampsArrivalTime(t *testing.T) {
	mem := &memRepo{}
	s := New(mem)
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if err := s.Record(context.Background(), domain.Record{Type: "DATA_ACCESS_REQUEST"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := mem.recs[0].ReceivedAt; !got.Equal(fixed) {
		t.Fatalf("ReceivedAt = %v want %v", got, fixed)
	}
}

func TestRecordKeepsExistingStamp(t *testing.T) {
	mem := &memRepo{}
	s := New(mem)
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := s.Record(context.Background(), domain.Record{ReceivedAt: stamp}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := mem.recs[0].ReceivedAt; !got.Equal(stamp) {
		t.Fatalf("ReceivedAt = %v want %v", got, stamp)
	}
}

func TestLatest(t *testing.T) {
	mem := &memRepo{}
	s := New(mem)
	ctx := context.Background()

	if _, ok, err := s.Latest(ctx); err != nil || ok {
		t.Fatalf("Latest on empty log: ok=%v err=%v", ok, err)
	}

	_ = s.Record(ctx, domain.Record{Type: "first"})
	_ = s.Record(ctx, domain.Record{Type: "second"})

	rec, ok, err := s.Latest(ctx)
	if err != nil || !ok {
		t.Fatalf("Latest: ok=%v err=%v", ok, err)
	}
	if rec.Type != "second" {
		t.Fatalf("Latest type = %q want second", rec.Type)
	}
}

package repo

import (
	"context"

	"github.com/google/uuid"

	"gatehouse/internal/modkit/repokit"
	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/services/api/events/domain"
)

// PG stores the event log in postgres, seq keeps arrival order
type PG struct{ q repokit.Queryer }

// NewPG binds the postgres backend to a queryer
func NewPG(q repokit.Queryer) *PG { return &PG{q: repokit.RequireQueryer(q)} }

// EnsureSchema creates the events table when it does not exist yet
func (r *PG) EnsureSchema(ctx context.Context) error {
	const ddl = `
create table if not exists webhook_events (
seq bigint generated always as identity primary key,
id uuid not null,
type text not null,
asset_name text not null default '',
method text not null default '',
signature_verified boolean not null default false,
verified_with text not null default '',
payload jsonb not null,
received_at timestamptz not null
)
`
	if _, err := r.q.Exec(ctx, ddl); err != nil {
		return perr.Storagef("ensure webhook_events schema: %v", err)
	}
	return nil
}

// Append inserts one record
func (r *PG) Append(ctx context.Context, rec domain.Record) error {
	const sql = `
insert into webhook_events (id, type, asset_name, method, signature_verified, verified_with, payload, received_at)
values ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.q.Exec(ctx, sql,
		uuid.New(),
		rec.Type,
		rec.AssetName,
		rec.Method,
		rec.SignatureVerified,
		rec.VerifiedWith,
		[]byte(rec.Payload),
		rec.ReceivedAt,
	)
	if err != nil {
		return perr.Storagef("insert webhook event: %v", err)
	}
	return nil
}

// All returns every stored record in arrival order
func (r *PG) All(ctx context.Context) ([]domain.Record, error) {
	const sql = `
select type, asset_name, method, signature_verified, verified_with, payload, received_at
from webhook_events
order by seq asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, perr.Storagef("list webhook events: %v", err)
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		var rec domain.Record
		var payload []byte
		if err := rows.Scan(
			&rec.Type,
			&rec.AssetName,
			&rec.Method,
			&rec.SignatureVerified,
			&rec.VerifiedWith,
			&payload,
			&rec.ReceivedAt,
		); err != nil {
			return nil, perr.Storagef("scan webhook event: %v", err)
		}
		rec.Payload = payload
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Storagef("list webhook events: %v", err)
	}
	return out, nil
}

// Clear deletes every stored record
func (r *PG) Clear(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `delete from webhook_events`); err != nil {
		return perr.Storagef("clear webhook events: %v", err)
	}
	return nil
}

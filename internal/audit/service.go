package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Store persists events. Implemented by the pgx pool in production and by
// stubs in tests.
type Store interface {
	InsertEvent(ctx context.Context, e Event) error
	TimelineWindow(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]Event, error)
}

// Recorder writes audit events best-effort: a failed write is logged and
// counted, never returned to the operation that triggered it.
type Recorder struct {
	store    Store
	logger   *slog.Logger
	failures prometheus.Counter
}

// NewRecorder constructs a Recorder.
func NewRecorder(store Store, logger *slog.Logger, failures prometheus.Counter) *Recorder {
	return &Recorder{store: store, logger: logger, failures: failures}
}

// Record persists the event. Never fails the caller.
func (r *Recorder) Record(ctx context.Context, e Event) {
	if r == nil || r.store == nil {
		return
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := r.store.InsertEvent(ctx, e); err != nil {
		if r.failures != nil {
			r.failures.Inc()
		}
		r.logger.Error("audit event dropped",
			slog.String("type", e.Type),
			slog.String("tenant_id", e.TenantID.String()),
			slog.Any("error", err))
	}
}

// PgStore is the PostgreSQL-backed Store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore constructs a PgStore.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// InsertEvent appends one audit row.
func (s *PgStore) InsertEvent(ctx context.Context, e Event) error {
	if e.Type == "" || e.TenantID == uuid.Nil {
		return errors.New("audit event requires type and tenant")
	}
	payloadJSON, err := json.Marshal(e.Payload)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO audit_events (id, tenant_id, event_type, origin_type, origin_id, payload, created_by, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`,
		e.ID, e.TenantID, e.Type, e.OriginType, e.OriginID, payloadJSON, e.CreatedBy, e.CreatedAt)
	return err
}

// TimelineWindow returns events for a tenant, newest first.
func (s *PgStore) TimelineWindow(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, event_type, COALESCE(origin_type, ''), origin_id, payload, created_by, created_at
		FROM audit_events
		WHERE tenant_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []Event
	for rows.Next() {
		var e Event
		var payloadJSON []byte
		if err := rows.Scan(&e.ID, &e.TenantID, &e.Type, &e.OriginType, &e.OriginID, &payloadJSON, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(payloadJSON) > 0 {
			if err := json.Unmarshal(payloadJSON, &e.Payload); err != nil {
				return nil, err
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

const columns = "id, actor_id, action, entity_type, entity_id, details, created_at"

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new audit repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID         uuid.UUID `db:"id"`
	ActorID    uuid.UUID `db:"actor_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   uuid.UUID `db:"entity_id"`
	Details    []byte    `db:"details"`
	CreatedAt  time.Time `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit record and returns the persisted domain.AuditRecord.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	details := record.Details
	if details == nil {
		details = map[string]any{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal details: %w", err)
	}

	var out row
	err = pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out,
		`INSERT INTO audit_log (id, actor_id, action, entity_type, entity_id, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+columns,
		record.ID, record.ActorID, string(record.Action), string(record.EntityType), record.EntityID,
		detailsJSON, record.CreatedAt,
	)
	if err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}

	return toDomain(out)
}

// Log creates an audit record without returning it.
// Satisfies dispatch.auditSink.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	_, err := r.Create(ctx, record)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByEntity returns the change history for a specific entity, ordered by
// created_at DESC, limited to `limit` records.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	var rows []row
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows,
		`SELECT `+columns+` FROM audit_log
		 WHERE entity_type = $1 AND entity_id = $2
		 ORDER BY created_at DESC, id
		 LIMIT $3`,
		string(entityType), entityID, domain.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, rw := range rows {
		rec, err := toDomain(rw)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}

	return records, nil
}

// toDomain converts an audit_log row into a domain.AuditRecord.
func toDomain(r row) (domain.AuditRecord, error) {
	record := domain.AuditRecord{
		ID:         r.ID,
		ActorID:    r.ActorID,
		Action:     domain.AuditAction(r.Action),
		EntityType: domain.EntityType(r.EntityType),
		EntityID:   r.EntityID,
		CreatedAt:  r.CreatedAt,
	}

	if len(r.Details) > 0 {
		details := make(map[string]any)
		if err := json.Unmarshal(r.Details, &details); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal details: %w", r.ID, err)
		}
		record.Details = details
	}

	return record, nil
}

// Package audit implements the audit trail repository using PostgreSQL.
// The log is append-only; nothing ever updates or deletes a row.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const insertSQL = `
INSERT INTO audit_log (id, actor, entity_type, entity_uid, action, changes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Log appends an audit record. A zero ID and CreatedAt are filled in here so
// services can construct records with just the interesting fields.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	var changes []byte
	if record.Changes != nil {
		var err error
		changes, err = json.Marshal(record.Changes)
		if err != nil {
			return fmt.Errorf("audit_log marshal changes: %w", err)
		}
	}

	querier := postgres.QuerierOr(ctx, r.db)
	_, err := querier.Exec(ctx, insertSQL,
		record.ID, record.Actor, record.EntityType, record.EntityUID,
		record.Action, changes, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit_log: %w", err)
	}
	return nil
}

const getByEntitySQL = `
SELECT id, actor, entity_type, entity_uid, action, changes, created_at
FROM audit_log
WHERE entity_type = $1 AND entity_uid = $2
ORDER BY created_at DESC
LIMIT $3`

// GetByEntity returns the change history for one entity, newest first.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityUID int64, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	querier := postgres.QuerierOr(ctx, r.db)
	rows, err := querier.Query(ctx, getByEntitySQL, entityType, entityUID, limit)
	if err != nil {
		return nil, fmt.Errorf("get audit_log by entity: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

const getByActorSQL = `
SELECT id, actor, entity_type, entity_uid, action, changes, created_at
FROM audit_log
WHERE actor = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

// GetByActor returns records written by one caller, newest first.
func (r *Repo) GetByActor(ctx context.Context, actor string, limit, offset int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	querier := postgres.QuerierOr(ctx, r.db)
	rows, err := querier.Query(ctx, getByActorSQL, actor, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get audit_log by actor: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]domain.AuditRecord, error) {
	var records []domain.AuditRecord
	for rows.Next() {
		var (
			rec     domain.AuditRecord
			changes []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Actor, &rec.EntityType, &rec.EntityUID, &rec.Action, &changes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit_log row: %w", err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &rec.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal audit_log changes: %w", err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read audit_log rows: %w", err)
	}
	return records, nil
}

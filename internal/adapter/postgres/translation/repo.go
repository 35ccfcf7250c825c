// Package translation implements the Translation repository using PostgreSQL.
// The reverse-lookup queries (sentence -> dependent translations) back the
// cascade-deactivation traversal and run over partial indexes on
// source_id/target_id.
package translation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/version"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// Repo provides translation persistence backed by PostgreSQL.
type Repo struct {
	*version.Base[domain.Translation]
	db postgres.Querier
}

// New creates a translation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{
		Base: version.New(db, version.Config{
			Entity:   "translation",
			Table:    "translation",
			IDColumn: "id",
			Seq:      "translation_id_seq",
			Columns: []string{
				"source_id", "target_id", "direction_uid", "method_uid",
				"method_version", "is_synthetic",
			},
		}, func(t domain.Translation) []any {
			return []any{
				t.SourceID, t.TargetID, t.DirectionUID, t.MethodUID,
				t.MethodVersion, t.IsSynthetic,
			}
		}),
		db: db,
	}
}

const translationColumns = `id AS uid, version, is_active, created_at, last_updated_on,
	source_id, target_id, direction_uid, method_uid, method_version, is_synthetic`

const listBySentenceSQL = `SELECT ` + translationColumns + `
	FROM translation
	WHERE is_active AND (source_id = $1 OR target_id = $1)
	ORDER BY id ASC`

// ListActiveBySentence returns every active translation with the sentence on
// either end. This is the dependency set consulted before deactivating a
// sentence.
func (r *Repo) ListActiveBySentence(ctx context.Context, sentenceID int64) ([]domain.Translation, error) {
	querier := postgres.QuerierOr(ctx, r.db)

	rows, err := querier.Query(ctx, listBySentenceSQL, sentenceID)
	if err != nil {
		return nil, fmt.Errorf("list translations by sentence: %w", err)
	}
	defer rows.Close()

	translations, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Translation])
	if err != nil {
		return nil, fmt.Errorf("list translations by sentence: %w", err)
	}
	return translations, nil
}

// CountActiveBySentence returns how many active translations reference the
// sentence on either end.
func (r *Repo) CountActiveBySentence(ctx context.Context, sentenceID int64) (int, error) {
	querier := postgres.QuerierOr(ctx, r.db)

	var count int
	err := querier.QueryRow(ctx,
		`SELECT COUNT(*) FROM translation WHERE is_active AND (source_id = $1 OR target_id = $1)`,
		sentenceID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count translations by sentence: %w", err)
	}
	return count, nil
}

const findActivePairSQL = `SELECT ` + translationColumns + `
	FROM translation
	WHERE is_active
	  AND source_id = $1 AND target_id = $2
	  AND direction_uid = $3 AND method_uid = $4
	  AND method_version IS NOT DISTINCT FROM $5
	ORDER BY id ASC
	LIMIT 1`

// FindActivePair returns the active translation already linking the pair
// with the same direction, method and method version label, if any. Ingest
// uses it to keep bulk loads idempotent. The same method re-run under a
// different version label does not match; that run records its own link.
func (r *Repo) FindActivePair(ctx context.Context, sourceID, targetID, directionUID, methodUID int64, methodVersion *string) (*domain.Translation, error) {
	querier := postgres.QuerierOr(ctx, r.db)

	rows, err := querier.Query(ctx, findActivePairSQL, sourceID, targetID, directionUID, methodUID, methodVersion)
	if err != nil {
		return nil, fmt.Errorf("find translation pair: %w", err)
	}

	tr, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[domain.Translation])
	if err != nil {
		return nil, postgres.MapError(err, "translation", 0)
	}
	return &tr, nil
}

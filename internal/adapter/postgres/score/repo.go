// Package score implements the TranslationMetric repository using PostgreSQL.
// Score versions are scoped to the (translation, metric) pair; the
// translation_metric_triple_idx unique index turns a concurrent double-add
// into domain.ErrDuplicateVersion instead of a second committed row.
package score

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/version"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// Repo provides translation score persistence backed by PostgreSQL.
type Repo struct {
	*version.Base[domain.TranslationScore]
	db postgres.Querier
}

// New creates a score repository.
func New(db postgres.Querier) *Repo {
	return &Repo{
		Base: version.New(db, version.Config{
			Entity:   "translation_metric",
			Table:    "translation_metric",
			IDColumn: "id",
			Seq:      "translation_metric_id_seq",
			Columns:  []string{"translation_id", "metric_uid", "score_num", "score_txt"},
		}, func(s domain.TranslationScore) []any {
			return []any{s.TranslationID, s.MetricUID, s.ScoreNum, s.ScoreTxt}
		}),
		db: db,
	}
}

const scoreColumns = `id AS uid, version, is_active, created_at, last_updated_on,
	translation_id, metric_uid, score_num, score_txt`

const createPairSQL = `INSERT INTO translation_metric
	(id, version, is_active, translation_id, metric_uid, score_num, score_txt)
	SELECT COALESCE(MAX(id), nextval('translation_metric_id_seq')),
	       COALESCE(MAX(version), 0) + 1,
	       TRUE, $1, $2, $3, $4
	FROM translation_metric
	WHERE translation_id = $1 AND metric_uid = $2
	RETURNING ` + scoreColumns

// Create records a score version for a (translation, metric) pair. Versions
// are pair-scoped: a pair whose history was fully deactivated is revived
// under its existing identity with MAX(version)+1, never a second version 1,
// so the triple unique index only fires on a genuine concurrent double-add
// (mapped to domain.ErrDuplicateVersion).
func (r *Repo) Create(ctx context.Context, s domain.TranslationScore) (*domain.TranslationScore, error) {
	querier := postgres.QuerierOr(ctx, r.db)

	rows, err := querier.Query(ctx, createPairSQL,
		s.TranslationID, s.MetricUID, s.ScoreNum, s.ScoreTxt)
	if err != nil {
		return nil, postgres.MapError(err, "translation_metric", s.TranslationID)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[domain.TranslationScore])
	if err != nil {
		return nil, postgres.MapError(err, "translation_metric", s.TranslationID)
	}
	return &created, nil
}

const listByTranslationSQL = `SELECT ` + scoreColumns + `
	FROM translation_metric
	WHERE is_active AND translation_id = $1
	ORDER BY metric_uid ASC`

// ListActiveByTranslation returns all active scores attached to a translation.
func (r *Repo) ListActiveByTranslation(ctx context.Context, translationID int64) ([]domain.TranslationScore, error) {
	querier := postgres.QuerierOr(ctx, r.db)

	rows, err := querier.Query(ctx, listByTranslationSQL, translationID)
	if err != nil {
		return nil, fmt.Errorf("list scores by translation: %w", err)
	}
	defer rows.Close()

	scores, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.TranslationScore])
	if err != nil {
		return nil, fmt.Errorf("list scores by translation: %w", err)
	}
	return scores, nil
}

const pairHistorySQL = `SELECT ` + scoreColumns + `
	FROM translation_metric
	WHERE translation_id = $1 AND metric_uid = $2
	ORDER BY version ASC`

// ListPairHistory returns every score version recorded for a
// (translation, metric) pair, oldest first.
func (r *Repo) ListPairHistory(ctx context.Context, translationID, metricUID int64) ([]domain.TranslationScore, error) {
	querier := postgres.QuerierOr(ctx, r.db)

	rows, err := querier.Query(ctx, pairHistorySQL, translationID, metricUID)
	if err != nil {
		return nil, fmt.Errorf("list score pair history: %w", err)
	}
	defer rows.Close()

	history, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.TranslationScore])
	if err != nil {
		return nil, fmt.Errorf("list score pair history: %w", err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("score for translation %d metric %d: %w", translationID, metricUID, domain.ErrNotFound)
	}
	return history, nil
}

// GetActivePair returns the active score for a (translation, metric) pair.
func (r *Repo) GetActivePair(ctx context.Context, translationID, metricUID int64) (*domain.TranslationScore, error) {
	querier := postgres.QuerierOr(ctx, r.db)

	query := `SELECT ` + scoreColumns + `
		FROM translation_metric
		WHERE is_active AND translation_id = $1 AND metric_uid = $2`

	rows, err := querier.Query(ctx, query, translationID, metricUID)
	if err != nil {
		return nil, fmt.Errorf("get score pair: %w", err)
	}

	s, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[domain.TranslationScore])
	if err != nil {
		return nil, postgres.MapError(err, "translation_metric", translationID)
	}
	return &s, nil
}

// Package sentence implements the Sentence repository using PostgreSQL.
// Versioning goes through the shared versioned base; search runs against a
// stored tsvector column plus a trigram-friendly ILIKE fallback, both over
// the normalized text.
package sentence

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/version"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Repo provides sentence persistence backed by PostgreSQL.
type Repo struct {
	*version.Base[domain.Sentence]
	db postgres.Querier
	sb sq.StatementBuilderType
}

// New creates a sentence repository.
func New(db postgres.Querier) *Repo {
	return &Repo{
		Base: version.New(db, version.Config{
			Entity:   "sentence",
			Table:    "sentence",
			IDColumn: "id",
			Seq:      "sentence_id_seq",
			Columns: []string{
				"text", "text_normalized", "content_hash",
				"language_uid", "source_uid", "domain_uid",
				"status", "duplicate_of",
			},
		}, func(s domain.Sentence) []any {
			return []any{
				s.Text, s.TextNormalized, s.ContentHash,
				s.LanguageUID, s.SourceUID, s.DomainUID,
				s.Status, s.DuplicateOf,
			}
		}),
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const sentenceColumns = `id AS uid, version, is_active, created_at, last_updated_on,
	text, text_normalized, content_hash, language_uid, source_uid, domain_uid,
	status, duplicate_of`

// FindActiveByHash returns the active sentence in the given language whose
// normalized content hash matches, or domain.ErrNotFound. Ingest uses it for
// idempotent inserts.
func (r *Repo) FindActiveByHash(ctx context.Context, languageUID int64, hash string) (*domain.Sentence, error) {
	querier := postgres.QuerierOr(ctx, r.db)

	query := `SELECT ` + sentenceColumns + `
		FROM sentence
		WHERE language_uid = $1 AND content_hash = $2 AND is_active AND status = 'active'
		ORDER BY id ASC
		LIMIT 1`

	rows, err := querier.Query(ctx, query, languageUID, hash)
	if err != nil {
		return nil, fmt.Errorf("find sentence by hash: %w", err)
	}

	s, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[domain.Sentence])
	if err != nil {
		return nil, postgres.MapError(err, "sentence", 0)
	}
	return &s, nil
}

// Search returns active, non-duplicate sentences matching the filter,
// ordered by id. The free-text term is matched against the tsvector index
// first and the normalized text as an ILIKE fallback, so both lexeme and
// substring queries work.
func (r *Repo) Search(ctx context.Context, filter domain.SentenceFilter) ([]domain.Sentence, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	q := r.sb.
		Select(
			"id AS uid", "version", "is_active", "created_at", "last_updated_on",
			"text", "text_normalized", "content_hash",
			"language_uid", "source_uid", "domain_uid", "status", "duplicate_of",
		).
		From("sentence").
		Where("is_active").
		Where(sq.Eq{"status": domain.SentenceStatusActive}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if filter.LanguageUID != nil {
		q = q.Where(sq.Eq{"language_uid": *filter.LanguageUID})
	}
	if filter.DomainUID != nil {
		q = q.Where(sq.Eq{"domain_uid": *filter.DomainUID})
	}
	if filter.SourceUID != nil {
		q = q.Where(sq.Eq{"source_uid": *filter.SourceUID})
	}
	if filter.Search != nil && *filter.Search != "" {
		term := domain.NormalizeText(*filter.Search)
		q = q.Where(
			"(search_vector @@ websearch_to_tsquery('simple', ?) OR text_normalized LIKE '%' || ? || '%')",
			term, escapeLike(term),
		)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sentence search: %w", err)
	}

	rows, err := postgres.QuerierOr(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search sentences: %w", err)
	}
	defer rows.Close()

	sentences, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Sentence])
	if err != nil {
		return nil, fmt.Errorf("search sentences: %w", err)
	}
	return sentences, nil
}

const duplicateGroupsSQL = `
SELECT s.id, o.original_id
FROM sentence s
JOIN (
    SELECT language_uid, content_hash, MIN(id) AS original_id
    FROM sentence
    WHERE is_active AND status = 'active'
    GROUP BY language_uid, content_hash
    HAVING COUNT(*) > 1
) o USING (language_uid, content_hash)
WHERE s.is_active AND s.status = 'active' AND s.id <> o.original_id
ORDER BY s.id`

// FindDuplicatePairs returns every active sentence whose normalized content
// matches an earlier active sentence in the same language. The earliest id
// in each group is the original.
func (r *Repo) FindDuplicatePairs(ctx context.Context) ([]domain.DuplicatePair, error) {
	querier := postgres.QuerierOr(ctx, r.db)

	rows, err := querier.Query(ctx, duplicateGroupsSQL)
	if err != nil {
		return nil, fmt.Errorf("find duplicate pairs: %w", err)
	}
	defer rows.Close()

	var pairs []domain.DuplicatePair
	for rows.Next() {
		var p domain.DuplicatePair
		if err := rows.Scan(&p.ID, &p.OriginalID); err != nil {
			return nil, fmt.Errorf("scan duplicate pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find duplicate pairs: %w", err)
	}
	return pairs, nil
}

// likeEscaper neutralizes the LIKE metacharacters so a search term matches
// itself literally. Postgres treats backslash as the default escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

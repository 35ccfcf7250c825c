// Package version implements the identity/version storage pattern shared by
// every catalog and corpus table: a stable uid, a monotonically growing
// version counter, and exactly one active version per uid.
//
// The one-active invariant is held two ways: mutators lock the active row
// with FOR UPDATE so writers to the same uid serialize, and each table
// carries a partial unique index (<table>_one_active_idx) as a structural
// backstop — a racing double-activate aborts instead of committing.
package version

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// Config describes one versioned table.
type Config struct {
	// Entity is the name used in error messages ("language", "sentence").
	Entity string
	// Table is the SQL table name.
	Table string
	// IDColumn is the stable identity column, "uid" for catalogs and "id"
	// for corpus tables. Non-uid columns are aliased to uid in selects so
	// rows scan into domain.VersionMeta either way.
	IDColumn string
	// Seq is the sequence that mints new identities.
	Seq string
	// Columns are the payload columns, excluding identity/version/audit fields.
	Columns []string
}

// Base is a generic repository over one versioned table. T is the domain
// struct embedding domain.VersionMeta; values extracts payload column values
// in Config.Columns order.
type Base[T any] struct {
	db     postgres.Querier
	cfg    Config
	values func(T) []any
	sb     sq.StatementBuilderType
}

// New creates a Base repository. It panics on a malformed Config because
// that is a programming error, not a runtime condition.
func New[T any](db postgres.Querier, cfg Config, values func(T) []any) *Base[T] {
	if cfg.Entity == "" || cfg.Table == "" || cfg.IDColumn == "" || cfg.Seq == "" {
		panic(fmt.Sprintf("version.New: incomplete config for table %q", cfg.Table))
	}
	if len(cfg.Columns) == 0 {
		panic(fmt.Sprintf("version.New: no payload columns for table %q", cfg.Table))
	}
	return &Base[T]{
		db:     db,
		cfg:    cfg,
		values: values,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// selectColumns returns the full select list with the identity column
// aliased to uid.
func (b *Base[T]) selectColumns() []string {
	id := b.cfg.IDColumn
	if id != "uid" {
		id = id + " AS uid"
	}
	cols := []string{id, "version", "is_active", "created_at", "last_updated_on"}
	return append(cols, b.cfg.Columns...)
}

// Create inserts version 1 of a brand-new identity and returns the persisted row.
func (b *Base[T]) Create(ctx context.Context, payload T) (*T, error) {
	insertCols := append([]string{b.cfg.IDColumn, "version", "is_active"}, b.cfg.Columns...)
	insertVals := append([]any{sq.Expr(fmt.Sprintf("nextval('%s')", b.cfg.Seq)), 1, true}, b.values(payload)...)

	query, args, err := b.sb.
		Insert(b.cfg.Table).
		Columns(insertCols...).
		Values(insertVals...).
		Suffix("RETURNING " + joinColumns(b.selectColumns())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create %s: %w", b.cfg.Entity, err)
	}

	return b.queryOne(ctx, query, args, 0)
}

// Revise writes a new version for uid and flips the previous active row
// inactive. It must run inside a transaction (TxManager.RunInTx): the active
// row is locked with FOR UPDATE, so concurrent revisions of the same uid
// serialize, and a failure after the flip rolls the flip back.
// Returns domain.ErrNotFound when uid has no active version.
func (b *Base[T]) Revise(ctx context.Context, uid int64, payload T) (*T, error) {
	querier := postgres.QuerierOr(ctx, b.db)

	var current int
	lockSQL := fmt.Sprintf(
		"SELECT version FROM %s WHERE %s = $1 AND is_active FOR UPDATE",
		b.cfg.Table, b.cfg.IDColumn,
	)
	if err := querier.QueryRow(ctx, lockSQL, uid).Scan(&current); err != nil {
		return nil, postgres.MapError(err, b.cfg.Entity, uid)
	}

	flipSQL := fmt.Sprintf(
		"UPDATE %s SET is_active = FALSE, last_updated_on = now() WHERE %s = $1 AND version = $2",
		b.cfg.Table, b.cfg.IDColumn,
	)
	if _, err := querier.Exec(ctx, flipSQL, uid, current); err != nil {
		return nil, postgres.MapError(err, b.cfg.Entity, uid)
	}

	insertCols := append([]string{b.cfg.IDColumn, "version", "is_active"}, b.cfg.Columns...)
	insertVals := append([]any{uid, current + 1, true}, b.values(payload)...)

	query, args, err := b.sb.
		Insert(b.cfg.Table).
		Columns(insertCols...).
		Values(insertVals...).
		Suffix("RETURNING " + joinColumns(b.selectColumns())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build revise %s: %w", b.cfg.Entity, err)
	}

	return b.queryOne(ctx, query, args, uid)
}

// Deactivate flips the active version of uid inactive without a replacement.
// History stays readable; only the active flag changes.
// Returns domain.ErrNotFound when uid has no active version.
func (b *Base[T]) Deactivate(ctx context.Context, uid int64) error {
	querier := postgres.QuerierOr(ctx, b.db)

	deactivateSQL := fmt.Sprintf(
		"UPDATE %s SET is_active = FALSE, last_updated_on = now() WHERE %s = $1 AND is_active",
		b.cfg.Table, b.cfg.IDColumn,
	)
	tag, err := querier.Exec(ctx, deactivateSQL, uid)
	if err != nil {
		return postgres.MapError(err, b.cfg.Entity, uid)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", b.cfg.Entity, uid, domain.ErrNotFound)
	}
	return nil
}

// GetActive returns the currently active version of uid.
func (b *Base[T]) GetActive(ctx context.Context, uid int64) (*T, error) {
	query, args, err := b.sb.
		Select(b.selectColumns()...).
		From(b.cfg.Table).
		Where(sq.Eq{b.cfg.IDColumn: uid}).
		Where("is_active").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get active %s: %w", b.cfg.Entity, err)
	}

	return b.queryOne(ctx, query, args, uid)
}

// GetVersion returns one specific historical version of uid.
func (b *Base[T]) GetVersion(ctx context.Context, uid int64, version int) (*T, error) {
	query, args, err := b.sb.
		Select(b.selectColumns()...).
		From(b.cfg.Table).
		Where(sq.Eq{b.cfg.IDColumn: uid, "version": version}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get version %s: %w", b.cfg.Entity, err)
	}

	return b.queryOne(ctx, query, args, uid)
}

// ListHistory returns every version of uid, oldest first.
// Returns domain.ErrNotFound when uid has no versions at all.
func (b *Base[T]) ListHistory(ctx context.Context, uid int64) ([]T, error) {
	query, args, err := b.sb.
		Select(b.selectColumns()...).
		From(b.cfg.Table).
		Where(sq.Eq{b.cfg.IDColumn: uid}).
		OrderBy("version ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history %s: %w", b.cfg.Entity, err)
	}

	rows, err := postgres.QuerierOr(ctx, b.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, b.cfg.Entity, uid)
	}
	defer rows.Close()

	history, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, postgres.MapError(err, b.cfg.Entity, uid)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%s %d: %w", b.cfg.Entity, uid, domain.ErrNotFound)
	}
	return history, nil
}

// GetActiveBy returns the active row matching column = value, most recently
// created first when several match. Used for code/name lookups.
func (b *Base[T]) GetActiveBy(ctx context.Context, column string, value any) (*T, error) {
	query, args, err := b.sb.
		Select(b.selectColumns()...).
		From(b.cfg.Table).
		Where(sq.Eq{column: value}).
		Where("is_active").
		OrderBy(b.cfg.IDColumn + " DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lookup %s by %s: %w", b.cfg.Entity, column, err)
	}

	return b.queryOne(ctx, query, args, 0)
}

// ListActive returns all active rows ordered by identity.
func (b *Base[T]) ListActive(ctx context.Context) ([]T, error) {
	query, args, err := b.sb.
		Select(b.selectColumns()...).
		From(b.cfg.Table).
		Where("is_active").
		OrderBy(b.cfg.IDColumn + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", b.cfg.Entity, err)
	}

	rows, err := postgres.QuerierOr(ctx, b.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", b.cfg.Entity, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", b.cfg.Entity, err)
	}
	return items, nil
}

// CountActiveBy returns how many active rows have column = value. The
// integrity layer uses it for dependency checks before deactivation.
func (b *Base[T]) CountActiveBy(ctx context.Context, column string, value any) (int, error) {
	query, args, err := b.sb.
		Select("COUNT(*)").
		From(b.cfg.Table).
		Where(sq.Eq{column: value}).
		Where("is_active").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s by %s: %w", b.cfg.Entity, column, err)
	}

	var count int
	if err := postgres.QuerierOr(ctx, b.db).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s by %s: %w", b.cfg.Entity, column, err)
	}
	return count, nil
}

func (b *Base[T]) queryOne(ctx context.Context, query string, args []any, uid int64) (*T, error) {
	rows, err := postgres.QuerierOr(ctx, b.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, b.cfg.Entity, uid)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, postgres.MapError(err, b.cfg.Entity, uid)
	}
	return &item, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

// Package catalog implements the six reference-catalog repositories
// (language, domain, source, method, metric, direction) as instantiations
// of the versioned base repository.
package catalog

import (
	"context"

	postgres "github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/version"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// LanguageRepo persists Language catalog entries.
type LanguageRepo struct {
	*version.Base[domain.Language]
}

// NewLanguageRepo creates a LanguageRepo.
func NewLanguageRepo(db postgres.Querier) *LanguageRepo {
	return &LanguageRepo{Base: version.New(db, version.Config{
		Entity:   "language",
		Table:    "language",
		IDColumn: "uid",
		Seq:      "language_uid_seq",
		Columns:  []string{"code", "dialect", "name"},
	}, func(l domain.Language) []any {
		return []any{l.Code, l.Dialect, l.Name}
	})}
}

// GetByCode returns the active language with the given ISO code.
func (r *LanguageRepo) GetByCode(ctx context.Context, code string) (*domain.Language, error) {
	return r.GetActiveBy(ctx, "code", code)
}

// DomainRepo persists subject-domain catalog entries.
type DomainRepo struct {
	*version.Base[domain.TextDomain]
}

// NewDomainRepo creates a DomainRepo.
func NewDomainRepo(db postgres.Querier) *DomainRepo {
	return &DomainRepo{Base: version.New(db, version.Config{
		Entity:   "domain",
		Table:    "domain",
		IDColumn: "uid",
		Seq:      "domain_uid_seq",
		Columns:  []string{"code", "description"},
	}, func(d domain.TextDomain) []any {
		return []any{d.Code, d.Description}
	})}
}

// GetByCode returns the active domain with the given code.
func (r *DomainRepo) GetByCode(ctx context.Context, code string) (*domain.TextDomain, error) {
	return r.GetActiveBy(ctx, "code", code)
}

// SourceRepo persists provenance source catalog entries.
type SourceRepo struct {
	*version.Base[domain.Source]
}

// NewSourceRepo creates a SourceRepo.
func NewSourceRepo(db postgres.Querier) *SourceRepo {
	return &SourceRepo{Base: version.New(db, version.Config{
		Entity:   "source",
		Table:    "source",
		IDColumn: "uid",
		Seq:      "source_uid_seq",
		Columns:  []string{"type", "name", "author", "url", "metadata"},
	}, func(s domain.Source) []any {
		meta := s.Metadata
		if meta == nil {
			meta = map[string]any{}
		}
		return []any{s.Type, s.Name, s.Author, s.URL, meta}
	})}
}

// GetByName returns the active source with the given name. Sources are
// looked up by name during ingest because names are the stable handle
// across re-runs.
func (r *SourceRepo) GetByName(ctx context.Context, name string) (*domain.Source, error) {
	return r.GetActiveBy(ctx, "name", name)
}

// MethodRepo persists translation-method catalog entries.
type MethodRepo struct {
	*version.Base[domain.Method]
}

// NewMethodRepo creates a MethodRepo.
func NewMethodRepo(db postgres.Querier) *MethodRepo {
	return &MethodRepo{Base: version.New(db, version.Config{
		Entity:   "method",
		Table:    "method_lookup",
		IDColumn: "uid",
		Seq:      "method_lookup_uid_seq",
		Columns:  []string{"name", "description", "provider"},
	}, func(m domain.Method) []any {
		return []any{m.Name, m.Description, m.Provider}
	})}
}

// GetByName returns the active method with the given name.
func (r *MethodRepo) GetByName(ctx context.Context, name string) (*domain.Method, error) {
	return r.GetActiveBy(ctx, "name", name)
}

// MetricRepo persists scoring-metric catalog entries.
type MetricRepo struct {
	*version.Base[domain.Metric]
}

// NewMetricRepo creates a MetricRepo.
func NewMetricRepo(db postgres.Querier) *MetricRepo {
	return &MetricRepo{Base: version.New(db, version.Config{
		Entity:   "metric",
		Table:    "metric_lookup",
		IDColumn: "uid",
		Seq:      "metric_lookup_uid_seq",
		Columns:  []string{"name", "description"},
	}, func(m domain.Metric) []any {
		return []any{m.Name, m.Description}
	})}
}

// GetByName returns the active metric with the given name.
func (r *MetricRepo) GetByName(ctx context.Context, name string) (*domain.Metric, error) {
	return r.GetActiveBy(ctx, "name", name)
}

// DirectionRepo persists translation-direction catalog entries.
type DirectionRepo struct {
	*version.Base[domain.Direction]
}

// NewDirectionRepo creates a DirectionRepo.
func NewDirectionRepo(db postgres.Querier) *DirectionRepo {
	return &DirectionRepo{Base: version.New(db, version.Config{
		Entity:   "direction",
		Table:    "direction_lookup",
		IDColumn: "uid",
		Seq:      "direction_lookup_uid_seq",
		Columns:  []string{"code", "source_lang_uid", "target_lang_uid", "description"},
	}, func(d domain.Direction) []any {
		return []any{d.Code, d.SourceLangUID, d.TargetLangUID, d.Description}
	})}
}

// GetByCode returns the active direction with the given code.
func (r *DirectionRepo) GetByCode(ctx context.Context, code string) (*domain.Direction, error) {
	return r.GetActiveBy(ctx, "code", code)
}

// CountActiveByLanguage returns how many active directions reference the
// language uid on either end.
func (r *DirectionRepo) CountActiveByLanguage(ctx context.Context, languageUID int64) (int, error) {
	src, err := r.CountActiveBy(ctx, "source_lang_uid", languageUID)
	if err != nil {
		return 0, err
	}
	tgt, err := r.CountActiveBy(ctx, "target_lang_uid", languageUID)
	if err != nil {
		return 0, err
	}
	return src + tgt, nil
}

package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/internal/service/refcatalog"
)

// getOrCreate looks an entity up by its natural key and creates it when
// absent. A concurrent creator winning the race surfaces as ErrConflict;
// one retry of the lookup resolves it.
func getOrCreate[T any](ctx context.Context, lookup func(context.Context) (*T, error), create func(context.Context) (*T, error)) (*T, error) {
	item, err := lookup(ctx)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	item, err = create(ctx)
	if err == nil {
		return item, nil
	}
	if errors.Is(err, domain.ErrConflict) {
		return lookup(ctx)
	}
	return nil, err
}

// EnsureLanguage returns the active language with the given code, creating
// it when missing.
func (s *Service) EnsureLanguage(ctx context.Context, code, name string) (*domain.Language, error) {
	if name == "" {
		name = code
	}
	return getOrCreate(ctx,
		func(ctx context.Context) (*domain.Language, error) {
			return s.catalog.LookupLanguage(ctx, code)
		},
		func(ctx context.Context) (*domain.Language, error) {
			return s.catalog.CreateLanguage(ctx, refcatalog.LanguageInput{Code: code, Name: name})
		},
	)
}

// EnsureDomain returns the active text domain with the given code, creating
// it when missing.
func (s *Service) EnsureDomain(ctx context.Context, code string) (*domain.TextDomain, error) {
	return getOrCreate(ctx,
		func(ctx context.Context) (*domain.TextDomain, error) {
			return s.catalog.LookupDomain(ctx, code)
		},
		func(ctx context.Context) (*domain.TextDomain, error) {
			return s.catalog.CreateDomain(ctx, refcatalog.DomainInput{Code: code})
		},
	)
}

// EnsureSource returns the active source with the given name, creating it
// when missing.
func (s *Service) EnsureSource(ctx context.Context, sourceType, name string, metadata map[string]any) (*domain.Source, error) {
	return getOrCreate(ctx,
		func(ctx context.Context) (*domain.Source, error) {
			return s.catalog.LookupSource(ctx, name)
		},
		func(ctx context.Context) (*domain.Source, error) {
			return s.catalog.CreateSource(ctx, refcatalog.SourceInput{Type: sourceType, Name: name, Metadata: metadata})
		},
	)
}

// EnsureMethod returns the active method with the given name, creating it
// when missing.
func (s *Service) EnsureMethod(ctx context.Context, name string, provider *string) (*domain.Method, error) {
	return getOrCreate(ctx,
		func(ctx context.Context) (*domain.Method, error) {
			return s.catalog.LookupMethod(ctx, name)
		},
		func(ctx context.Context) (*domain.Method, error) {
			return s.catalog.CreateMethod(ctx, refcatalog.MethodInput{Name: name, Provider: provider})
		},
	)
}

// EnsureMetric returns the active metric with the given name, creating it
// when missing.
func (s *Service) EnsureMetric(ctx context.Context, name string) (*domain.Metric, error) {
	return getOrCreate(ctx,
		func(ctx context.Context) (*domain.Metric, error) {
			return s.catalog.LookupMetric(ctx, name)
		},
		func(ctx context.Context) (*domain.Metric, error) {
			return s.catalog.CreateMetric(ctx, refcatalog.MetricInput{Name: name})
		},
	)
}

// EnsureDirection returns the active direction for the given language codes,
// creating the direction (and the languages) when missing. The direction
// code follows the <src>2<tgt> convention.
func (s *Service) EnsureDirection(ctx context.Context, sourceCode, targetCode string) (*domain.Direction, error) {
	source, err := s.EnsureLanguage(ctx, sourceCode, "")
	if err != nil {
		return nil, fmt.Errorf("ensure source language %q: %w", sourceCode, err)
	}
	target, err := s.EnsureLanguage(ctx, targetCode, "")
	if err != nil {
		return nil, fmt.Errorf("ensure target language %q: %w", targetCode, err)
	}

	code := sourceCode + "2" + targetCode
	return getOrCreate(ctx,
		func(ctx context.Context) (*domain.Direction, error) {
			return s.catalog.LookupDirection(ctx, code)
		},
		func(ctx context.Context) (*domain.Direction, error) {
			return s.catalog.CreateDirection(ctx, refcatalog.DirectionInput{
				Code:          code,
				SourceLangUID: source.UID,
				TargetLangUID: target.UID,
			})
		},
	)
}

package refcatalog

import (
	"context"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// CreateSource registers a new source and returns version 1.
func (s *Service) CreateSource(ctx context.Context, input SourceInput) (*domain.Source, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Source{
		Type:     input.Type,
		Name:     input.Name,
		Author:   input.Author,
		URL:      input.URL,
		Metadata: input.Metadata,
	}
	return createOne(ctx, s, s.sources, domain.EntityTypeSource, payload, map[string]any{
		"type": input.Type,
		"name": input.Name,
	})
}

// ReviseSource appends a new version for an existing source identity.
func (s *Service) ReviseSource(ctx context.Context, uid int64, input SourceInput) (*domain.Source, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Source{
		Type:     input.Type,
		Name:     input.Name,
		Author:   input.Author,
		URL:      input.URL,
		Metadata: input.Metadata,
	}
	return reviseOne(ctx, s, s.sources, domain.EntityTypeSource, uid, payload, map[string]any{
		"type": input.Type,
		"name": input.Name,
	})
}

// DeactivateSource retires a source. It refuses while any active sentence
// still references the identity.
func (s *Service) DeactivateSource(ctx context.Context, uid int64) error {
	return deactivateOne(ctx, s, s.sources, domain.EntityTypeSource, uid, func(txCtx context.Context) error {
		count, err := s.sentences.CountActiveBy(txCtx, "source_uid", uid)
		if err != nil {
			return err
		}
		return dependentsBlock(count, "source", uid, "sentence")
	})
}

// GetSource returns the active version of a source.
func (s *Service) GetSource(ctx context.Context, uid int64) (*domain.Source, error) {
	return s.sources.GetActive(ctx, uid)
}

// GetSourceVersion returns one historical version of a source.
func (s *Service) GetSourceVersion(ctx context.Context, uid int64, version int) (*domain.Source, error) {
	return s.sources.GetVersion(ctx, uid, version)
}

// GetSourceHistory returns every version of a source, oldest first.
func (s *Service) GetSourceHistory(ctx context.Context, uid int64) ([]domain.Source, error) {
	return s.sources.ListHistory(ctx, uid)
}

// LookupSource finds the active source with the given name.
func (s *Service) LookupSource(ctx context.Context, name string) (*domain.Source, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	return s.sources.GetActiveBy(ctx, "name", name)
}

// ListSources returns all active sources.
func (s *Service) ListSources(ctx context.Context) ([]domain.Source, error) {
	return s.sources.ListActive(ctx)
}

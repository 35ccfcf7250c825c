package refcatalog

import (
	"context"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// CreateLanguage registers a new language and returns version 1.
func (s *Service) CreateLanguage(ctx context.Context, input LanguageInput) (*domain.Language, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Language{Code: input.Code, Dialect: input.Dialect, Name: input.Name}
	return createOne(ctx, s, s.languages, domain.EntityTypeLanguage, payload, map[string]any{
		"code": input.Code,
		"name": input.Name,
	})
}

// ReviseLanguage appends a new version for an existing language identity.
func (s *Service) ReviseLanguage(ctx context.Context, uid int64, input LanguageInput) (*domain.Language, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Language{Code: input.Code, Dialect: input.Dialect, Name: input.Name}
	return reviseOne(ctx, s, s.languages, domain.EntityTypeLanguage, uid, payload, map[string]any{
		"code": input.Code,
		"name": input.Name,
	})
}

// DeactivateLanguage retires a language. It refuses while any active
// direction or sentence still references the identity.
func (s *Service) DeactivateLanguage(ctx context.Context, uid int64) error {
	return deactivateOne(ctx, s, s.languages, domain.EntityTypeLanguage, uid, func(txCtx context.Context) error {
		dirCount, err := s.directions.CountActiveByLanguage(txCtx, uid)
		if err != nil {
			return err
		}
		if err := dependentsBlock(dirCount, "language", uid, "direction"); err != nil {
			return err
		}

		sentCount, err := s.sentences.CountActiveBy(txCtx, "language_uid", uid)
		if err != nil {
			return err
		}
		return dependentsBlock(sentCount, "language", uid, "sentence")
	})
}

// GetLanguage returns the active version of a language.
func (s *Service) GetLanguage(ctx context.Context, uid int64) (*domain.Language, error) {
	return s.languages.GetActive(ctx, uid)
}

// GetLanguageVersion returns one historical version of a language.
func (s *Service) GetLanguageVersion(ctx context.Context, uid int64, version int) (*domain.Language, error) {
	return s.languages.GetVersion(ctx, uid, version)
}

// GetLanguageHistory returns every version of a language, oldest first.
func (s *Service) GetLanguageHistory(ctx context.Context, uid int64) ([]domain.Language, error) {
	return s.languages.ListHistory(ctx, uid)
}

// LookupLanguage finds the active language with the given code.
func (s *Service) LookupLanguage(ctx context.Context, code string) (*domain.Language, error) {
	if code == "" {
		return nil, domain.NewValidationError("code", "required")
	}
	return s.languages.GetActiveBy(ctx, "code", code)
}

// ListLanguages returns all active languages.
func (s *Service) ListLanguages(ctx context.Context) ([]domain.Language, error) {
	return s.languages.ListActive(ctx)
}

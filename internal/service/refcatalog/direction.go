package refcatalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// CreateDirection registers a new ordered language pair and returns
// version 1. Both endpoint languages must be active identities.
func (s *Service) CreateDirection(ctx context.Context, input DirectionInput) (*domain.Direction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkDirectionLanguages(ctx, input); err != nil {
		return nil, err
	}

	payload := domain.Direction{
		Code:          input.Code,
		SourceLangUID: input.SourceLangUID,
		TargetLangUID: input.TargetLangUID,
		Description:   input.Description,
	}
	return createOne(ctx, s, s.directions, domain.EntityTypeDirection, payload, map[string]any{
		"code":            input.Code,
		"source_lang_uid": input.SourceLangUID,
		"target_lang_uid": input.TargetLangUID,
	})
}

// ReviseDirection appends a new version for an existing direction identity.
func (s *Service) ReviseDirection(ctx context.Context, uid int64, input DirectionInput) (*domain.Direction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkDirectionLanguages(ctx, input); err != nil {
		return nil, err
	}

	payload := domain.Direction{
		Code:          input.Code,
		SourceLangUID: input.SourceLangUID,
		TargetLangUID: input.TargetLangUID,
		Description:   input.Description,
	}
	return reviseOne(ctx, s, s.directions, domain.EntityTypeDirection, uid, payload, map[string]any{
		"code":            input.Code,
		"source_lang_uid": input.SourceLangUID,
		"target_lang_uid": input.TargetLangUID,
	})
}

// DeactivateDirection retires a direction. It refuses while any active
// translation still references the identity.
func (s *Service) DeactivateDirection(ctx context.Context, uid int64) error {
	return deactivateOne(ctx, s, s.directions, domain.EntityTypeDirection, uid, func(txCtx context.Context) error {
		count, err := s.translations.CountActiveBy(txCtx, "direction_uid", uid)
		if err != nil {
			return err
		}
		return dependentsBlock(count, "direction", uid, "translation")
	})
}

// GetDirection returns the active version of a direction.
func (s *Service) GetDirection(ctx context.Context, uid int64) (*domain.Direction, error) {
	return s.directions.GetActive(ctx, uid)
}

// GetDirectionVersion returns one historical version of a direction.
func (s *Service) GetDirectionVersion(ctx context.Context, uid int64, version int) (*domain.Direction, error) {
	return s.directions.GetVersion(ctx, uid, version)
}

// GetDirectionHistory returns every version of a direction, oldest first.
func (s *Service) GetDirectionHistory(ctx context.Context, uid int64) ([]domain.Direction, error) {
	return s.directions.ListHistory(ctx, uid)
}

// LookupDirection finds the active direction with the given code.
func (s *Service) LookupDirection(ctx context.Context, code string) (*domain.Direction, error) {
	if code == "" {
		return nil, domain.NewValidationError("code", "required")
	}
	return s.directions.GetActiveBy(ctx, "code", code)
}

// ListDirections returns all active directions.
func (s *Service) ListDirections(ctx context.Context) ([]domain.Direction, error) {
	return s.directions.ListActive(ctx)
}

// checkDirectionLanguages verifies both endpoint languages resolve to active
// identities.
func (s *Service) checkDirectionLanguages(ctx context.Context, input DirectionInput) error {
	if _, err := s.languages.GetActive(ctx, input.SourceLangUID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewDanglingReference("language", "source_lang_uid", input.SourceLangUID)
		}
		return fmt.Errorf("resolve source language: %w", err)
	}
	if _, err := s.languages.GetActive(ctx, input.TargetLangUID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewDanglingReference("language", "target_lang_uid", input.TargetLangUID)
		}
		return fmt.Errorf("resolve target language: %w", err)
	}
	return nil
}

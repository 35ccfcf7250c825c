package corpus

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

// AddSentence stores a new sentence. Text is normalized and content-hashed
// first; if an active sentence with the same hash already exists in the same
// language, that sentence is returned instead of creating a second copy.
// The bool reports whether a new identity was created.
func (s *Service) AddSentence(ctx context.Context, input AddSentenceInput) (*domain.Sentence, bool, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, false, domain.ErrUnauthorized
	}
	if err := input.Validate(s.cfg.MaxTextLength); err != nil {
		return nil, false, err
	}

	normalized := domain.NormalizeText(input.Text)
	if normalized == "" {
		return nil, false, domain.NewValidationError("text", "empty after normalization")
	}
	hash := domain.ContentHash(input.Text)

	if err := s.checkSentenceRefs(ctx, input.LanguageUID, input.SourceUID, input.DomainUID); err != nil {
		return nil, false, err
	}

	// Idempotent by content: a same-language duplicate returns the original.
	existing, err := s.sentences.FindActiveByHash(ctx, input.LanguageUID, hash)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("check duplicate sentence: %w", err)
	}

	var created *domain.Sentence
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		payload := domain.Sentence{
			Text:           input.Text,
			TextNormalized: normalized,
			ContentHash:    hash,
			LanguageUID:    input.LanguageUID,
			SourceUID:      input.SourceUID,
			DomainUID:      input.DomainUID,
			Status:         domain.SentenceStatusActive,
		}

		var createErr error
		created, createErr = s.sentences.Create(txCtx, payload)
		if createErr != nil {
			return fmt.Errorf("create sentence: %w", createErr)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: domain.EntityTypeSentence,
			EntityUID:  &created.UID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"language_uid": input.LanguageUID, "content_hash": hash},
		})
	})
	if txErr != nil {
		return nil, false, txErr
	}

	s.log.InfoContext(ctx, "sentence added",
		"id", created.UID, "language_uid", input.LanguageUID, "actor", actor)
	return created, true, nil
}

// ReviseSentence appends a new version for an existing sentence identity,
// re-running normalization and reference checks against the new payload.
func (s *Service) ReviseSentence(ctx context.Context, id int64, input AddSentenceInput) (*domain.Sentence, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(s.cfg.MaxTextLength); err != nil {
		return nil, err
	}

	normalized := domain.NormalizeText(input.Text)
	if normalized == "" {
		return nil, domain.NewValidationError("text", "empty after normalization")
	}

	if err := s.checkSentenceRefs(ctx, input.LanguageUID, input.SourceUID, input.DomainUID); err != nil {
		return nil, err
	}

	var revised *domain.Sentence
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		payload := domain.Sentence{
			Text:           input.Text,
			TextNormalized: normalized,
			ContentHash:    domain.ContentHash(input.Text),
			LanguageUID:    input.LanguageUID,
			SourceUID:      input.SourceUID,
			DomainUID:      input.DomainUID,
			Status:         domain.SentenceStatusActive,
		}

		var reviseErr error
		revised, reviseErr = s.sentences.Revise(txCtx, id, payload)
		if reviseErr != nil {
			return fmt.Errorf("revise sentence %d: %w", id, reviseErr)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: domain.EntityTypeSentence,
			EntityUID:  &id,
			Action:     domain.AuditActionRevise,
			Changes:    map[string]any{"content_hash": payload.ContentHash},
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "sentence revised", "id", id, "version", revised.Version, "actor", actor)
	return revised, nil
}

// DeactivateSentence retires a sentence. Without cascade it refuses while
// any active translation still references the sentence; with cascade those
// translations and their scores are deactivated in the same transaction.
func (s *Service) DeactivateSentence(ctx context.Context, id int64, cascade bool) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if !cascade {
			dependents, err := s.translations.CountActiveBySentence(txCtx, id)
			if err != nil {
				return fmt.Errorf("count dependent translations: %w", err)
			}
			if dependents > 0 {
				return fmt.Errorf("sentence %d still referenced by %d active translation(s): %w",
					id, dependents, domain.ErrConflict)
			}
		} else {
			dependents, err := s.translations.ListActiveBySentence(txCtx, id)
			if err != nil {
				return fmt.Errorf("list dependent translations: %w", err)
			}
			for _, tr := range dependents {
				if err := s.deactivateTranslationTx(txCtx, actor, tr.UID); err != nil {
					return err
				}
			}
		}

		if err := s.sentences.Deactivate(txCtx, id); err != nil {
			return fmt.Errorf("deactivate sentence %d: %w", id, err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: domain.EntityTypeSentence,
			EntityUID:  &id,
			Action:     domain.AuditActionDeactivate,
			Changes:    map[string]any{"cascade": cascade},
		})
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "sentence deactivated", "id", id, "cascade", cascade, "actor", actor)
	return nil
}

// GetSentence returns the active version of a sentence.
func (s *Service) GetSentence(ctx context.Context, id int64) (*domain.Sentence, error) {
	return s.sentences.GetActive(ctx, id)
}

// GetSentenceVersion returns one historical version of a sentence.
func (s *Service) GetSentenceVersion(ctx context.Context, id int64, version int) (*domain.Sentence, error) {
	return s.sentences.GetVersion(ctx, id, version)
}

// GetSentenceHistory returns every version of a sentence, oldest first.
func (s *Service) GetSentenceHistory(ctx context.Context, id int64) ([]domain.Sentence, error) {
	return s.sentences.ListHistory(ctx, id)
}

// SearchSentences returns active sentences matching the filter. Full-text
// search runs over the normalized text.
func (s *Service) SearchSentences(ctx context.Context, input SearchInput) ([]domain.Sentence, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.SearchDefaultLimit
	}
	if limit > s.cfg.SearchMaxLimit {
		limit = s.cfg.SearchMaxLimit
	}

	return s.sentences.Search(ctx, domain.SentenceFilter{
		LanguageUID: input.LanguageUID,
		DomainUID:   input.DomainUID,
		SourceUID:   input.SourceUID,
		Search:      input.Search,
		Limit:       limit,
		Offset:      input.Offset,
	})
}

// checkSentenceRefs verifies the language and the optional source/domain
// references resolve to active catalog identities.
func (s *Service) checkSentenceRefs(ctx context.Context, languageUID int64, sourceUID, domainUID *int64) error {
	if _, err := resolveRef(ctx, s.languages.GetActive, "language", "language_uid", languageUID); err != nil {
		return err
	}
	if sourceUID != nil {
		if _, err := resolveRef(ctx, s.sources.GetActive, "source", "source_uid", *sourceUID); err != nil {
			return err
		}
	}
	if domainUID != nil {
		if _, err := resolveRef(ctx, s.domains.GetActive, "domain", "domain_uid", *domainUID); err != nil {
			return err
		}
	}
	return nil
}

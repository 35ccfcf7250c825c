package corpus

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

// AddTranslation links two sentences in a direction. Both endpoints, the
// direction and the method must resolve to active identities, and the
// direction's language pair must agree with the actual sentence languages.
// An identical active link (same endpoints, direction, method and method
// version label) is returned instead of creating a second one; the bool
// reports whether a new identity was created. Re-running the same method
// under a different version label creates a fresh link.
func (s *Service) AddTranslation(ctx context.Context, input AddTranslationInput) (*domain.Translation, bool, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, false, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, false, err
	}

	if err := s.checkTranslationRefs(ctx, input); err != nil {
		return nil, false, err
	}

	existing, err := s.translations.FindActivePair(ctx,
		input.SourceID, input.TargetID, input.DirectionUID, input.MethodUID, input.MethodVersion)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("check translation pair: %w", err)
	}

	var created *domain.Translation
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		payload := domain.Translation{
			SourceID:      input.SourceID,
			TargetID:      input.TargetID,
			DirectionUID:  input.DirectionUID,
			MethodUID:     input.MethodUID,
			MethodVersion: input.MethodVersion,
			IsSynthetic:   input.IsSynthetic,
		}

		var createErr error
		created, createErr = s.translations.Create(txCtx, payload)
		if createErr != nil {
			return fmt.Errorf("create translation: %w", createErr)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: domain.EntityTypeTranslation,
			EntityUID:  &created.UID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"source_id":     input.SourceID,
				"target_id":     input.TargetID,
				"direction_uid": input.DirectionUID,
				"method_uid":    input.MethodUID,
			},
		})
	})
	if txErr != nil {
		return nil, false, txErr
	}

	s.log.InfoContext(ctx, "translation added",
		"id", created.UID, "direction_uid", input.DirectionUID, "actor", actor)
	return created, true, nil
}

// ReviseTranslation appends a new version for an existing translation
// identity, re-running all reference and direction checks.
func (s *Service) ReviseTranslation(ctx context.Context, id int64, input AddTranslationInput) (*domain.Translation, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkTranslationRefs(ctx, input); err != nil {
		return nil, err
	}

	var revised *domain.Translation
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		payload := domain.Translation{
			SourceID:      input.SourceID,
			TargetID:      input.TargetID,
			DirectionUID:  input.DirectionUID,
			MethodUID:     input.MethodUID,
			MethodVersion: input.MethodVersion,
			IsSynthetic:   input.IsSynthetic,
		}

		var reviseErr error
		revised, reviseErr = s.translations.Revise(txCtx, id, payload)
		if reviseErr != nil {
			return fmt.Errorf("revise translation %d: %w", id, reviseErr)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: domain.EntityTypeTranslation,
			EntityUID:  &id,
			Action:     domain.AuditActionRevise,
			Changes:    map[string]any{"method_uid": input.MethodUID},
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "translation revised", "id", id, "version", revised.Version, "actor", actor)
	return revised, nil
}

// DeactivateTranslation retires a translation and every active score
// attached to it, in one transaction.
func (s *Service) DeactivateTranslation(ctx context.Context, id int64) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.deactivateTranslationTx(txCtx, actor, id)
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "translation deactivated", "id", id, "actor", actor)
	return nil
}

// deactivateTranslationTx does the actual cascade inside an open
// transaction; DeactivateSentence reuses it for sentence cascades.
func (s *Service) deactivateTranslationTx(ctx context.Context, actor string, id int64) error {
	scores, err := s.scores.ListActiveByTranslation(ctx, id)
	if err != nil {
		return fmt.Errorf("list scores for translation %d: %w", id, err)
	}

	for _, sc := range scores {
		if err := s.scores.Deactivate(ctx, sc.UID); err != nil {
			return fmt.Errorf("deactivate score %d: %w", sc.UID, err)
		}
		uid := sc.UID
		if err := s.audit.Log(ctx, domain.AuditRecord{
			Actor:      actor,
			EntityType: domain.EntityTypeScore,
			EntityUID:  &uid,
			Action:     domain.AuditActionDeactivate,
			Changes:    map[string]any{"cascade_from_translation": id},
		}); err != nil {
			return err
		}
	}

	if err := s.translations.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("deactivate translation %d: %w", id, err)
	}

	return s.audit.Log(ctx, domain.AuditRecord{
		Actor:      actor,
		EntityType: domain.EntityTypeTranslation,
		EntityUID:  &id,
		Action:     domain.AuditActionDeactivate,
	})
}

// GetTranslation returns the active version of a translation.
func (s *Service) GetTranslation(ctx context.Context, id int64) (*domain.Translation, error) {
	return s.translations.GetActive(ctx, id)
}

// GetTranslationVersion returns one historical version of a translation.
func (s *Service) GetTranslationVersion(ctx context.Context, id int64, version int) (*domain.Translation, error) {
	return s.translations.GetVersion(ctx, id, version)
}

// GetTranslationHistory returns every version of a translation, oldest first.
func (s *Service) GetTranslationHistory(ctx context.Context, id int64) ([]domain.Translation, error) {
	return s.translations.ListHistory(ctx, id)
}

// ListTranslationsForSentence returns all active translations where the
// sentence is either endpoint.
func (s *Service) ListTranslationsForSentence(ctx context.Context, sentenceID int64) ([]domain.Translation, error) {
	if sentenceID <= 0 {
		return nil, domain.NewValidationError("sentence_id", "required")
	}
	return s.translations.ListActiveBySentence(ctx, sentenceID)
}

// checkTranslationRefs resolves every reference of a translation and
// verifies the direction agrees with the endpoint sentence languages.
// The order is fixed: source sentence, target sentence, direction, the
// language agreement, then the method. A mismatched direction is reported
// before a dangling method.
func (s *Service) checkTranslationRefs(ctx context.Context, input AddTranslationInput) error {
	source, err := resolveRef(ctx, s.sentences.GetActive, "sentence", "source_id", input.SourceID)
	if err != nil {
		return err
	}
	target, err := resolveRef(ctx, s.sentences.GetActive, "sentence", "target_id", input.TargetID)
	if err != nil {
		return err
	}
	direction, err := resolveRef(ctx, s.directions.GetActive, "direction", "direction_uid", input.DirectionUID)
	if err != nil {
		return err
	}

	if direction.SourceLangUID != source.LanguageUID || direction.TargetLangUID != target.LanguageUID {
		return &domain.DirectionMismatchError{
			DirectionUID:  direction.UID,
			WantSourceLng: direction.SourceLangUID,
			WantTargetLng: direction.TargetLangUID,
			GotSourceLng:  source.LanguageUID,
			GotTargetLng:  target.LanguageUID,
		}
	}

	if _, err := resolveRef(ctx, s.methods.GetActive, "method", "method_uid", input.MethodUID); err != nil {
		return err
	}
	return nil
}

package corpus

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

// AddScore records a metric score for a translation. When the
// (translation, metric) pair already has an active score, a new version is
// appended; otherwise the pair's next version is created, reviving a fully
// deactivated pair under its original identity. A concurrent writer racing
// on the same pair surfaces domain.ErrDuplicateVersion.
func (s *Service) AddScore(ctx context.Context, input AddScoreInput) (*domain.TranslationScore, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.ScoreNum == nil && input.ScoreTxt == nil {
		return nil, fmt.Errorf("score_num and score_txt both empty: %w", domain.ErrInvalidScore)
	}

	if _, err := resolveRef(ctx, s.translations.GetActive, "translation", "translation_id", input.TranslationID); err != nil {
		return nil, err
	}
	if _, err := resolveRef(ctx, s.metrics.GetActive, "metric", "metric_uid", input.MetricUID); err != nil {
		return nil, err
	}

	payload := domain.TranslationScore{
		TranslationID: input.TranslationID,
		MetricUID:     input.MetricUID,
		ScoreNum:      input.ScoreNum,
		ScoreTxt:      input.ScoreTxt,
	}

	var saved *domain.TranslationScore
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.scores.GetActivePair(txCtx, input.TranslationID, input.MetricUID)

		var action domain.AuditAction
		switch {
		case err == nil:
			saved, err = s.scores.Revise(txCtx, existing.UID, payload)
			if err != nil {
				return fmt.Errorf("revise score pair (%d,%d): %w", input.TranslationID, input.MetricUID, err)
			}
			action = domain.AuditActionRevise
		case errors.Is(err, domain.ErrNotFound):
			saved, err = s.scores.Create(txCtx, payload)
			if err != nil {
				return fmt.Errorf("create score pair (%d,%d): %w", input.TranslationID, input.MetricUID, err)
			}
			action = domain.AuditActionCreate
		default:
			return fmt.Errorf("get score pair (%d,%d): %w", input.TranslationID, input.MetricUID, err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: domain.EntityTypeScore,
			EntityUID:  &saved.UID,
			Action:     action,
			Changes: map[string]any{
				"translation_id": input.TranslationID,
				"metric_uid":     input.MetricUID,
			},
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "score recorded",
		"translation_id", input.TranslationID, "metric_uid", input.MetricUID,
		"version", saved.Version, "actor", actor)
	return saved, nil
}

// DeactivateScore retires the active score of a (translation, metric) pair.
func (s *Service) DeactivateScore(ctx context.Context, translationID, metricUID int64) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.scores.GetActivePair(txCtx, translationID, metricUID)
		if err != nil {
			return fmt.Errorf("get score pair (%d,%d): %w", translationID, metricUID, err)
		}

		if err := s.scores.Deactivate(txCtx, existing.UID); err != nil {
			return fmt.Errorf("deactivate score %d: %w", existing.UID, err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			Actor:      actor,
			EntityType: domain.EntityTypeScore,
			EntityUID:  &existing.UID,
			Action:     domain.AuditActionDeactivate,
		})
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "score deactivated",
		"translation_id", translationID, "metric_uid", metricUID, "actor", actor)
	return nil
}

// GetScore returns the active score of a (translation, metric) pair.
func (s *Service) GetScore(ctx context.Context, translationID, metricUID int64) (*domain.TranslationScore, error) {
	return s.scores.GetActivePair(ctx, translationID, metricUID)
}

// GetScoreHistory returns every score version of a (translation, metric)
// pair, oldest first.
func (s *Service) GetScoreHistory(ctx context.Context, translationID, metricUID int64) ([]domain.TranslationScore, error) {
	return s.scores.ListPairHistory(ctx, translationID, metricUID)
}

// ListScores returns all active scores attached to a translation.
func (s *Service) ListScores(ctx context.Context, translationID int64) ([]domain.TranslationScore, error) {
	if translationID <= 0 {
		return nil, domain.NewValidationError("translation_id", "required")
	}
	return s.scores.ListActiveByTranslation(ctx, translationID)
}

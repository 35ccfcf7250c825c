package ingest

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/internal/service/corpus"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

// LoadPairs bulk-loads bilingual sentence pairs. For each item both
// sentences are stored (or deduplicated against existing content), a
// translation links them through the batch direction and method, and the
// optional per-pair score is recorded against MetricUID.
func (s *Service) LoadPairs(ctx context.Context, input LoadPairsInput) (*BatchResult, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(s.cfg.MaxBatchRows); err != nil {
		return nil, err
	}

	// Resolve the direction once; its language pair drives which language
	// each side of every item lands in.
	direction, err := s.catalog.GetDirection(ctx, input.DirectionUID)
	if err != nil {
		return nil, fmt.Errorf("resolve direction %d: %w", input.DirectionUID, err)
	}

	result := &BatchResult{Items: make([]ItemResult, len(input.Items))}

	if input.AllOrNothing {
		txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			for idx, item := range input.Items {
				res := s.loadOnePair(txCtx, idx, item, input, direction)
				result.Items[idx] = res
				if res.Err != nil {
					return fmt.Errorf("item %d: %w", idx, res.Err)
				}
			}
			return nil
		})
		if txErr != nil {
			return nil, txErr
		}
	} else {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Workers)
		for idx, item := range input.Items {
			g.Go(func() error {
				result.Items[idx] = s.loadOnePair(gCtx, idx, item, input, direction)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	result.collect()
	s.log.InfoContext(ctx, "pair batch loaded",
		"direction_uid", input.DirectionUID,
		"total", result.Total, "succeeded", result.Succeeded, "failed", result.Failed)
	return result, nil
}

func (s *Service) loadOnePair(ctx context.Context, idx int, item PairItem, input LoadPairsInput, direction *domain.Direction) ItemResult {
	res := ItemResult{Index: idx}

	source, createdSrc, err := s.corpus.AddSentence(ctx, corpus.AddSentenceInput{
		Text:        item.SourceText,
		LanguageUID: direction.SourceLangUID,
		SourceUID:   input.SourceUID,
		DomainUID:   input.DomainUID,
	})
	if err != nil {
		res.Err = fmt.Errorf("source sentence: %w", err)
		return res
	}

	target, createdTgt, err := s.corpus.AddSentence(ctx, corpus.AddSentenceInput{
		Text:        item.TargetText,
		LanguageUID: direction.TargetLangUID,
		SourceUID:   input.SourceUID,
		DomainUID:   input.DomainUID,
	})
	if err != nil {
		res.Err = fmt.Errorf("target sentence: %w", err)
		return res
	}

	res.SentenceID = source.UID

	translation, createdTr, err := s.corpus.AddTranslation(ctx, corpus.AddTranslationInput{
		SourceID:     source.UID,
		TargetID:     target.UID,
		DirectionUID: input.DirectionUID,
		MethodUID:    input.MethodUID,
		IsSynthetic:  input.IsSynthetic,
	})
	if err != nil {
		res.Err = fmt.Errorf("translation: %w", err)
		return res
	}
	res.TranslationID = translation.UID
	res.Deduplicated = !createdSrc && !createdTgt && !createdTr

	if input.MetricUID != nil && item.Score != nil {
		if _, err := s.corpus.AddScore(ctx, corpus.AddScoreInput{
			TranslationID: translation.UID,
			MetricUID:     *input.MetricUID,
			ScoreNum:      item.Score,
		}); err != nil {
			res.Err = fmt.Errorf("score: %w", err)
			return res
		}
	}

	return res
}

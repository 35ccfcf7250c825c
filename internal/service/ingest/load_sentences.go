package ingest

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/internal/service/corpus"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

// LoadSentences bulk-loads monolingual sentences. In the default per-item
// mode failures are collected per row and the rest of the batch proceeds,
// fanned out across the configured worker count. With AllOrNothing the whole
// batch becomes one transaction and the first failure rolls everything back.
func (s *Service) LoadSentences(ctx context.Context, input LoadSentencesInput) (*BatchResult, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(s.cfg.MaxBatchRows); err != nil {
		return nil, err
	}

	result := &BatchResult{Items: make([]ItemResult, len(input.Items))}

	if input.AllOrNothing {
		txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			for idx, item := range input.Items {
				res := s.loadOneSentence(txCtx, idx, item, input.SourceUID, input.DomainUID)
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
				result.Items[idx] = s.loadOneSentence(gCtx, idx, item, input.SourceUID, input.DomainUID)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	result.collect()
	s.log.InfoContext(ctx, "sentence batch loaded",
		"total", result.Total, "succeeded", result.Succeeded, "failed", result.Failed)
	return result, nil
}

func (s *Service) loadOneSentence(ctx context.Context, idx int, item SentenceItem, sourceUID, domainUID *int64) ItemResult {
	res := ItemResult{Index: idx}

	sent, created, err := s.corpus.AddSentence(ctx, corpus.AddSentenceInput{
		Text:        item.Text,
		LanguageUID: item.LanguageUID,
		SourceUID:   sourceUID,
		DomainUID:   domainUID,
	})
	if err != nil {
		res.Err = err
		return res
	}

	res.SentenceID = sent.UID
	res.Deduplicated = !created
	return res
}

package corpus

import (
	"context"
	"fmt"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

// MarkDuplicates sweeps the corpus for active sentences whose normalized
// content matches an earlier sentence in the same language and revises each
// later copy to status=duplicate pointing at the original. Intended as a
// backfill after bulk loads that predate hash-based deduplication.
// Returns the number of sentences marked.
func (s *Service) MarkDuplicates(ctx context.Context) (int, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	pairs, err := s.sentences.FindDuplicatePairs(ctx)
	if err != nil {
		return 0, fmt.Errorf("find duplicates: %w", err)
	}
	if len(pairs) == 0 {
		return 0, nil
	}

	marked := 0
	// Each pair is its own transaction so one bad row does not undo the
	// whole sweep.
	for _, pair := range pairs {
		txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			current, err := s.sentences.GetActive(txCtx, pair.ID)
			if err != nil {
				return fmt.Errorf("get sentence %d: %w", pair.ID, err)
			}
			if current.Status == domain.SentenceStatusDuplicate {
				return nil
			}

			originalID := pair.OriginalID
			payload := *current
			payload.Status = domain.SentenceStatusDuplicate
			payload.DuplicateOf = &originalID

			if _, err := s.sentences.Revise(txCtx, pair.ID, payload); err != nil {
				return fmt.Errorf("mark sentence %d duplicate: %w", pair.ID, err)
			}

			id := pair.ID
			return s.audit.Log(txCtx, domain.AuditRecord{
				Actor:      actor,
				EntityType: domain.EntityTypeSentence,
				EntityUID:  &id,
				Action:     domain.AuditActionRevise,
				Changes:    map[string]any{"status": "duplicate", "duplicate_of": originalID},
			})
		})
		if txErr != nil {
			return marked, txErr
		}
		marked++
	}

	s.log.InfoContext(ctx, "duplicate sweep finished", "marked", marked, "actor", actor)
	return marked, nil
}

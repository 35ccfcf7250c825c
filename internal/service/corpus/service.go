// Package corpus implements the sentence, translation and score business
// logic: content-hash deduplication, referential integrity against the
// reference catalogs, direction/language agreement and cascade deactivation.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bhashasetu/corpus-catalog/internal/config"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type sentenceRepo interface {
	Create(ctx context.Context, payload domain.Sentence) (*domain.Sentence, error)
	Revise(ctx context.Context, id int64, payload domain.Sentence) (*domain.Sentence, error)
	Deactivate(ctx context.Context, id int64) error
	GetActive(ctx context.Context, id int64) (*domain.Sentence, error)
	GetVersion(ctx context.Context, id int64, version int) (*domain.Sentence, error)
	ListHistory(ctx context.Context, id int64) ([]domain.Sentence, error)
	FindActiveByHash(ctx context.Context, languageUID int64, hash string) (*domain.Sentence, error)
	Search(ctx context.Context, filter domain.SentenceFilter) ([]domain.Sentence, error)
	FindDuplicatePairs(ctx context.Context) ([]domain.DuplicatePair, error)
}

type translationRepo interface {
	Create(ctx context.Context, payload domain.Translation) (*domain.Translation, error)
	Revise(ctx context.Context, id int64, payload domain.Translation) (*domain.Translation, error)
	Deactivate(ctx context.Context, id int64) error
	GetActive(ctx context.Context, id int64) (*domain.Translation, error)
	GetVersion(ctx context.Context, id int64, version int) (*domain.Translation, error)
	ListHistory(ctx context.Context, id int64) ([]domain.Translation, error)
	ListActiveBySentence(ctx context.Context, sentenceID int64) ([]domain.Translation, error)
	CountActiveBySentence(ctx context.Context, sentenceID int64) (int, error)
	FindActivePair(ctx context.Context, sourceID, targetID, directionUID, methodUID int64, methodVersion *string) (*domain.Translation, error)
}

type scoreRepo interface {
	Create(ctx context.Context, payload domain.TranslationScore) (*domain.TranslationScore, error)
	Revise(ctx context.Context, id int64, payload domain.TranslationScore) (*domain.TranslationScore, error)
	Deactivate(ctx context.Context, id int64) error
	ListActiveByTranslation(ctx context.Context, translationID int64) ([]domain.TranslationScore, error)
	GetActivePair(ctx context.Context, translationID, metricUID int64) (*domain.TranslationScore, error)
	ListPairHistory(ctx context.Context, translationID, metricUID int64) ([]domain.TranslationScore, error)
}

type languageResolver interface {
	GetActive(ctx context.Context, uid int64) (*domain.Language, error)
}

type domainResolver interface {
	GetActive(ctx context.Context, uid int64) (*domain.TextDomain, error)
}

type sourceResolver interface {
	GetActive(ctx context.Context, uid int64) (*domain.Source, error)
}

type methodResolver interface {
	GetActive(ctx context.Context, uid int64) (*domain.Method, error)
}

type metricResolver interface {
	GetActive(ctx context.Context, uid int64) (*domain.Metric, error)
}

type directionResolver interface {
	GetActive(ctx context.Context, uid int64) (*domain.Direction, error)
}

type auditRepo interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the corpus business logic.
type Service struct {
	log          *slog.Logger
	sentences    sentenceRepo
	translations translationRepo
	scores       scoreRepo
	languages    languageResolver
	domains      domainResolver
	sources      sourceResolver
	methods      methodResolver
	metrics      metricResolver
	directions   directionResolver
	audit        auditRepo
	tx           txManager
	cfg          config.CorpusConfig
}

// NewService creates a new corpus service.
func NewService(
	logger *slog.Logger,
	sentences sentenceRepo,
	translations translationRepo,
	scores scoreRepo,
	languages languageResolver,
	domains domainResolver,
	sources sourceResolver,
	methods methodResolver,
	metrics metricResolver,
	directions directionResolver,
	audit auditRepo,
	tx txManager,
	cfg config.CorpusConfig,
) *Service {
	return &Service{
		log:          logger.With("service", "corpus"),
		sentences:    sentences,
		translations: translations,
		scores:       scores,
		languages:    languages,
		domains:      domains,
		sources:      sources,
		methods:      methods,
		metrics:      metrics,
		directions:   directions,
		audit:        audit,
		tx:           tx,
		cfg:          cfg,
	}
}

// ---------------------------------------------------------------------------
// Reference resolution helpers
// ---------------------------------------------------------------------------

// resolveRef maps ErrNotFound from a catalog lookup to a dangling-reference
// error naming the offending field.
func resolveRef[T any](ctx context.Context, get func(context.Context, int64) (*T, error), entity, field string, uid int64) (*T, error) {
	item, err := get(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewDanglingReference(entity, field, uid)
		}
		return nil, fmt.Errorf("resolve %s: %w", field, err)
	}
	return item, nil
}

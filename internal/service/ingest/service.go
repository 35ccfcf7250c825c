// Package ingest implements bulk corpus loading: batches of monolingual
// sentences or bilingual pairs enter through here, with get-or-create
// resolution of catalog references and per-item or all-or-nothing error
// handling.
package ingest

import (
	"context"
	"log/slog"

	"github.com/bhashasetu/corpus-catalog/internal/config"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/internal/service/corpus"
	"github.com/bhashasetu/corpus-catalog/internal/service/refcatalog"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type corpusService interface {
	AddSentence(ctx context.Context, input corpus.AddSentenceInput) (*domain.Sentence, bool, error)
	AddTranslation(ctx context.Context, input corpus.AddTranslationInput) (*domain.Translation, bool, error)
	AddScore(ctx context.Context, input corpus.AddScoreInput) (*domain.TranslationScore, error)
}

type catalogService interface {
	LookupLanguage(ctx context.Context, code string) (*domain.Language, error)
	CreateLanguage(ctx context.Context, input refcatalog.LanguageInput) (*domain.Language, error)
	LookupDomain(ctx context.Context, code string) (*domain.TextDomain, error)
	CreateDomain(ctx context.Context, input refcatalog.DomainInput) (*domain.TextDomain, error)
	LookupSource(ctx context.Context, name string) (*domain.Source, error)
	CreateSource(ctx context.Context, input refcatalog.SourceInput) (*domain.Source, error)
	LookupMethod(ctx context.Context, name string) (*domain.Method, error)
	CreateMethod(ctx context.Context, input refcatalog.MethodInput) (*domain.Method, error)
	LookupMetric(ctx context.Context, name string) (*domain.Metric, error)
	CreateMetric(ctx context.Context, input refcatalog.MetricInput) (*domain.Metric, error)
	LookupDirection(ctx context.Context, code string) (*domain.Direction, error)
	CreateDirection(ctx context.Context, input refcatalog.DirectionInput) (*domain.Direction, error)
	GetDirection(ctx context.Context, uid int64) (*domain.Direction, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements bulk corpus ingestion.
type Service struct {
	log     *slog.Logger
	corpus  corpusService
	catalog catalogService
	tx      txManager
	cfg     config.IngestConfig
}

// NewService creates a new ingest service.
func NewService(
	logger *slog.Logger,
	corpusSvc corpusService,
	catalog catalogService,
	tx txManager,
	cfg config.IngestConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "ingest"),
		corpus:  corpusSvc,
		catalog: catalog,
		tx:      tx,
		cfg:     cfg,
	}
}

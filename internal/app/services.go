package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/audit"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/catalog"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/score"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/sentence"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/translation"
	"github.com/bhashasetu/corpus-catalog/internal/config"
	"github.com/bhashasetu/corpus-catalog/internal/service/corpus"
	"github.com/bhashasetu/corpus-catalog/internal/service/ingest"
	"github.com/bhashasetu/corpus-catalog/internal/service/refcatalog"
)

// Services bundles the fully wired service layer. It is shared by the
// server and the offline ingestion commands so they construct the stack
// the same way.
type Services struct {
	Catalog *refcatalog.Service
	Corpus  *corpus.Service
	Ingest  *ingest.Service
}

// BuildServices constructs the repositories and services on top of the
// given connection pool.
func BuildServices(pool *pgxpool.Pool, logger *slog.Logger, cfg *config.Config) *Services {
	txManager := postgres.NewTxManager(pool)

	languageRepo := catalog.NewLanguageRepo(pool)
	domainRepo := catalog.NewDomainRepo(pool)
	sourceRepo := catalog.NewSourceRepo(pool)
	methodRepo := catalog.NewMethodRepo(pool)
	metricRepo := catalog.NewMetricRepo(pool)
	directionRepo := catalog.NewDirectionRepo(pool)
	sentenceRepo := sentence.New(pool)
	translationRepo := translation.New(pool)
	scoreRepo := score.New(pool)
	auditRepo := audit.New(pool)

	catalogSvc := refcatalog.NewService(
		logger,
		languageRepo, domainRepo, sourceRepo, methodRepo, metricRepo, directionRepo,
		sentenceRepo, translationRepo, scoreRepo,
		auditRepo, txManager,
	)
	corpusSvc := corpus.NewService(
		logger,
		sentenceRepo, translationRepo, scoreRepo,
		languageRepo, domainRepo, sourceRepo, methodRepo, metricRepo, directionRepo,
		auditRepo, txManager, cfg.Corpus,
	)
	ingestSvc := ingest.NewService(logger, corpusSvc, catalogSvc, txManager, cfg.Ingest)

	return &Services{
		Catalog: catalogSvc,
		Corpus:  corpusSvc,
		Ingest:  ingestSvc,
	}
}

// Command seeder bootstraps the reference catalogs with the baseline
// entities a fresh deployment needs: the English and Japanese languages,
// the en2ja/ja2en directions, a default text domain, a human curation
// method and the alignment-score metric. It is idempotent: existing
// entities are reused, never duplicated.
//
// Flags:
//
//	--actor   identity recorded in the audit trail (default "seeder")
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/app"
	"github.com/bhashasetu/corpus-catalog/internal/config"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

func main() {
	actorFlag := flag.String("actor", "seeder", "actor identity recorded in the audit trail")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	services := app.BuildServices(pool, logger, cfg)
	ingest := services.Ingest

	ctx = ctxutil.WithActor(ctx, *actorFlag)

	if _, err := ingest.EnsureLanguage(ctx, "en", "English"); err != nil {
		fatal(logger, "ensure language en", err)
	}
	if _, err := ingest.EnsureLanguage(ctx, "ja", "Japanese"); err != nil {
		fatal(logger, "ensure language ja", err)
	}
	if _, err := ingest.EnsureDirection(ctx, "en", "ja"); err != nil {
		fatal(logger, "ensure direction en2ja", err)
	}
	if _, err := ingest.EnsureDirection(ctx, "ja", "en"); err != nil {
		fatal(logger, "ensure direction ja2en", err)
	}
	if _, err := ingest.EnsureDomain(ctx, "general"); err != nil {
		fatal(logger, "ensure domain general", err)
	}
	if _, err := ingest.EnsureSource(ctx, "manual", "manual-entry", nil); err != nil {
		fatal(logger, "ensure source manual-entry", err)
	}
	if _, err := ingest.EnsureMethod(ctx, "human", nil); err != nil {
		fatal(logger, "ensure method human", err)
	}
	if _, err := ingest.EnsureMetric(ctx, "alignment-score"); err != nil {
		fatal(logger, "ensure metric alignment-score", err)
	}

	logger.Info("reference catalogs seeded")
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}

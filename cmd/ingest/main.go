// Command ingest bulk-loads a TSV file of parallel sentence pairs into
// the corpus. Lines carry score, source text and target text columns;
// short or empty lines are skipped and counted.
//
// Usage:
//
//	ingest --file=pairs.tsv --source-lang=en --target-lang=ja \
//	       --source=jparacrawl --method=crawl-align [flags]
//
// Flags:
//
//	--file            path to the TSV file (required)
//	--source-lang     source language code (required)
//	--target-lang     target language code (required)
//	--source          source/dataset name (required)
//	--method          production method name (required)
//	--metric          metric name for per-pair scores (omit to drop scores)
//	--domain          text domain code
//	--synthetic       mark translations as machine-produced
//	--all-or-nothing  abort each batch on the first failing pair
//	--actor           identity recorded in the audit trail (default "loader")
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/app"
	"github.com/bhashasetu/corpus-catalog/internal/config"
	"github.com/bhashasetu/corpus-catalog/internal/service/ingest"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

func main() {
	fileFlag := flag.String("file", "", "path to the TSV file")
	sourceLangFlag := flag.String("source-lang", "", "source language code")
	targetLangFlag := flag.String("target-lang", "", "target language code")
	sourceFlag := flag.String("source", "", "source/dataset name")
	methodFlag := flag.String("method", "", "production method name")
	metricFlag := flag.String("metric", "", "metric name for per-pair scores")
	domainFlag := flag.String("domain", "", "text domain code")
	syntheticFlag := flag.Bool("synthetic", false, "mark translations as machine-produced")
	allOrNothingFlag := flag.Bool("all-or-nothing", false, "abort each batch on the first failing pair")
	actorFlag := flag.String("actor", "loader", "actor identity recorded in the audit trail")
	flag.Parse()

	if *fileFlag == "" || *sourceLangFlag == "" || *targetLangFlag == "" ||
		*sourceFlag == "" || *methodFlag == "" {
		fmt.Fprintln(os.Stderr, "Usage: ingest --file=pairs.tsv --source-lang=en --target-lang=ja --source=jparacrawl --method=crawl-align")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	result, err := ingest.ParseTSVFile(*fileFlag)
	if err != nil {
		logger.Error("parse tsv", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("tsv parsed",
		slog.Int("total_lines", result.Stats.TotalLines),
		slog.Int("parsed", result.Stats.Parsed),
		slog.Int("skipped_short", result.Stats.SkippedShort),
		slog.Int("skipped_empty", result.Stats.SkippedEmpty),
	)
	if len(result.Items) == 0 {
		logger.Info("nothing to load")
		return
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	services := app.BuildServices(pool, logger, cfg)
	svc := services.Ingest

	ctx = ctxutil.WithActor(ctx, *actorFlag)

	direction, err := svc.EnsureDirection(ctx, *sourceLangFlag, *targetLangFlag)
	if err != nil {
		logger.Error("ensure direction", slog.String("error", err.Error()))
		os.Exit(1)
	}
	source, err := svc.EnsureSource(ctx, "dataset", *sourceFlag, map[string]any{"file": *fileFlag})
	if err != nil {
		logger.Error("ensure source", slog.String("error", err.Error()))
		os.Exit(1)
	}
	method, err := svc.EnsureMethod(ctx, *methodFlag, nil)
	if err != nil {
		logger.Error("ensure method", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var metricUID *int64
	if *metricFlag != "" {
		metric, err := svc.EnsureMetric(ctx, *metricFlag)
		if err != nil {
			logger.Error("ensure metric", slog.String("error", err.Error()))
			os.Exit(1)
		}
		metricUID = &metric.UID
	}

	var domainUID *int64
	if *domainFlag != "" {
		textDomain, err := svc.EnsureDomain(ctx, *domainFlag)
		if err != nil {
			logger.Error("ensure domain", slog.String("error", err.Error()))
			os.Exit(1)
		}
		domainUID = &textDomain.UID
	}

	batchSize := cfg.Ingest.BatchSize
	if batchSize <= 0 {
		batchSize = len(result.Items)
	}

	start := time.Now()
	var succeeded, failed, deduplicated int

	for offset := 0; offset < len(result.Items); offset += batchSize {
		end := min(offset+batchSize, len(result.Items))

		batch, err := svc.LoadPairs(ctx, ingest.LoadPairsInput{
			Items:        result.Items[offset:end],
			DirectionUID: direction.UID,
			MethodUID:    method.UID,
			MetricUID:    metricUID,
			SourceUID:    &source.UID,
			DomainUID:    domainUID,
			IsSynthetic:  *syntheticFlag,
			AllOrNothing: *allOrNothingFlag,
		})
		if err != nil {
			logger.Error("load pairs",
				slog.Int("offset", offset),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}

		succeeded += batch.Succeeded
		failed += batch.Failed
		for _, item := range batch.Items {
			if item.Deduplicated {
				deduplicated++
			}
			if item.Err != nil {
				logger.Warn("pair rejected",
					slog.Int("line", offset+item.Index+1),
					slog.String("error", item.Err.Error()),
				)
			}
		}

		logger.Info("batch loaded",
			slog.Int("offset", offset),
			slog.Int("succeeded", batch.Succeeded),
			slog.Int("failed", batch.Failed),
		)
	}

	logger.Info("ingestion finished",
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed),
		slog.Int("deduplicated", deduplicated),
		slog.Duration("took", time.Since(start).Round(time.Millisecond)),
	)
	if failed > 0 {
		os.Exit(1)
	}
}

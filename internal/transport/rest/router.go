package rest

import (
	"log/slog"
	"net/http"

	"github.com/bhashasetu/corpus-catalog/internal/service/corpus"
	"github.com/bhashasetu/corpus-catalog/internal/service/ingest"
	"github.com/bhashasetu/corpus-catalog/internal/service/refcatalog"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Catalog *refcatalog.Service
	Corpus  *corpus.Service
	Ingest  *ingest.Service
	Health  *HealthHandler
	Logger  *slog.Logger
}

// NewRouter builds the service mux: health probes plus the /v1 JSON API.
// Middleware (request id, auth, logging, ...) is layered on by the caller.
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)

	RegisterCatalogRoutes(mux, deps.Catalog, deps.Logger)
	RegisterAuditRoutes(mux, deps.Catalog, deps.Logger)
	NewCorpusHandler(deps.Corpus, deps.Logger).Register(mux)
	NewIngestHandler(deps.Ingest, deps.Logger).Register(mux)

	return mux
}

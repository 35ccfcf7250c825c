//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/testhelper"
	"github.com/bhashasetu/corpus-catalog/internal/app"
	"github.com/bhashasetu/corpus-catalog/internal/auth"
	"github.com/bhashasetu/corpus-catalog/internal/config"
	"github.com/bhashasetu/corpus-catalog/internal/transport/middleware"
	"github.com/bhashasetu/corpus-catalog/internal/transport/rest"
)

const testJWTSecret = "e2e-secret-not-for-production"

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	tokens *auth.TokenManager
}

// newTestServer wires repositories, services, the router and the middleware
// chain exactly like the application does, on top of the shared test DB.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Corpus: config.CorpusConfig{
			MaxTextLength:      10000,
			SearchDefaultLimit: 50,
			SearchMaxLimit:     500,
		},
		Ingest: config.IngestConfig{
			BatchSize:    500,
			Workers:      4,
			MaxBatchRows: 100000,
		},
	}

	services := app.BuildServices(pool, logger, cfg)
	tokens := auth.NewTokenManager(testJWTSecret, "corpus-catalog", time.Hour)

	mux := rest.NewRouter(rest.RouterDeps{
		Catalog: services.Catalog,
		Corpus:  services.Corpus,
		Ingest:  services.Ingest,
		Health:  rest.NewHealthHandler(pool, "e2e"),
		Logger:  logger,
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Auth(tokens),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		tokens: tokens,
	}
}

// token mints a bearer token for the given actor.
func (s *testServer) token(t *testing.T, actor string) string {
	t.Helper()
	tok, err := s.tokens.GenerateToken(actor)
	require.NoError(t, err)
	return tok
}

// do sends a JSON request and decodes the JSON response into a generic
// value. A nil body sends no payload; an empty token sends no credentials.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// obj asserts the decoded body is a JSON object.
func obj(t *testing.T, body any) map[string]any {
	t.Helper()
	m, ok := body.(map[string]any)
	require.True(t, ok, "expected JSON object, got %T: %v", body, body)
	return m
}

// list asserts the decoded body is a JSON array.
func list(t *testing.T, body any) []any {
	t.Helper()
	l, ok := body.([]any)
	require.True(t, ok, "expected JSON array, got %T: %v", body, body)
	return l
}

// uid extracts the "uid" field as int64.
func uid(t *testing.T, m map[string]any) int64 {
	t.Helper()
	f, ok := m["uid"].(float64)
	require.True(t, ok, "expected numeric uid in %v", m)
	return int64(f)
}

// catalogPath builds the item path for one catalog entity.
func catalogPath(name string, uid int64) string {
	return "/v1/catalog/" + name + "/" + strconv.FormatInt(uid, 10)
}

// uniqueCode generates a non-conflicting natural key for catalog fixtures.
func uniqueCode(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhashasetu/corpus-catalog/internal/config"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
	"github.com/bhashasetu/corpus-catalog/internal/service/corpus"
	"github.com/bhashasetu/corpus-catalog/internal/service/refcatalog"
	"github.com/bhashasetu/corpus-catalog/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// mockCorpus hands out sequential sentence and translation IDs; per-item
// batches run concurrently, so the counters are mutex-guarded.
type mockCorpus struct {
	AddSentenceFunc    func(ctx context.Context, input corpus.AddSentenceInput) (*domain.Sentence, bool, error)
	AddTranslationFunc func(ctx context.Context, input corpus.AddTranslationInput) (*domain.Translation, bool, error)
	AddScoreFunc       func(ctx context.Context, input corpus.AddScoreInput) (*domain.TranslationScore, error)

	mu         sync.Mutex
	nextID     int64
	Sentences  []corpus.AddSentenceInput
	Links      []corpus.AddTranslationInput
	Scores     []corpus.AddScoreInput
}

func (m *mockCorpus) AddSentence(ctx context.Context, input corpus.AddSentenceInput) (*domain.Sentence, bool, error) {
	if m.AddSentenceFunc != nil {
		return m.AddSentenceFunc(ctx, input)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.Sentences = append(m.Sentences, input)
	return &domain.Sentence{
		VersionMeta: domain.VersionMeta{UID: m.nextID, Version: 1, IsActive: true},
		Text:        input.Text,
		LanguageUID: input.LanguageUID,
	}, true, nil
}

func (m *mockCorpus) AddTranslation(ctx context.Context, input corpus.AddTranslationInput) (*domain.Translation, bool, error) {
	if m.AddTranslationFunc != nil {
		return m.AddTranslationFunc(ctx, input)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.Links = append(m.Links, input)
	return &domain.Translation{
		VersionMeta: domain.VersionMeta{UID: m.nextID, Version: 1, IsActive: true},
		SourceID:    input.SourceID,
		TargetID:    input.TargetID,
	}, true, nil
}

func (m *mockCorpus) AddScore(ctx context.Context, input corpus.AddScoreInput) (*domain.TranslationScore, error) {
	if m.AddScoreFunc != nil {
		return m.AddScoreFunc(ctx, input)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scores = append(m.Scores, input)
	return &domain.TranslationScore{
		VersionMeta:   domain.VersionMeta{UID: 1, Version: 1, IsActive: true},
		TranslationID: input.TranslationID,
		MetricUID:     input.MetricUID,
	}, nil
}

// mockCatalog defaults every lookup to not-found and every create to a
// fresh identity, the common path for an empty catalog.
type mockCatalog struct {
	LookupLanguageFunc  func(ctx context.Context, code string) (*domain.Language, error)
	CreateLanguageFunc  func(ctx context.Context, input refcatalog.LanguageInput) (*domain.Language, error)
	LookupDirectionFunc func(ctx context.Context, code string) (*domain.Direction, error)
	CreateDirectionFunc func(ctx context.Context, input refcatalog.DirectionInput) (*domain.Direction, error)
	GetDirectionFunc    func(ctx context.Context, uid int64) (*domain.Direction, error)

	CreatedLanguages  []refcatalog.LanguageInput
	CreatedDirections []refcatalog.DirectionInput
}

func (m *mockCatalog) LookupLanguage(ctx context.Context, code string) (*domain.Language, error) {
	if m.LookupLanguageFunc != nil {
		return m.LookupLanguageFunc(ctx, code)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) CreateLanguage(ctx context.Context, input refcatalog.LanguageInput) (*domain.Language, error) {
	if m.CreateLanguageFunc != nil {
		return m.CreateLanguageFunc(ctx, input)
	}
	m.CreatedLanguages = append(m.CreatedLanguages, input)
	return &domain.Language{
		VersionMeta: domain.VersionMeta{UID: int64(100 + len(m.CreatedLanguages)), Version: 1, IsActive: true},
		Code:        input.Code,
		Name:        input.Name,
	}, nil
}

func (m *mockCatalog) LookupDomain(ctx context.Context, code string) (*domain.TextDomain, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) CreateDomain(ctx context.Context, input refcatalog.DomainInput) (*domain.TextDomain, error) {
	return &domain.TextDomain{VersionMeta: domain.VersionMeta{UID: 1, Version: 1, IsActive: true}, Code: input.Code}, nil
}

func (m *mockCatalog) LookupSource(ctx context.Context, name string) (*domain.Source, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) CreateSource(ctx context.Context, input refcatalog.SourceInput) (*domain.Source, error) {
	return &domain.Source{VersionMeta: domain.VersionMeta{UID: 1, Version: 1, IsActive: true}, Name: input.Name}, nil
}

func (m *mockCatalog) LookupMethod(ctx context.Context, name string) (*domain.Method, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) CreateMethod(ctx context.Context, input refcatalog.MethodInput) (*domain.Method, error) {
	return &domain.Method{VersionMeta: domain.VersionMeta{UID: 1, Version: 1, IsActive: true}, Name: input.Name}, nil
}

func (m *mockCatalog) LookupMetric(ctx context.Context, name string) (*domain.Metric, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) CreateMetric(ctx context.Context, input refcatalog.MetricInput) (*domain.Metric, error) {
	return &domain.Metric{VersionMeta: domain.VersionMeta{UID: 1, Version: 1, IsActive: true}, Name: input.Name}, nil
}

func (m *mockCatalog) LookupDirection(ctx context.Context, code string) (*domain.Direction, error) {
	if m.LookupDirectionFunc != nil {
		return m.LookupDirectionFunc(ctx, code)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) CreateDirection(ctx context.Context, input refcatalog.DirectionInput) (*domain.Direction, error) {
	if m.CreateDirectionFunc != nil {
		return m.CreateDirectionFunc(ctx, input)
	}
	m.CreatedDirections = append(m.CreatedDirections, input)
	return &domain.Direction{
		VersionMeta:   domain.VersionMeta{UID: 500, Version: 1, IsActive: true},
		Code:          input.Code,
		SourceLangUID: input.SourceLangUID,
		TargetLangUID: input.TargetLangUID,
	}, nil
}

func (m *mockCatalog) GetDirection(ctx context.Context, uid int64) (*domain.Direction, error) {
	if m.GetDirectionFunc != nil {
		return m.GetDirectionFunc(ctx, uid)
	}
	return &domain.Direction{
		VersionMeta:   domain.VersionMeta{UID: uid, Version: 1, IsActive: true},
		Code:          "en2ja",
		SourceLangUID: 100,
		TargetLangUID: 200,
	}, nil
}

type mockTxManager struct {
	Calls int
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	corpus  *mockCorpus
	catalog *mockCatalog
	tx      *mockTxManager
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		corpus:  &mockCorpus{},
		catalog: &mockCatalog{},
		tx:      &mockTxManager{},
	}
	cfg := config.IngestConfig{BatchSize: 500, Workers: 4, MaxBatchRows: 1000}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(logger, f.corpus, f.catalog, f.tx, cfg)
	return f
}

func authedCtx() context.Context {
	return ctxutil.WithActor(context.Background(), "loader")
}

// ---------------------------------------------------------------------------
// LoadSentences
// ---------------------------------------------------------------------------

func TestLoadSentences(t *testing.T) {
	t.Parallel()

	items := []SentenceItem{
		{Text: "Hello.", LanguageUID: 100},
		{Text: "Good morning.", LanguageUID: 100},
		{Text: "Good night.", LanguageUID: 100},
	}

	t.Run("per-item mode keeps going past a failing row", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.corpus.AddSentenceFunc = func(ctx context.Context, input corpus.AddSentenceInput) (*domain.Sentence, bool, error) {
			if input.Text == "Good morning." {
				return nil, false, domain.ErrValidation
			}
			return &domain.Sentence{VersionMeta: domain.VersionMeta{UID: 7, Version: 1, IsActive: true}}, true, nil
		}

		got, err := f.svc.LoadSentences(authedCtx(), LoadSentencesInput{Items: items})
		require.NoError(t, err)

		assert.Equal(t, 3, got.Total)
		assert.Equal(t, 2, got.Succeeded)
		assert.Equal(t, 1, got.Failed)
		assert.ErrorIs(t, got.Items[1].Err, domain.ErrValidation)
		assert.NoError(t, got.Items[0].Err)
		assert.Equal(t, 0, f.tx.Calls)
	})

	t.Run("all-or-nothing aborts the batch on the first failure", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		calls := 0
		f.corpus.AddSentenceFunc = func(ctx context.Context, input corpus.AddSentenceInput) (*domain.Sentence, bool, error) {
			calls++
			if input.Text == "Good morning." {
				return nil, false, domain.ErrValidation
			}
			return &domain.Sentence{VersionMeta: domain.VersionMeta{UID: 7, Version: 1, IsActive: true}}, true, nil
		}

		_, err := f.svc.LoadSentences(authedCtx(), LoadSentencesInput{Items: items, AllOrNothing: true})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, 2, calls, "third item must not run after the failure")
		assert.Equal(t, 1, f.tx.Calls)
	})

	t.Run("reports deduplicated rows", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.corpus.AddSentenceFunc = func(ctx context.Context, input corpus.AddSentenceInput) (*domain.Sentence, bool, error) {
			created := input.Text != "Hello."
			return &domain.Sentence{VersionMeta: domain.VersionMeta{UID: 7, Version: 1, IsActive: true}}, created, nil
		}

		got, err := f.svc.LoadSentences(authedCtx(), LoadSentencesInput{Items: items})
		require.NoError(t, err)
		assert.True(t, got.Items[0].Deduplicated)
		assert.False(t, got.Items[1].Deduplicated)
	})

	t.Run("requires an actor", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		_, err := f.svc.LoadSentences(context.Background(), LoadSentencesInput{Items: items})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		_, err := f.svc.LoadSentences(authedCtx(), LoadSentencesInput{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects a batch over the row limit", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		big := make([]SentenceItem, 1001)
		for i := range big {
			big[i] = SentenceItem{Text: "x", LanguageUID: 100}
		}
		_, err := f.svc.LoadSentences(authedCtx(), LoadSentencesInput{Items: big})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// ---------------------------------------------------------------------------
// LoadPairs
// ---------------------------------------------------------------------------

func TestLoadPairs(t *testing.T) {
	t.Parallel()

	score := 0.78
	metricUID := int64(9)

	t.Run("stores both sides, the link and the score", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		input := LoadPairsInput{
			Items:        []PairItem{{SourceText: "Hello.", TargetText: "こんにちは。", Score: &score}},
			DirectionUID: 5,
			MethodUID:    7,
			MetricUID:    &metricUID,
		}

		got, err := f.svc.LoadPairs(authedCtx(), input)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Succeeded)

		require.Len(t, f.corpus.Sentences, 2)
		assert.Equal(t, int64(100), f.corpus.Sentences[0].LanguageUID)
		assert.Equal(t, int64(200), f.corpus.Sentences[1].LanguageUID)

		require.Len(t, f.corpus.Links, 1)
		assert.Equal(t, int64(5), f.corpus.Links[0].DirectionUID)
		assert.Equal(t, int64(7), f.corpus.Links[0].MethodUID)

		require.Len(t, f.corpus.Scores, 1)
		assert.Equal(t, metricUID, f.corpus.Scores[0].MetricUID)
		require.NotNil(t, f.corpus.Scores[0].ScoreNum)
		assert.InDelta(t, score, *f.corpus.Scores[0].ScoreNum, 1e-9)
	})

	t.Run("skips the score without a metric", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		input := LoadPairsInput{
			Items:        []PairItem{{SourceText: "Hello.", TargetText: "こんにちは。", Score: &score}},
			DirectionUID: 5,
			MethodUID:    7,
		}

		_, err := f.svc.LoadPairs(authedCtx(), input)
		require.NoError(t, err)
		assert.Empty(t, f.corpus.Scores)
	})

	t.Run("marks the item deduplicated only when nothing was created", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.corpus.AddSentenceFunc = func(ctx context.Context, input corpus.AddSentenceInput) (*domain.Sentence, bool, error) {
			return &domain.Sentence{VersionMeta: domain.VersionMeta{UID: 1, Version: 1, IsActive: true}}, false, nil
		}
		f.corpus.AddTranslationFunc = func(ctx context.Context, input corpus.AddTranslationInput) (*domain.Translation, bool, error) {
			return &domain.Translation{VersionMeta: domain.VersionMeta{UID: 2, Version: 1, IsActive: true}}, false, nil
		}

		got, err := f.svc.LoadPairs(authedCtx(), LoadPairsInput{
			Items:        []PairItem{{SourceText: "Hello.", TargetText: "こんにちは。"}},
			DirectionUID: 5,
			MethodUID:    7,
		})
		require.NoError(t, err)
		assert.True(t, got.Items[0].Deduplicated)
	})

	t.Run("fails fast when the direction does not resolve", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.catalog.GetDirectionFunc = func(ctx context.Context, uid int64) (*domain.Direction, error) {
			return nil, domain.ErrNotFound
		}

		_, err := f.svc.LoadPairs(authedCtx(), LoadPairsInput{
			Items:        []PairItem{{SourceText: "Hello.", TargetText: "こんにちは。"}},
			DirectionUID: 5,
			MethodUID:    7,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("records translation failures per item", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.corpus.AddTranslationFunc = func(ctx context.Context, input corpus.AddTranslationInput) (*domain.Translation, bool, error) {
			return nil, false, domain.ErrDirectionMismatch
		}

		got, err := f.svc.LoadPairs(authedCtx(), LoadPairsInput{
			Items:        []PairItem{{SourceText: "Hello.", TargetText: "こんにちは。"}},
			DirectionUID: 5,
			MethodUID:    7,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Failed)
		assert.ErrorIs(t, got.Items[0].Err, domain.ErrDirectionMismatch)
	})

	t.Run("rejects a missing method", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		_, err := f.svc.LoadPairs(authedCtx(), LoadPairsInput{
			Items:        []PairItem{{SourceText: "a", TargetText: "b"}},
			DirectionUID: 5,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// ---------------------------------------------------------------------------
// Ensure helpers
// ---------------------------------------------------------------------------

func TestEnsureLanguage(t *testing.T) {
	t.Parallel()

	t.Run("returns the existing language without creating", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.catalog.LookupLanguageFunc = func(ctx context.Context, code string) (*domain.Language, error) {
			return &domain.Language{VersionMeta: domain.VersionMeta{UID: 42, Version: 1, IsActive: true}, Code: code}, nil
		}

		got, err := f.svc.EnsureLanguage(authedCtx(), "en", "English")
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.UID)
		assert.Empty(t, f.catalog.CreatedLanguages)
	})

	t.Run("creates a missing language, defaulting name to code", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		got, err := f.svc.EnsureLanguage(authedCtx(), "ja", "")
		require.NoError(t, err)
		assert.Equal(t, "ja", got.Code)
		require.Len(t, f.catalog.CreatedLanguages, 1)
		assert.Equal(t, "ja", f.catalog.CreatedLanguages[0].Name)
	})

	t.Run("losing the creation race falls back to a second lookup", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		lookups := 0
		f.catalog.LookupLanguageFunc = func(ctx context.Context, code string) (*domain.Language, error) {
			lookups++
			if lookups == 1 {
				return nil, domain.ErrNotFound
			}
			return &domain.Language{VersionMeta: domain.VersionMeta{UID: 42, Version: 1, IsActive: true}, Code: code}, nil
		}
		f.catalog.CreateLanguageFunc = func(ctx context.Context, input refcatalog.LanguageInput) (*domain.Language, error) {
			return nil, domain.ErrConflict
		}

		got, err := f.svc.EnsureLanguage(authedCtx(), "en", "English")
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.UID)
		assert.Equal(t, 2, lookups)
	})

	t.Run("propagates unexpected creation errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		f := newFixture()
		f.catalog.CreateLanguageFunc = func(ctx context.Context, input refcatalog.LanguageInput) (*domain.Language, error) {
			return nil, boom
		}

		_, err := f.svc.EnsureLanguage(authedCtx(), "en", "English")
		assert.ErrorIs(t, err, boom)
	})
}

func TestEnsureDirection(t *testing.T) {
	t.Parallel()

	t.Run("ensures both languages and derives the code", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		got, err := f.svc.EnsureDirection(authedCtx(), "en", "ja")
		require.NoError(t, err)

		assert.Equal(t, "en2ja", got.Code)
		require.Len(t, f.catalog.CreatedLanguages, 2)
		require.Len(t, f.catalog.CreatedDirections, 1)
		assert.Equal(t, int64(101), f.catalog.CreatedDirections[0].SourceLangUID)
		assert.Equal(t, int64(102), f.catalog.CreatedDirections[0].TargetLangUID)
	})

	t.Run("reuses an existing direction", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.catalog.LookupDirectionFunc = func(ctx context.Context, code string) (*domain.Direction, error) {
			return &domain.Direction{VersionMeta: domain.VersionMeta{UID: 5, Version: 1, IsActive: true}, Code: code}, nil
		}

		got, err := f.svc.EnsureDirection(authedCtx(), "en", "ja")
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.UID)
		assert.Empty(t, f.catalog.CreatedDirections)
	})
}

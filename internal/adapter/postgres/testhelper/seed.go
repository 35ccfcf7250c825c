package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedLanguage inserts an active language (version 1) with a unique code and
// returns the populated domain.Language.
func SeedLanguage(t *testing.T, pool *pgxpool.Pool) domain.Language {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	lang := domain.Language{
		Code: "x-" + suffix,
		Name: "Test Language " + suffix,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO language (uid, version, code, dialect, name)
		 VALUES (nextval('language_uid_seq'), 1, $1, NULL, $2)
		 RETURNING uid, version, is_active, created_at, last_updated_on`,
		lang.Code, lang.Name,
	).Scan(&lang.UID, &lang.Version, &lang.IsActive, &lang.CreatedAt, &lang.LastUpdatedOn)
	if err != nil {
		t.Fatalf("testhelper: SeedLanguage: %v", err)
	}

	return lang
}

// SeedDirection inserts an active direction between the two given language
// uids and returns the populated domain.Direction.
func SeedDirection(t *testing.T, pool *pgxpool.Pool, sourceLangUID, targetLangUID int64) domain.Direction {
	t.Helper()
	ctx := context.Background()

	dir := domain.Direction{
		Code:          "d-" + uniqueSuffix(),
		SourceLangUID: sourceLangUID,
		TargetLangUID: targetLangUID,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO direction_lookup (uid, version, code, source_lang_uid, target_lang_uid, description)
		 VALUES (nextval('direction_lookup_uid_seq'), 1, $1, $2, $3, NULL)
		 RETURNING uid, version, is_active, created_at, last_updated_on`,
		dir.Code, dir.SourceLangUID, dir.TargetLangUID,
	).Scan(&dir.UID, &dir.Version, &dir.IsActive, &dir.CreatedAt, &dir.LastUpdatedOn)
	if err != nil {
		t.Fatalf("testhelper: SeedDirection: %v", err)
	}

	return dir
}

// SeedSource inserts an active provenance source and returns it.
func SeedSource(t *testing.T, pool *pgxpool.Pool) domain.Source {
	t.Helper()
	ctx := context.Background()

	src := domain.Source{
		Type:     "dataset",
		Name:     "source-" + uniqueSuffix(),
		Metadata: map[string]any{},
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO source (uid, version, type, name, author, url, metadata)
		 VALUES (nextval('source_uid_seq'), 1, $1, $2, NULL, NULL, '{}'::jsonb)
		 RETURNING uid, version, is_active, created_at, last_updated_on`,
		src.Type, src.Name,
	).Scan(&src.UID, &src.Version, &src.IsActive, &src.CreatedAt, &src.LastUpdatedOn)
	if err != nil {
		t.Fatalf("testhelper: SeedSource: %v", err)
	}

	return src
}

// SeedMethod inserts an active translation method and returns it.
func SeedMethod(t *testing.T, pool *pgxpool.Pool) domain.Method {
	t.Helper()
	ctx := context.Background()

	m := domain.Method{Name: "method-" + uniqueSuffix()}

	err := pool.QueryRow(ctx,
		`INSERT INTO method_lookup (uid, version, name, description, provider)
		 VALUES (nextval('method_lookup_uid_seq'), 1, $1, NULL, NULL)
		 RETURNING uid, version, is_active, created_at, last_updated_on`,
		m.Name,
	).Scan(&m.UID, &m.Version, &m.IsActive, &m.CreatedAt, &m.LastUpdatedOn)
	if err != nil {
		t.Fatalf("testhelper: SeedMethod: %v", err)
	}

	return m
}

// SeedMetric inserts an active scoring metric and returns it.
func SeedMetric(t *testing.T, pool *pgxpool.Pool) domain.Metric {
	t.Helper()
	ctx := context.Background()

	m := domain.Metric{Name: "metric-" + uniqueSuffix()}

	err := pool.QueryRow(ctx,
		`INSERT INTO metric_lookup (uid, version, name, description)
		 VALUES (nextval('metric_lookup_uid_seq'), 1, $1, NULL)
		 RETURNING uid, version, is_active, created_at, last_updated_on`,
		m.Name,
	).Scan(&m.UID, &m.Version, &m.IsActive, &m.CreatedAt, &m.LastUpdatedOn)
	if err != nil {
		t.Fatalf("testhelper: SeedMetric: %v", err)
	}

	return m
}

// SeedSentence inserts an active sentence (version 1) with the given text in
// the given language and returns it. Normalization and the content hash
// follow the same rules the service applies.
func SeedSentence(t *testing.T, pool *pgxpool.Pool, languageUID int64, text string) domain.Sentence {
	t.Helper()
	ctx := context.Background()

	normalized := domain.NormalizeText(text)
	s := domain.Sentence{
		Text:           text,
		TextNormalized: normalized,
		ContentHash:    domain.ContentHash(normalized),
		LanguageUID:    languageUID,
		Status:         domain.SentenceStatusActive,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO sentence (id, version, text, text_normalized, content_hash,
		                       language_uid, source_uid, domain_uid, status, duplicate_of)
		 VALUES (nextval('sentence_id_seq'), 1, $1, $2, $3, $4, NULL, NULL, $5, NULL)
		 RETURNING id, version, is_active, created_at, last_updated_on`,
		s.Text, s.TextNormalized, s.ContentHash, s.LanguageUID, string(s.Status),
	).Scan(&s.UID, &s.Version, &s.IsActive, &s.CreatedAt, &s.LastUpdatedOn)
	if err != nil {
		t.Fatalf("testhelper: SeedSentence: %v", err)
	}

	return s
}

// SeedTranslation inserts an active translation link between the two
// sentences and returns it.
func SeedTranslation(t *testing.T, pool *pgxpool.Pool, sourceID, targetID, directionUID, methodUID int64) domain.Translation {
	t.Helper()
	ctx := context.Background()

	tr := domain.Translation{
		SourceID:     sourceID,
		TargetID:     targetID,
		DirectionUID: directionUID,
		MethodUID:    methodUID,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO translation (id, version, source_id, target_id, direction_uid,
		                          method_uid, method_version, is_synthetic)
		 VALUES (nextval('translation_id_seq'), 1, $1, $2, $3, $4, NULL, FALSE)
		 RETURNING id, version, is_active, created_at, last_updated_on`,
		tr.SourceID, tr.TargetID, tr.DirectionUID, tr.MethodUID,
	).Scan(&tr.UID, &tr.Version, &tr.IsActive, &tr.CreatedAt, &tr.LastUpdatedOn)
	if err != nil {
		t.Fatalf("testhelper: SeedTranslation: %v", err)
	}

	return tr
}

// Truncate wipes the given tables between tests that need a clean slate.
func Truncate(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range tables {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table); err != nil {
			t.Fatalf("testhelper: truncate %s: %v", table, err)
		}
	}
}

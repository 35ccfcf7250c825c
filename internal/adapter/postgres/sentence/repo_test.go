package sentence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/sentence"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/testhelper"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*sentence.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return sentence.New(pool), pool
}

func newSentence(languageUID int64, text string) domain.Sentence {
	normalized := domain.NormalizeText(text)
	return domain.Sentence{
		Text:           text,
		TextNormalized: normalized,
		ContentHash:    domain.ContentHash(normalized),
		LanguageUID:    languageUID,
		Status:         domain.SentenceStatusActive,
	}
}

func TestRepo_Create_AndGetActive(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	created, err := repo.Create(ctx, newSentence(lang.UID, "Hello, world."))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.UID == 0 {
		t.Error("expected non-zero sentence id")
	}
	if created.Version != 1 {
		t.Errorf("Version mismatch: got %d, want 1", created.Version)
	}
	if !created.IsActive {
		t.Error("expected new sentence to be active")
	}
	if created.Text != "Hello, world." {
		t.Errorf("Text mismatch: got %q", created.Text)
	}
	if created.Status != domain.SentenceStatusActive {
		t.Errorf("Status mismatch: got %q", created.Status)
	}

	got, err := repo.GetActive(ctx, created.UID)
	if err != nil {
		t.Fatalf("GetActive: unexpected error: %v", err)
	}
	if got.UID != created.UID || got.Text != created.Text {
		t.Errorf("GetActive mismatch: got %+v, want %+v", got, created)
	}
}

func TestRepo_Revise_KeepsHistory(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	created, err := repo.Create(ctx, newSentence(lang.UID, "Teh quick brown fox."))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	revised, err := repo.Revise(ctx, created.UID, newSentence(lang.UID, "The quick brown fox."))
	if err != nil {
		t.Fatalf("Revise: unexpected error: %v", err)
	}
	if revised.Version != 2 {
		t.Errorf("Version mismatch: got %d, want 2", revised.Version)
	}
	if revised.UID != created.UID {
		t.Errorf("identity changed on revise: got %d, want %d", revised.UID, created.UID)
	}

	history, err := repo.ListHistory(ctx, created.UID)
	if err != nil {
		t.Fatalf("ListHistory: unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length: got %d, want 2", len(history))
	}
	if history[0].IsActive {
		t.Error("superseded version should be inactive")
	}
	if !history[1].IsActive {
		t.Error("latest version should be active")
	}
	if history[0].Text != "Teh quick brown fox." {
		t.Errorf("original text lost from history: got %q", history[0].Text)
	}
}

func TestRepo_FindActiveByHash(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)
	other := testhelper.SeedLanguage(t, pool)

	created, err := repo.Create(ctx, newSentence(lang.UID, "Same content twice?"))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.FindActiveByHash(ctx, lang.UID, created.ContentHash)
	if err != nil {
		t.Fatalf("FindActiveByHash: unexpected error: %v", err)
	}
	if got.UID != created.UID {
		t.Errorf("FindActiveByHash: got id %d, want %d", got.UID, created.UID)
	}

	// Same hash, different language: no match.
	_, err = repo.FindActiveByHash(ctx, other.UID, created.ContentHash)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindActiveByHash across languages: error = %v, want %v", err, domain.ErrNotFound)
	}
}

func TestRepo_Search(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	if _, err := repo.Create(ctx, newSentence(lang.UID, "The cherry blossoms are in full bloom.")); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, newSentence(lang.UID, "Trains run on time here.")); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	term := "cherry blossoms"
	results, err := repo.Search(ctx, domain.SentenceFilter{LanguageUID: &lang.UID, Search: &term})
	if err != nil {
		t.Fatalf("Search: unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search: got %d results, want 1", len(results))
	}
	if results[0].Text != "The cherry blossoms are in full bloom." {
		t.Errorf("Search: wrong sentence: %q", results[0].Text)
	}

	// Language filter alone returns everything in that language.
	all, err := repo.Search(ctx, domain.SentenceFilter{LanguageUID: &lang.UID})
	if err != nil {
		t.Fatalf("Search: unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Search by language: got %d results, want 2", len(all))
	}
}

func TestRepo_Search_LiteralWildcards(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	if _, err := repo.Create(ctx, newSentence(lang.UID, "The flag rate_limit applies here.")); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, newSentence(lang.UID, "The flag ratealimit applies here.")); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	// An underscore in the term is a literal character, not a single-char
	// wildcard, so only the exact spelling matches.
	term := "rate_limit"
	results, err := repo.Search(ctx, domain.SentenceFilter{LanguageUID: &lang.UID, Search: &term})
	if err != nil {
		t.Fatalf("Search: unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search: got %d results, want 1", len(results))
	}
	if results[0].Text != "The flag rate_limit applies here." {
		t.Errorf("Search: wrong sentence: %q", results[0].Text)
	}
}

func TestRepo_FindDuplicatePairs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	first, err := repo.Create(ctx, newSentence(lang.UID, "An original thought, truly unique."))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	second, err := repo.Create(ctx, newSentence(lang.UID, "an  original thought,  truly unique."))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if first.ContentHash != second.ContentHash {
		t.Fatalf("fixtures should normalize to the same hash")
	}

	pairs, err := repo.FindDuplicatePairs(ctx)
	if err != nil {
		t.Fatalf("FindDuplicatePairs: unexpected error: %v", err)
	}

	found := false
	for _, p := range pairs {
		if p.ID == second.UID && p.OriginalID == first.UID {
			found = true
		}
		if p.ID == first.UID {
			t.Errorf("earliest id %d reported as a duplicate of %d", p.ID, p.OriginalID)
		}
	}
	if !found {
		t.Errorf("expected pair (%d -> %d) in %v", second.UID, first.UID, pairs)
	}
}

func TestRepo_GetActive_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetActive(context.Background(), 999999999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetActive: error = %v, want %v", err, domain.ErrNotFound)
	}
}

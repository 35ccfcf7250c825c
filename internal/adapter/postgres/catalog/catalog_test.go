package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	postgres "github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/catalog"
	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/testhelper"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

func uniqueCode(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

func TestLanguageRepo_Create_AndGetByCode(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := catalog.NewLanguageRepo(pool)
	ctx := context.Background()

	code := uniqueCode("en")
	created, err := repo.Create(ctx, domain.Language{Code: code, Name: "English"})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.Version != 1 || !created.IsActive {
		t.Errorf("got version=%d active=%v, want 1/true", created.Version, created.IsActive)
	}

	got, err := repo.GetByCode(ctx, code)
	if err != nil {
		t.Fatalf("GetByCode: unexpected error: %v", err)
	}
	if got.UID != created.UID || got.Name != "English" {
		t.Errorf("GetByCode mismatch: %+v", got)
	}

	_, err = repo.GetByCode(ctx, uniqueCode("zz"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByCode unknown: error = %v, want %v", err, domain.ErrNotFound)
	}
}

func TestLanguageRepo_Revise_OneActiveVersion(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := catalog.NewLanguageRepo(pool)
	ctx := context.Background()

	code := uniqueCode("pt")
	created, err := repo.Create(ctx, domain.Language{Code: code, Name: "Portugese"})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	revised, err := repo.Revise(ctx, created.UID, domain.Language{Code: code, Name: "Portuguese"})
	if err != nil {
		t.Fatalf("Revise: unexpected error: %v", err)
	}
	if revised.Version != 2 {
		t.Errorf("Version mismatch: got %d, want 2", revised.Version)
	}

	// The backstop index allows exactly one active row per uid.
	var active int
	err = pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM language WHERE uid = $1 AND is_active`, created.UID,
	).Scan(&active)
	if err != nil {
		t.Fatalf("count active rows: %v", err)
	}
	if active != 1 {
		t.Errorf("active rows: got %d, want 1", active)
	}

	// The old version stays readable.
	old, err := repo.GetVersion(ctx, created.UID, 1)
	if err != nil {
		t.Fatalf("GetVersion: unexpected error: %v", err)
	}
	if old.Name != "Portugese" || old.IsActive {
		t.Errorf("version 1 mismatch: %+v", old)
	}
}

func TestLanguageRepo_Deactivate(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := catalog.NewLanguageRepo(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Language{Code: uniqueCode("sv"), Name: "Swedish"})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if err := repo.Deactivate(ctx, created.UID); err != nil {
		t.Fatalf("Deactivate: unexpected error: %v", err)
	}

	_, err = repo.GetActive(ctx, created.UID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetActive after deactivate: error = %v, want %v", err, domain.ErrNotFound)
	}

	// History is still there.
	history, err := repo.ListHistory(ctx, created.UID)
	if err != nil {
		t.Fatalf("ListHistory: unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].IsActive {
		t.Errorf("history after deactivate: %+v", history)
	}

	// Deactivating again maps to not found.
	err = repo.Deactivate(ctx, created.UID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Deactivate: error = %v, want %v", err, domain.ErrNotFound)
	}
}

func TestDirectionRepo_CountActiveByLanguage(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := catalog.NewDirectionRepo(pool)
	ctx := context.Background()

	en := testhelper.SeedLanguage(t, pool)
	ja := testhelper.SeedLanguage(t, pool)
	de := testhelper.SeedLanguage(t, pool)

	testhelper.SeedDirection(t, pool, en.UID, ja.UID)
	testhelper.SeedDirection(t, pool, ja.UID, en.UID)

	count, err := repo.CountActiveByLanguage(ctx, en.UID)
	if err != nil {
		t.Fatalf("CountActiveByLanguage: unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("count for referenced language: got %d, want 2", count)
	}

	count, err = repo.CountActiveByLanguage(ctx, de.UID)
	if err != nil {
		t.Fatalf("CountActiveByLanguage: unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("count for unreferenced language: got %d, want 0", count)
	}
}

func TestSourceRepo_MetadataRoundTrip(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := catalog.NewSourceRepo(pool)
	ctx := context.Background()

	name := uniqueCode("jparacrawl")
	created, err := repo.Create(ctx, domain.Source{
		Type: "dataset",
		Name: name,
		Metadata: map[string]any{
			"license": "custom",
			"release": "3.0",
		},
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetByName(ctx, name)
	if err != nil {
		t.Fatalf("GetByName: unexpected error: %v", err)
	}
	if got.UID != created.UID {
		t.Errorf("GetByName: got uid %d, want %d", got.UID, created.UID)
	}
	if got.Metadata["license"] != "custom" || got.Metadata["release"] != "3.0" {
		t.Errorf("Metadata mismatch: %v", got.Metadata)
	}
}

func TestLanguageRepo_Revise_ConcurrentWritersKeepOneActive(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := catalog.NewLanguageRepo(pool)
	tm := postgres.NewTxManager(pool)
	ctx := context.Background()

	code := uniqueCode("de")
	created, err := repo.Create(ctx, domain.Language{Code: code, Name: "German"})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	// Several writers race to revise the same identity. The FOR UPDATE lock
	// serializes them; a loser whose locked row was flipped inactive under
	// it reports not-found, and the backstop index turns any double-activate
	// into a conflict. Whatever the interleaving, exactly one row may stay
	// active and versions stay contiguous.
	const writers = 4
	errs := make([]error, writers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = tm.RunInTx(ctx, func(txCtx context.Context) error {
				_, err := repo.Revise(txCtx, created.UID, domain.Language{
					Code: code,
					Name: fmt.Sprintf("German (rev %d)", i),
				})
				return err
			})
		}()
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrConflict):
		default:
			t.Fatalf("writer %d: unexpected error: %v", i, err)
		}
	}
	if succeeded == 0 {
		t.Fatal("no concurrent revision succeeded")
	}

	var active, maxVersion int
	err = pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE is_active), MAX(version) FROM language WHERE uid = $1`,
		created.UID,
	).Scan(&active, &maxVersion)
	if err != nil {
		t.Fatalf("inspect versions: %v", err)
	}
	if active != 1 {
		t.Errorf("active rows: got %d, want 1", active)
	}
	if maxVersion != 1+succeeded {
		t.Errorf("max version: got %d, want %d", maxVersion, 1+succeeded)
	}
}

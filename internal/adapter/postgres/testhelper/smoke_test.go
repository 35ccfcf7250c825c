package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	lang := SeedLanguage(t, pool)

	var code string
	err := pool.QueryRow(
		context.Background(),
		`SELECT code FROM language WHERE uid = $1 AND is_active`,
		lang.UID,
	).Scan(&code)
	if err != nil {
		t.Fatalf("expected language in DB, got error: %v", err)
	}

	if code != lang.Code {
		t.Fatalf("expected code %q, got %q", lang.Code, code)
	}
}

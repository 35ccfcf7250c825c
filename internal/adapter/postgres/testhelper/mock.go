package testhelper

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	postgres "github.com/bhashasetu/corpus-catalog/internal/adapter/postgres"
)

// NewMockQuerier returns a pgxmock-backed Querier for unit tests that
// exercise repository SQL without a live database.
func NewMockQuerier(t *testing.T) (postgres.Querier, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, mock
}

// ExpectationsWereMet fails the test when the mock saw fewer or different
// queries than the test registered.
func ExpectationsWereMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet mock expectations: %v", err)
	}
}

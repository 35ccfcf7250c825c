package version

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/bhashasetu/corpus-catalog/internal/adapter/postgres/testhelper"
	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

var languageCfg = Config{
	Entity:   "language",
	Table:    "language",
	IDColumn: "uid",
	Seq:      "language_uid_seq",
	Columns:  []string{"code", "dialect", "name"},
}

func languageValues(l domain.Language) []any {
	return []any{l.Code, l.Dialect, l.Name}
}

var languageCols = []string{"uid", "version", "is_active", "created_at", "last_updated_on", "code", "dialect", "name"}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestBase_Create(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "inserts version one",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(languageCols).
					AddRow(int64(1), 1, true, now, now, "en", nil, "English")
				mock.ExpectQuery(`INSERT INTO language`).
					WithArgs(1, true, "en", (*string)(nil), "English").
					WillReturnRows(rows)
			},
		},
		{
			name: "duplicate active row maps to conflict",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO language`).
					WithArgs(1, true, "en", (*string)(nil), "English").
					WillReturnError(uniqueViolation("language_one_active_idx"))
			},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			querier, mock := testhelper.NewMockQuerier(t)
			repo := New[domain.Language](querier, languageCfg, languageValues)
			tt.setup(mock)

			got, err := repo.Create(context.Background(), domain.Language{Code: "en", Name: "English"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}
			if got.UID != 1 || got.Version != 1 || !got.IsActive {
				t.Errorf("Create() = uid=%d version=%d active=%v, want 1/1/true", got.UID, got.Version, got.IsActive)
			}

			testhelper.ExpectationsWereMet(t, mock)
		})
	}
}

func TestBase_Revise(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantVer int
		wantErr error
	}{
		{
			name: "flips old version and inserts the next",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT version FROM language WHERE uid = \$1 AND is_active FOR UPDATE`).
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(2))
				mock.ExpectExec(`UPDATE language SET is_active = FALSE`).
					WithArgs(int64(7), 2).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				rows := pgxmock.NewRows(languageCols).
					AddRow(int64(7), 3, true, now, now, "en", nil, "English (US)")
				mock.ExpectQuery(`INSERT INTO language`).
					WithArgs(int64(7), 3, true, "en", (*string)(nil), "English (US)").
					WillReturnRows(rows)
			},
			wantVer: 3,
		},
		{
			name: "no active version maps to not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT version FROM language WHERE uid = \$1 AND is_active FOR UPDATE`).
					WithArgs(int64(7)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			querier, mock := testhelper.NewMockQuerier(t)
			repo := New[domain.Language](querier, languageCfg, languageValues)
			tt.setup(mock)

			got, err := repo.Revise(context.Background(), 7, domain.Language{Code: "en", Name: "English (US)"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Revise() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Revise() unexpected error: %v", err)
			}
			if got.Version != tt.wantVer || !got.IsActive {
				t.Errorf("Revise() = version=%d active=%v, want %d/true", got.Version, got.IsActive, tt.wantVer)
			}

			testhelper.ExpectationsWereMet(t, mock)
		})
	}
}

func TestBase_Deactivate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "flips the active row", rows: 1},
		{name: "nothing active maps to not found", rows: 0, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			querier, mock := testhelper.NewMockQuerier(t)
			repo := New[domain.Language](querier, languageCfg, languageValues)
			mock.ExpectExec(`UPDATE language SET is_active = FALSE`).
				WithArgs(int64(5)).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rows))

			err := repo.Deactivate(context.Background(), 5)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Deactivate() error = %v, want %v", err, tt.wantErr)
			}

			testhelper.ExpectationsWereMet(t, mock)
		})
	}
}

func TestBase_GetActive_NotFound(t *testing.T) {
	t.Parallel()

	querier, mock := testhelper.NewMockQuerier(t)
	repo := New[domain.Language](querier, languageCfg, languageValues)
	mock.ExpectQuery(`SELECT uid, version, is_active`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(languageCols))

	_, err := repo.GetActive(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetActive() error = %v, want %v", err, domain.ErrNotFound)
	}

	testhelper.ExpectationsWereMet(t, mock)
}

func TestBase_ListHistory(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("returns all versions oldest first", func(t *testing.T) {
		t.Parallel()

		querier, mock := testhelper.NewMockQuerier(t)
		repo := New[domain.Language](querier, languageCfg, languageValues)
		rows := pgxmock.NewRows(languageCols).
			AddRow(int64(3), 1, false, now, now, "ja", nil, "Japanese").
			AddRow(int64(3), 2, true, now, now, "ja", nil, "Japanese (JP)")
		mock.ExpectQuery(`SELECT uid, version, is_active`).
			WithArgs(int64(3)).
			WillReturnRows(rows)

		history, err := repo.ListHistory(context.Background(), 3)
		if err != nil {
			t.Fatalf("ListHistory() unexpected error: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("ListHistory() returned %d versions, want 2", len(history))
		}
		if history[0].Version != 1 || history[1].Version != 2 {
			t.Errorf("ListHistory() versions = %d,%d, want 1,2", history[0].Version, history[1].Version)
		}
		if history[0].IsActive || !history[1].IsActive {
			t.Error("ListHistory() active flags out of order")
		}
	})

	t.Run("unknown uid maps to not found", func(t *testing.T) {
		t.Parallel()

		querier, mock := testhelper.NewMockQuerier(t)
		repo := New[domain.Language](querier, languageCfg, languageValues)
		mock.ExpectQuery(`SELECT uid, version, is_active`).
			WithArgs(int64(404)).
			WillReturnRows(pgxmock.NewRows(languageCols))

		_, err := repo.ListHistory(context.Background(), 404)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("ListHistory() error = %v, want %v", err, domain.ErrNotFound)
		}
	})
}

package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/reposql/internal/testutil"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenMigrate(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// migrating twice is a no-op
	require.NoError(t, store.Migrate())
	assert.Equal(t, ":memory:", store.Path())
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()

	assert.ErrorIs(t, store.Migrate(), errNotOpened)
	assert.ErrorIs(t, store.RecordRun(ctx, &ParseRun{}), errNotOpened)
	_, err := store.GetRun(ctx, "x")
	assert.ErrorIs(t, err, errNotOpened)
	_, err = store.LatestByHash(ctx, "x")
	assert.ErrorIs(t, err, errNotOpened)
	_, err = store.ListRuns(ctx, 1)
	assert.ErrorIs(t, err, errNotOpened)
	_, err = store.GetMigrationVersion()
	assert.ErrorIs(t, err, errNotOpened)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_RecordAndGetRun(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		run  ParseRun
	}{
		{
			name: "successful parse",
			run: ParseRun{
				Source:      "schema.sql",
				ContentHash: ContentHash("CREATE TABLE t (a INT);"),
				ParserID:    "STANDARD",
				Success:     true,
				Statements:  1,
				DurationMS:  3,
			},
		},
		{
			name: "failed parse keeps error",
			run: ParseRun{
				Source:      "stdin",
				ContentHash: ContentHash("CREATE TABLE"),
				ParserID:    "ORACLE",
				Error:       "1:13: expected table name",
			},
		},
		{
			name: "no dialect",
			run: ParseRun{
				Source:      "api",
				ContentHash: ContentHash("hello"),
				Error:       "no applicable dialect",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := tt.run
			require.NoError(t, store.RecordRun(ctx, &run))
			require.NotEmpty(t, run.ID)
			require.False(t, run.CreatedAt.IsZero())

			got, err := store.GetRun(ctx, run.ID)
			require.NoError(t, err)
			assert.Equal(t, run.ID, got.ID)
			assert.Equal(t, run.Source, got.Source)
			assert.Equal(t, run.ContentHash, got.ContentHash)
			assert.Equal(t, run.ParserID, got.ParserID)
			assert.Equal(t, run.Success, got.Success)
			assert.Equal(t, run.Error, got.Error)
			assert.Equal(t, run.Statements, got.Statements)
			assert.Equal(t, run.DurationMS, got.DurationMS)
			assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Millisecond)
		})
	}
}

func TestSQLiteStore_GetRunNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestSQLiteStore_LatestByHash(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	hash := ContentHash("CREATE VIEW v AS SELECT 1;")
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i, parser := range []string{"STANDARD", "POSTGRES", "DERBY"} {
		require.NoError(t, store.RecordRun(ctx, &ParseRun{
			Source:      "v.sql",
			ContentHash: hash,
			ParserID:    parser,
			Success:     true,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.RecordRun(ctx, &ParseRun{
		Source:      "other.sql",
		ContentHash: ContentHash("other"),
		ParserID:    "ORACLE",
		CreatedAt:   base.Add(time.Hour),
	}))

	got, err := store.LatestByHash(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, "DERBY", got.ParserID)

	_, err = store.LatestByHash(ctx, ContentHash("never parsed"))
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := range 5 {
		require.NoError(t, store.RecordRun(ctx, &ParseRun{
			Source:      "doc.sql",
			ContentHash: ContentHash(string(rune('a' + i))),
			Statements:  i,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}))
	}

	tests := []struct {
		name       string
		limit      int
		wantCounts []int
	}{
		{name: "limited newest first", limit: 2, wantCounts: []int{4, 3}},
		{name: "zero means all", limit: 0, wantCounts: []int{4, 3, 2, 1, 0}},
		{name: "limit above size", limit: 10, wantCounts: []int{4, 3, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.ListRuns(ctx, tt.limit)
			require.NoError(t, err)
			got := make([]int, len(runs))
			for i, r := range runs {
				got[i] = r.Statements
			}
			assert.Equal(t, tt.wantCounts, got)
		})
	}
}

func TestContentHash(t *testing.T) {
	a := ContentHash("CREATE TABLE t (a INT);")
	assert.Len(t, a, 16)
	assert.Equal(t, a, ContentHash("CREATE TABLE t (a INT);"))
	assert.NotEqual(t, a, ContentHash("CREATE TABLE t (b INT);"))
}

func TestSQLiteStore_DatabaseFailures(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("disk I/O error")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		call      func(s *SQLiteStore) error
		errMsg    string
	}{
		{
			name: "record run insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO parse_runs").WillReturnError(dbErr)
			},
			call: func(s *SQLiteStore) error {
				return s.RecordRun(ctx, &ParseRun{Source: "x.sql"})
			},
			errMsg: "failed to record run",
		},
		{
			name: "get run query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM parse_runs WHERE id").WillReturnError(dbErr)
			},
			call: func(s *SQLiteStore) error {
				_, err := s.GetRun(ctx, "id-1")
				return err
			},
			errMsg: "failed to get run",
		},
		{
			name: "latest by hash query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM parse_runs WHERE content_hash").WillReturnError(dbErr)
			},
			call: func(s *SQLiteStore) error {
				_, err := s.LatestByHash(ctx, "abc")
				return err
			},
			errMsg: "failed to get run by hash",
		},
		{
			name: "list runs query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM parse_runs ORDER BY").WillReturnError(dbErr)
			},
			call: func(s *SQLiteStore) error {
				_, err := s.ListRuns(ctx, 5)
				return err
			},
			errMsg: "failed to list runs",
		},
		{
			name: "list runs row error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "source", "content_hash", "parser_id", "success",
					"error", "statements", "duration_ms", "created_at",
				}).
					AddRow("id-1", "a.sql", "h", "STANDARD", true, nil, 1, 2, int64(0)).
					RowError(0, dbErr)
				mock.ExpectQuery("SELECT .* FROM parse_runs ORDER BY").WillReturnRows(rows)
			},
			call: func(s *SQLiteStore) error {
				_, err := s.ListRuns(ctx, 5)
				return err
			},
			errMsg: "failed to list runs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tt.setupMock(mock)
			store := NewSQLiteStore(testutil.NewTestLogger(t))
			store.db = db

			err = tt.call(store)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.ErrorIs(t, err, dbErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-chatbot/client/internal/storage"
)

func setupSQLiteKV(t *testing.T) (*storage.SQLiteKV, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewSQLiteKV(db), mockDB
}

func TestSQLiteKV_Get(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("SELECT value FROM kv_store WHERE key = ?")

	t.Run("Success", func(t *testing.T) {
		kv, mockDB := setupSQLiteKV(t)
		mockDB.ExpectQuery(query).WithArgs("weather-chatbot-theme").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("dark"))

		value, err := kv.Get(ctx, "weather-chatbot-theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", value)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - Missing key", func(t *testing.T) {
		kv, mockDB := setupSQLiteKV(t)
		mockDB.ExpectQuery(query).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := kv.Get(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - Backend error is wrapped", func(t *testing.T) {
		kv, mockDB := setupSQLiteKV(t)
		dbErr := errors.New("disk I/O error")
		mockDB.ExpectQuery(query).WithArgs("k").WillReturnError(dbErr)

		_, err := kv.Get(ctx, "k")
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)

		var storageErr *storage.StorageError
		require.True(t, errors.As(err, &storageErr))
		assert.Equal(t, "get", storageErr.Op)
		assert.Equal(t, "k", storageErr.Key)
	})
}

func TestSQLiteKV_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Upsert", func(t *testing.T) {
		kv, mockDB := setupSQLiteKV(t)
		mockDB.ExpectExec("INSERT INTO kv_store").
			WithArgs("weather-chatbot-active", "s1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, kv.Set(ctx, "weather-chatbot-active", "s1"))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - Exec error", func(t *testing.T) {
		kv, mockDB := setupSQLiteKV(t)
		mockDB.ExpectExec("INSERT INTO kv_store").WillReturnError(errors.New("database is locked"))

		err := kv.Set(ctx, "k", "v")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database is locked")
	})
}

func TestSQLiteKV_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Multiple keys", func(t *testing.T) {
		kv, mockDB := setupSQLiteKV(t)
		mockDB.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store WHERE key IN (?,?)")).
			WithArgs("a", "b").
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, kv.Delete(ctx, "a", "b"))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Success - No keys is a no-op", func(t *testing.T) {
		kv, mockDB := setupSQLiteKV(t)
		require.NoError(t, kv.Delete(ctx))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

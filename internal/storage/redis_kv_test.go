package storage_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-chatbot/client/internal/storage"
)

const testRedisPrefix = "weather-chatbot:"

func setupRedisKV(t *testing.T) (*storage.RedisKV, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return storage.NewRedisKV(rdb, testRedisPrefix), mr
}

func TestRedisKV_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		kv, mr := setupRedisKV(t)
		require.NoError(t, mr.Set(testRedisPrefix+"weather-chatbot-theme", "dark"))

		// ACT
		value, err := kv.Get(ctx, "weather-chatbot-theme")

		// ASSERT
		require.NoError(t, err)
		assert.Equal(t, "dark", value)
	})

	t.Run("Failure - Missing key", func(t *testing.T) {
		// ARRANGE
		kv, _ := setupRedisKV(t)

		// ACT
		_, err := kv.Get(ctx, "weather-chatbot-language")

		// ASSERT
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Failure - Unprefixed key is not visible", func(t *testing.T) {
		// ARRANGE
		kv, mr := setupRedisKV(t)
		require.NoError(t, mr.Set("weather-chatbot-theme", "dark"))

		// ACT
		_, err := kv.Get(ctx, "weather-chatbot-theme")

		// ASSERT
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Failure - Server unavailable", func(t *testing.T) {
		// ARRANGE
		kv, mr := setupRedisKV(t)
		mr.Close()

		// ACT
		_, err := kv.Get(ctx, "weather-chatbot-theme")

		// ASSERT
		var storageErr *storage.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "get", storageErr.Op)
		assert.Equal(t, "weather-chatbot-theme", storageErr.Key)
		assert.NotErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestRedisKV_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Stored under the prefix", func(t *testing.T) {
		// ARRANGE
		kv, mr := setupRedisKV(t)

		// ACT
		err := kv.Set(ctx, "weather-chatbot-active-session", "id-1")

		// ASSERT
		require.NoError(t, err)
		mr.CheckGet(t, testRedisPrefix+"weather-chatbot-active-session", "id-1")
		assert.False(t, mr.Exists("weather-chatbot-active-session"))
		assert.Zero(t, mr.TTL(testRedisPrefix+"weather-chatbot-active-session"))
	})

	t.Run("Success - Overwrites", func(t *testing.T) {
		// ARRANGE
		kv, _ := setupRedisKV(t)
		require.NoError(t, kv.Set(ctx, "weather-chatbot-theme", "light"))

		// ACT
		require.NoError(t, kv.Set(ctx, "weather-chatbot-theme", "dark"))

		// ASSERT
		value, err := kv.Get(ctx, "weather-chatbot-theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", value)
	})

	t.Run("Failure - Server unavailable", func(t *testing.T) {
		// ARRANGE
		kv, mr := setupRedisKV(t)
		mr.Close()

		// ACT
		err := kv.Set(ctx, "weather-chatbot-theme", "dark")

		// ASSERT
		var storageErr *storage.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "set", storageErr.Op)
	})
}

func TestRedisKV_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Several keys", func(t *testing.T) {
		// ARRANGE
		kv, mr := setupRedisKV(t)
		require.NoError(t, mr.Set(testRedisPrefix+storage.SessionsKey, "[]"))
		require.NoError(t, mr.Set(testRedisPrefix+storage.ActiveSessionKey, "id-1"))
		require.NoError(t, mr.Set(testRedisPrefix+storage.ThemeKey, "dark"))

		// ACT
		err := kv.Delete(ctx, storage.SessionsKey, storage.ActiveSessionKey)

		// ASSERT
		require.NoError(t, err)
		assert.False(t, mr.Exists(testRedisPrefix+storage.SessionsKey))
		assert.False(t, mr.Exists(testRedisPrefix+storage.ActiveSessionKey))
		mr.CheckGet(t, testRedisPrefix+storage.ThemeKey, "dark")
	})

	t.Run("Success - Missing keys are ignored", func(t *testing.T) {
		// ARRANGE
		kv, _ := setupRedisKV(t)

		// ACT
		err := kv.Delete(ctx, "weather-chatbot-theme")

		// ASSERT
		assert.NoError(t, err)
	})

	t.Run("Success - No keys skips the server", func(t *testing.T) {
		// ARRANGE
		kv, mr := setupRedisKV(t)
		mr.Close()

		// ACT
		err := kv.Delete(ctx)

		// ASSERT
		assert.NoError(t, err)
	})

	t.Run("Failure - Server unavailable", func(t *testing.T) {
		// ARRANGE
		kv, mr := setupRedisKV(t)
		mr.Close()

		// ACT
		err := kv.Delete(ctx, storage.SessionsKey, storage.ActiveSessionKey)

		// ASSERT
		var storageErr *storage.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "delete", storageErr.Op)
		assert.Equal(t, storage.SessionsKey, storageErr.Key)
	})
}

func TestRedisKV_Ping(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		kv, _ := setupRedisKV(t)
		assert.NoError(t, kv.Ping(ctx))
	})

	t.Run("Failure - Server unavailable", func(t *testing.T) {
		kv, mr := setupRedisKV(t)
		mr.Close()

		var storageErr *storage.StorageError
		require.ErrorAs(t, kv.Ping(ctx), &storageErr)
		assert.Equal(t, "ping", storageErr.Op)
	})
}

func TestRedisKV_BacksSessionStore(t *testing.T) {
	// ARRANGE
	ctx := context.Background()
	kv, mr := setupRedisKV(t)
	store := storage.NewSessionStore(kv)

	// ACT
	require.NoError(t, store.SetActiveSessionID(ctx, "id-1"))
	require.NoError(t, store.ClearAllSessions(ctx))

	// ASSERT
	assert.Empty(t, store.ActiveSessionID(ctx))
	assert.Empty(t, store.Sessions(ctx))
	assert.Empty(t, mr.Keys())
}

package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizbot/internal/cache"
	"quizbot/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := cache.BoardMessageKey("quiz-1")

	t.Run("Hit", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(`{"chat_id":-100,"message_id":55,"page":0}`)

		val, err := adapter.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `{"chat_id":-100,"message_id":55,"page":0}`, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissTranslatesToCacheMiss", func(t *testing.T) {
		mock.ExpectGet(key).RedisNil()

		_, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TransportErrorPassesThrough", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(errors.New("connection refused"))

		_, err := adapter.Get(ctx, key)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrCacheMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := cache.BoardMessageKey("quiz-1")
	mock.ExpectSet(key, "payload", time.Minute).SetVal("OK")

	err := adapter.Set(ctx, key, "payload", time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := cache.BoardMessageKey("quiz-1")
	mock.ExpectDel(key).SetVal(1)

	err := adapter.Delete(ctx, key)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardMessageKeyShape(t *testing.T) {
	assert.Equal(t, "quizbot:leaderboard:message:quiz-1", cache.BoardMessageKey("quiz-1"))
}

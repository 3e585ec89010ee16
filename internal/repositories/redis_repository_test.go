package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/ovenfresh/bakery-platform/internal/config"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}

	t.Run("StoreRefreshToken_Success", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewTokenRepo(client, cfg)

		userID := uuid.New()
		token := uuid.NewString()
		ttl := 24 * time.Hour

		mock.ExpectSet("refresh_token:"+token, userID.String(), ttl).SetVal("OK")

		err := repo.StoreRefreshToken(ctx, token, userID, ttl)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConsumeRefreshToken_Success", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewTokenRepo(client, cfg)

		userID := uuid.New()
		token := uuid.NewString()

		mock.ExpectGetDel("refresh_token:" + token).SetVal(userID.String())

		got, err := repo.ConsumeRefreshToken(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, userID, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConsumeRefreshToken_MissingOrReplayed", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewTokenRepo(client, cfg)

		token := uuid.NewString()

		mock.ExpectGetDel("refresh_token:" + token).RedisNil()

		got, err := repo.ConsumeRefreshToken(ctx, token)

		assert.Equal(t, uuid.Nil, got)
		assert.ErrorIs(t, err, repository.ErrTokenNotFound)
	})

	t.Run("ConsumeRefreshToken_CorruptPayload", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewTokenRepo(client, cfg)

		token := uuid.NewString()

		mock.ExpectGetDel("refresh_token:" + token).SetVal("not-a-uuid")

		got, err := repo.ConsumeRefreshToken(ctx, token)

		assert.Equal(t, uuid.Nil, got)
		assert.Error(t, err)
	})

	t.Run("DeleteRefreshToken_Success", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewTokenRepo(client, cfg)

		token := uuid.NewString()

		mock.ExpectDel("refresh_token:" + token).SetVal(1)

		assert.NoError(t, repo.DeleteRefreshToken(ctx, token))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginChecker_IsLogged(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	checker := NewLoginChecker(time.Hour, db)

	token := "valid_token"
	createdAt := time.Now().Add(-time.Minute)
	mock.ExpectGet(sessionKeyPrefix + token).SetVal(fmt.Sprintf("%d", createdAt.Unix()))

	logged, err := checker.IsLogged(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, logged)
}

func TestLoginChecker_IsLogged_Expired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	checker := NewLoginChecker(time.Hour, db)

	token := "stale_token"
	createdAt := time.Now().Add(-2 * time.Hour)
	mock.ExpectGet(sessionKeyPrefix + token).SetVal(fmt.Sprintf("%d", createdAt.Unix()))

	logged, err := checker.IsLogged(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, logged)
}

func TestLoginChecker_IsLogged_UnknownToken(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	checker := NewLoginChecker(time.Hour, db)
	mock.ExpectGet(sessionKeyPrefix + "nope").RedisNil()

	logged, err := checker.IsLogged(context.Background(), "nope")
	require.Error(t, err)
	assert.False(t, logged)
}

package di

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"account_backend/internal/platform/tokencache"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func TestNewTokenRepository(t *testing.T) {
	gdb := openTestDB(t)

	t.Run("without redis uses the database", func(t *testing.T) {
		repo := NewTokenRepository(nil, gdb, time.Hour)

		_, cached := repo.(*tokencache.CachingTokenRepository)
		assert.False(t, cached)
	})

	t.Run("with redis wraps the cache", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		repo := NewTokenRepository(rdb, gdb, time.Hour)

		_, cached := repo.(*tokencache.CachingTokenRepository)
		assert.True(t, cached)
	})
}

func TestNewAuth(t *testing.T) {
	auth := NewAuth(openTestDB(t), nil, 4, time.Hour)

	assert.NotNil(t, auth.Handler)
	assert.NotNil(t, auth.AuthRequired)
}

// Package di はフィーチャーの依存関係を組み立てます。
package di

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "account_backend/internal/feature/auth/adapters"
	authhandler "account_backend/internal/feature/auth/transport/handler"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/bearer"
	"account_backend/internal/platform/db"
	platformhandler "account_backend/internal/platform/http/handler"
	"account_backend/internal/platform/tokencache"
)

// Auth はauthフィーチャーの組み立て済みコンポーネントです。
type Auth struct {
	Handler      *authhandler.AuthHandler
	AuthRequired gin.HandlerFunc
}

// NewTokenRepository creates a TokenRepository implementation.
// If Redis is available, lookups go through the Redis cache.
// Otherwise, it uses the database directly.
func NewTokenRepository(rdb *redis.Client, gdb *gorm.DB, ttl time.Duration) usecase.TokenRepository {
	tokens := authadapters.NewTokenPostgres(gdb)
	if rdb != nil {
		return tokencache.NewCachingTokenRepository(rdb, ttl, tokens, "tokens")
	}
	return tokens
}

// NewCredentialStore はデータベースを使うCredentialStoreを生成します。
func NewCredentialStore(gdb *gorm.DB, hashCost int) *usecase.CredentialStore {
	return usecase.NewCredentialStore(authadapters.NewUserPostgres(gdb), hashCost)
}

// NewAuth はリポジトリからハンドラーと認証ミドルウェアまでを組み立てます。
func NewAuth(gdb *gorm.DB, rdb *redis.Client, hashCost int, tokenTTL time.Duration) *Auth {
	credentials := NewCredentialStore(gdb, hashCost)
	tokens := usecase.NewTokenIssuer(NewTokenRepository(rdb, gdb, tokenTTL))
	authUC := usecase.NewAuthUsecase(credentials, tokens)

	return &Auth{
		Handler:      authhandler.NewAuthHandler(authUC),
		AuthRequired: bearer.AuthRequired(authUC),
	}
}

// NewHealthHandler はDBと（設定されていれば）Redisを確認するHealthHandlerを生成します。
func NewHealthHandler(gdb *gorm.DB, rdb *redis.Client) *platformhandler.HealthHandler {
	checks := map[string]platformhandler.Pinger{
		"db": db.NewPinger(gdb),
	}
	if rdb != nil {
		checks["redis"] = platformhandler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	return platformhandler.NewHealthHandler(checks)
}

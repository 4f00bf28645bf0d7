// Package router はHTTPルーティングとミドルウェア構成を定義します。
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authhandler "account_backend/internal/feature/auth/transport/handler"
	platformhandler "account_backend/internal/platform/http/handler"
)

// HeaderRequestID はリクエストIDを伝搬するヘッダー名です。
const HeaderRequestID = "X-Request-ID"

// ContextRequestID はリクエストIDを格納するgin.Contextのキーです。
const ContextRequestID = "request_id"

// NewRouter はルートとミドルウェアを登録したgin.Engineを返します。
// authRequired は /api/auth/me/ に適用される認証ミドルウェアです。
func NewRouter(authHandler *authhandler.AuthHandler, health *platformhandler.HealthHandler,
	authRequired gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())

	// 未対応メソッドは404ではなく405を返す
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	api := r.Group("/api/auth")
	{
		// 新規ユーザー登録
		api.POST("/signup/", authHandler.Signup)
		// ログイン（トークン発行）
		api.POST("/login/", authHandler.Login)

		// 認証必須のルート
		me := api.Group("/me/", authRequired)
		me.GET("", authHandler.Me)
		me.PATCH("", authHandler.UpdateMe)
	}

	return r
}

// RequestLogger はリクエストごとにIDを付与し、完了時にslogで記録するミドルウェアです。
// クライアントが有効なUUIDをX-Request-IDで送った場合はそれを引き継ぎます。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"remote_addr", c.ClientIP(),
		}
		if status >= http.StatusInternalServerError {
			slog.Error("http request", attrs...)
			return
		}
		slog.Info("http request", attrs...)
	}
}

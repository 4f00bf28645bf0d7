// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/transport/http/dto"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/bearer"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録します。
	Register(ctx context.Context, email, password string, attrs entity.UserAttrs) (entity.Profile, error)
	// Login はユーザーを認証し、成功時にプロフィールとトークンを返します。
	Login(ctx context.Context, email, password string) (entity.Profile, *entity.Token, error)
	// GetProfile は指定ユーザーのプロフィールを返します。
	GetProfile(ctx context.Context, userID uint) (entity.Profile, error)
	// UpdateProfile は指定ユーザーのプロフィールを部分更新します。
	UpdateProfile(ctx context.Context, userID uint, changes entity.ProfileChanges) (entity.Profile, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時も詳細を隠して400を返却
// - 成功時は201とユーザー情報を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	profile, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Attrs())
	if err != nil {
		// ユーザー列挙攻撃を防止するため、重複の事実は公開しない
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "signup failed"})
			return
		}
		h.writeError(c, "signup", err)
		return
	}

	slog.Info("user signup successful", "email", profile.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserResponse(profile))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 不正なJSONは400を返却
// - 認証失敗時は理由を区別せず401を返却
// - 成功時はトークンとユーザー情報を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	profile, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid email or password"})
			return
		}
		h.writeError(c, "login", err)
		return
	}

	slog.Info("user login successful", "email", profile.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token.Key,
		User:  dto.NewUserResponse(profile),
	})
}

// Me は認証済みユーザー自身のプロフィールを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := bearer.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	profile, err := h.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(profile))
}

// UpdateMe は認証済みユーザー自身のプロフィールを部分更新します。
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, ok := bearer.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	profile, err := h.auth.UpdateProfile(c.Request.Context(), userID, req.Changes())
	if err != nil {
		h.writeError(c, "update profile", err)
		return
	}
	slog.Info("profile updated", "user_id", userID)
	c.JSON(http.StatusOK, dto.NewUserResponse(profile))
}

// writeError はユースケースのエラーをHTTPステータスに変換して返却します。
func (h *AuthHandler) writeError(c *gin.Context, op string, err error) {
	var vErr *usecase.ValidationError
	switch {
	case errors.As(err, &vErr):
		slog.Warn(op+" rejected", "field", vErr.Field, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: vErr.Message})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
	case errors.Is(err, usecase.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

// bindErrorMessage はバインドエラーをクライアント向けのメッセージに変換します。
// バリデーションエラーは項目を示し、不正なJSONは汎用メッセージにします。
func bindErrorMessage(err error) string {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		return vErrs.Error()
	}
	return "invalid request"
}

package dto

import (
	"time"

	"account_backend/internal/feature/auth/domain/entity"
)

// UserResponse はクライアントに返すユーザー情報です。パスワード関連の項目は持ちません。
type UserResponse struct {
	ID        uint       `json:"id"`
	Firstname string     `json:"firstname"`
	Lastname  string     `json:"lastname"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login"`
}

// NewUserResponse はProfileからUserResponseを生成します。
func NewUserResponse(p entity.Profile) UserResponse {
	return UserResponse{
		ID:        p.ID,
		Firstname: p.Firstname,
		Lastname:  p.Lastname,
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		LastLogin: p.LastLogin,
	}
}

// LoginResponse はログイン成功時のレスポンスです。
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ErrorResponse はエラー時のレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

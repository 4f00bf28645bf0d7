package dto

// LoginRequest は/api/auth/login/エンドポイントのリクエストボディを表します。
// 空の値はユースケースで認証失敗として扱うため、bindingタグは付けません。
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

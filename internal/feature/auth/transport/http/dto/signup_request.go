// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "account_backend/internal/feature/auth/domain/entity"

// SignupRequest は/api/auth/signup/エンドポイントのリクエストボディを表します。
// Ginのbindingタグで必須項目、メール形式、パスワード長を検証します。
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=5"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Phone     string `json:"phone"`
}

// Attrs はメールアドレスとパスワード以外の登録属性を返します。
func (r SignupRequest) Attrs() entity.UserAttrs {
	return entity.UserAttrs{
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Phone:     r.Phone,
	}
}

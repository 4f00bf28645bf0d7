package dto

import "account_backend/internal/feature/auth/domain/entity"

// UpdateProfileRequest はPATCH /api/auth/me/のリクエストボディを表します。
// 省略されたフィールドは変更しません。id や created_at などは受け付けず無視されます。
type UpdateProfileRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password" binding:"omitempty,min=5"`
}

// Changes はリクエストをentity.ProfileChangesに変換します。
func (r UpdateProfileRequest) Changes() entity.ProfileChanges {
	return entity.ProfileChanges{
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Phone:     r.Phone,
		Password:  r.Password,
	}
}

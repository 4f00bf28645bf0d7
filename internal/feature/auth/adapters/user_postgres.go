// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
)

// userPostgres はUserRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create はユーザーをデータベースに追加し、採番されたIDをuに反映します。
// メールアドレスが一意制約に違反した場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	model := UserModelFromEntity(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	*u = *model.ToEntity()
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Update はpatchのnilでない列だけを1つのUPDATE文で書き込み、更新後のユーザーを返します。
// 対象が存在しない場合はusecase.ErrUserNotFound、メール重複の場合はusecase.ErrEmailAlreadyExistsを返します。
func (r *userPostgres) Update(ctx context.Context, id uint, patch usecase.UserPatch) (*entity.User, error) {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", id).
		Updates(patchColumns(patch))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, usecase.ErrEmailAlreadyExists
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// patchColumns はUserPatchを列名をキーとするマップに変換します。
func patchColumns(p usecase.UserPatch) map[string]any {
	cols := map[string]any{"updated_at": p.UpdatedAt}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.PasswordHash != nil {
		cols["password_hash"] = *p.PasswordHash
	}
	if p.Firstname != nil {
		cols["firstname"] = *p.Firstname
	}
	if p.Lastname != nil {
		cols["lastname"] = *p.Lastname
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.IsStaff != nil {
		cols["is_staff"] = *p.IsStaff
	}
	if p.IsSuperuser != nil {
		cols["is_superuser"] = *p.IsSuperuser
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	if p.LastLogin != nil {
		cols["last_login"] = *p.LastLogin
	}
	return cols
}

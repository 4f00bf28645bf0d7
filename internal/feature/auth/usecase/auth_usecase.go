// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"account_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 5
)

// authUsecase は認証ビジネスロジックを実装します。
// CredentialStoreでの資格情報検証とTokenIssuerでのトークン発行を組み合わせます。
type authUsecase struct {
	credentials *CredentialStore
	tokens      *TokenIssuer
	now         func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(credentials *CredentialStore, tokens *TokenIssuer) *authUsecase {
	return &authUsecase{
		credentials: credentials,
		tokens:      tokens,
		now:         time.Now,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
// 空白のみのパスワードは長さに関係なく拒否します。
func validatePassword(password string) error {
	if isBlank(password) {
		return newValidationError("password", "password must not be blank")
	}
	if len([]rune(password)) < minPasswordLength {
		return newValidationError("password", fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// 返却されるProfileにはパスワードハッシュが含まれません。
func (u *authUsecase) Register(ctx context.Context, email, password string, attrs entity.UserAttrs) (entity.Profile, error) {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return entity.Profile{}, err
	}

	user, err := u.credentials.Create(ctx, email, password, attrs)
	if err != nil {
		return entity.Profile{}, err
	}
	return user.Profile(), nil
}

// Login はユーザーを認証し、成功時にユーザーとトークンを返します。
// メールアドレス未登録・パスワード不一致・空パスワード・無効アカウントはすべて
// ErrInvalidCredentialsとして区別なく返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (entity.Profile, *entity.Token, error) {
	if isBlank(password) {
		return entity.Profile{}, nil, ErrInvalidCredentials
	}

	user, err := u.credentials.Verify(ctx, email, password)
	if err != nil {
		return entity.Profile{}, nil, err
	}
	if user == nil || !user.IsActive {
		return entity.Profile{}, nil, ErrInvalidCredentials
	}

	// 最終ログイン日時を記録
	now := u.now()
	user, err = u.credentials.Update(ctx, user.ID, entity.UserChanges{LastLogin: &now})
	if err != nil {
		return entity.Profile{}, nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := u.tokens.IssueOrFetch(ctx, user.ID)
	if err != nil {
		return entity.Profile{}, nil, err
	}
	return user.Profile(), token, nil
}

// GetProfile は指定されたIDのユーザーを返します。
func (u *authUsecase) GetProfile(ctx context.Context, userID uint) (entity.Profile, error) {
	user, err := u.credentials.FindByID(ctx, userID)
	if err != nil {
		return entity.Profile{}, err
	}
	return user.Profile(), nil
}

// UpdateProfile はユーザー自身のプロフィールを更新します。
// id や created_at は ProfileChanges に存在しないため変更できません。
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, changes entity.ProfileChanges) (entity.Profile, error) {
	if changes.Password != nil {
		if err := validatePassword(*changes.Password); err != nil {
			return entity.Profile{}, err
		}
	}

	user, err := u.credentials.Update(ctx, userID, changes.UserChanges())
	if err != nil {
		return entity.Profile{}, err
	}
	return user.Profile(), nil
}

// Authenticate はBearerトークンを検証し、所有ユーザーのIDを返します。
// 未知のトークン、存在しないユーザー、無効アカウントはErrUnauthenticatedになります。
func (u *authUsecase) Authenticate(ctx context.Context, key string) (uint, error) {
	userID, err := u.tokens.Resolve(ctx, key)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return 0, ErrUnauthenticated
		}
		return 0, err
	}

	user, err := u.credentials.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, ErrUnauthenticated
		}
		return 0, err
	}
	if !user.IsActive {
		return 0, ErrUnauthenticated
	}
	return user.ID, nil
}

package adapters

import (
	"context"
	"errors"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tokenPostgres is a PostgreSQL implementation of the TokenRepository interface.
type tokenPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure tokenPostgres implements TokenRepository.
var _ usecase.TokenRepository = (*tokenPostgres)(nil)

// NewTokenPostgres creates a new instance of tokenPostgres.
func NewTokenPostgres(db *gorm.DB) *tokenPostgres {
	return &tokenPostgres{db: db}
}

// GetOrCreate inserts token unless the user already has one and returns the stored token.
// The insert uses ON CONFLICT (user_id) DO NOTHING, so racing callers never
// produce a second row and all read back the winner.
func (r *tokenPostgres) GetOrCreate(ctx context.Context, token *entity.Token) (*entity.Token, error) {
	if token == nil {
		return nil, errors.New("token is nil")
	}
	model := TokenModelFromEntity(token)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		return nil, err
	}

	var stored TokenModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", token.UserID).First(&stored).Error; err != nil {
		return nil, err
	}
	return stored.ToEntity(), nil
}

// FindByKey retrieves a token by its key.
func (r *tokenPostgres) FindByKey(ctx context.Context, key string) (*entity.Token, error) {
	if key == "" {
		return nil, usecase.ErrTokenNotFound
	}
	var model TokenModel
	if err := r.db.WithContext(ctx).Where(&TokenModel{Key: key}).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

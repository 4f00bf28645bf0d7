package adapters

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"account_backend/internal/feature/auth/domain/entity"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex:idx_users_email;size:255;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	Firstname    string     `gorm:"size:255"`
	Lastname     string     `gorm:"size:255"`
	Phone        string     `gorm:"size:255"`
	IsStaff      bool       `gorm:"not null"`
	IsSuperuser  bool       `gorm:"not null"`
	IsActive     bool       `gorm:"not null"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
	LastLogin    *time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Firstname:    m.Firstname,
		Lastname:     m.Lastname,
		Phone:        m.Phone,
		IsStaff:      m.IsStaff,
		IsSuperuser:  m.IsSuperuser,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		LastLogin:    m.LastLogin,
	}
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		Phone:        u.Phone,
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastLogin:    u.LastLogin,
	}
}

// TokenModel is the GORM model for the auth_tokens table.
// The unique index on user_id is what keeps issuance to one token per user.
type TokenModel struct {
	Key       string    `gorm:"primaryKey;size:40"`
	UserID    uint      `gorm:"uniqueIndex:idx_auth_tokens_user_id;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (TokenModel) TableName() string {
	return "auth_tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TokenModel) ToEntity() *entity.Token {
	return &entity.Token{
		Key:       m.Key,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

// TokenModelFromEntity converts a domain entity to a GORM model.
func TokenModelFromEntity(t *entity.Token) *TokenModel {
	return &TokenModel{
		Key:       t.Key,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
	}
}

// Models lists every model of the auth feature, in migration order.
func Models() []any {
	return []any{&UserModel{}, &TokenModel{}}
}

// isUniqueViolation reports whether err is a unique constraint failure, either
// translated by GORM (TranslateError) or raw from pgx.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

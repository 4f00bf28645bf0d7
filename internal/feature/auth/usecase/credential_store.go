package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"account_backend/internal/feature/auth/domain/entity"
)

// dummyHash is compared against when the email is unknown, so that a miss
// costs the same bcrypt work as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and fills in its ID.
	// It returns ErrEmailAlreadyExists if the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user with exactly the given (normalized) email.
	// It returns ErrUserNotFound if there is none.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user with the given ID.
	// It returns ErrUserNotFound if there is none.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update writes the non-nil fields of patch to the user with the given ID
	// in a single statement and returns the stored record.
	// It returns ErrUserNotFound if there is no such user and
	// ErrEmailAlreadyExists if a changed email collides.
	Update(ctx context.Context, id uint, patch UserPatch) (*entity.User, error)
}

// UserPatch is the column-level change set handed to UserRepository.Update.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	Firstname    *string
	Lastname     *string
	Phone        *string
	IsStaff      *bool
	IsSuperuser  *bool
	IsActive     *bool
	LastLogin    *time.Time
	UpdatedAt    time.Time
}

// CredentialStore owns user records: email normalization, uniqueness and
// password hashing. Plaintext passwords never reach the repository.
type CredentialStore struct {
	users    UserRepository
	hashCost int
	now      func() time.Time
}

// NewCredentialStore creates a CredentialStore hashing with the given bcrypt cost.
// A cost of 0 selects bcrypt.DefaultCost.
func NewCredentialStore(users UserRepository, hashCost int) *CredentialStore {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &CredentialStore{
		users:    users,
		hashCost: hashCost,
		now:      time.Now,
	}
}

// Create registers a new user with a hashed password.
// The email is required and stored normalized; attributes are stored as given.
func (s *CredentialStore) Create(ctx context.Context, email, password string, attrs entity.UserAttrs) (*entity.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, newValidationError("email", "email is required")
	}

	hashed, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	active := true
	if attrs.IsActive != nil {
		active = *attrs.IsActive
	}
	now := s.now()
	user := &entity.User{
		Email:        email,
		PasswordHash: hashed,
		Firstname:    attrs.Firstname,
		Lastname:     attrs.Lastname,
		Phone:        attrs.Phone,
		IsStaff:      attrs.IsStaff,
		IsSuperuser:  attrs.IsSuperuser,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSuperuser is Create with is_staff, is_superuser and is_active forced on.
func (s *CredentialStore) CreateSuperuser(ctx context.Context, email, password string, attrs entity.UserAttrs) (*entity.User, error) {
	active := true
	attrs.IsStaff = true
	attrs.IsSuperuser = true
	attrs.IsActive = &active
	return s.Create(ctx, email, password, attrs)
}

// Verify returns the user whose email and password match, or nil if either does not.
// An error is returned only when the lookup itself fails.
func (s *CredentialStore) Verify(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.PasswordHash
	}
	// always compare, even for an unknown email
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if user == nil || compareErr != nil {
		return nil, nil
	}
	return user, nil
}

// FindByID returns the user with the given ID or ErrUserNotFound.
func (s *CredentialStore) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies the non-nil changes to the user and refreshes UpdatedAt.
// A new password is hashed; a new email is normalized and re-checked for uniqueness.
func (s *CredentialStore) Update(ctx context.Context, id uint, changes entity.UserChanges) (*entity.User, error) {
	patch := UserPatch{
		Firstname:   changes.Firstname,
		Lastname:    changes.Lastname,
		Phone:       changes.Phone,
		IsStaff:     changes.IsStaff,
		IsSuperuser: changes.IsSuperuser,
		IsActive:    changes.IsActive,
		LastLogin:   changes.LastLogin,
		UpdatedAt:   s.now(),
	}
	if changes.Email != nil {
		email := NormalizeEmail(*changes.Email)
		if email == "" {
			return nil, newValidationError("email", "email is required")
		}
		patch.Email = &email
	}
	if changes.Password != nil {
		hashed, err := s.hashPassword(*changes.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hashed
	}
	return s.users.Update(ctx, id, patch)
}

func (s *CredentialStore) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", newValidationError("password", "password must be at most 72 bytes")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// isBlank reports whether s is empty after trimming whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

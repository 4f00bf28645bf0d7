package usecase

import (
	"context"
	"sync"

	"account_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// Unset funcs fall back to an in-memory map, so tests only override what they check.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*entity.User, error)
	UpdateFunc      func(ctx context.Context, id uint, patch UserPatch) (*entity.User, error)

	mu     sync.Mutex
	nextID uint
	users  map[uint]*entity.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}
	if m.users == nil {
		m.users = map[uint]*entity.User{}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := *u
	return &found, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id uint, patch UserPatch) (*entity.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if patch.Email != nil {
		for otherID, other := range m.users {
			if otherID != id && other.Email == *patch.Email {
				return nil, ErrEmailAlreadyExists
			}
		}
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Firstname != nil {
		u.Firstname = *patch.Firstname
	}
	if patch.Lastname != nil {
		u.Lastname = *patch.Lastname
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.IsStaff != nil {
		u.IsStaff = *patch.IsStaff
	}
	if patch.IsSuperuser != nil {
		u.IsSuperuser = *patch.IsSuperuser
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.LastLogin != nil {
		login := *patch.LastLogin
		u.LastLogin = &login
	}
	u.UpdatedAt = patch.UpdatedAt
	found := *u
	return &found, nil
}

// count returns the number of stored users.
func (m *mockUserRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// mockTokenRepository is a mock implementation of the TokenRepository interface.
// Its default GetOrCreate is atomic under a mutex, like the unique index it stands in for.
type mockTokenRepository struct {
	GetOrCreateFunc func(ctx context.Context, token *entity.Token) (*entity.Token, error)
	FindByKeyFunc   func(ctx context.Context, key string) (*entity.Token, error)

	mu       sync.Mutex
	byUserID map[uint]*entity.Token
}

func (m *mockTokenRepository) GetOrCreate(ctx context.Context, token *entity.Token) (*entity.Token, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byUserID == nil {
		m.byUserID = map[uint]*entity.Token{}
	}
	if existing, ok := m.byUserID[token.UserID]; ok {
		found := *existing
		return &found, nil
	}
	stored := *token
	m.byUserID[token.UserID] = &stored
	return token, nil
}

func (m *mockTokenRepository) FindByKey(ctx context.Context, key string) (*entity.Token, error) {
	if m.FindByKeyFunc != nil {
		return m.FindByKeyFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.byUserID {
		if t.Key == key {
			found := *t
			return &found, nil
		}
	}
	return nil, ErrTokenNotFound
}

func (m *mockTokenRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byUserID)
}

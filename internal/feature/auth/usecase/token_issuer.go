package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"account_backend/internal/feature/auth/domain/entity"
)

// tokenKeyBytes is the amount of randomness in a token key (40 hex characters).
const tokenKeyBytes = 20

// TokenRepository abstracts the persistence layer for token entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TokenRepository interface {
	// GetOrCreate atomically stores token unless a token already exists for
	// token.UserID, and returns whichever token is stored for that user afterwards.
	// Concurrent calls for the same user must all observe the same surviving token.
	GetOrCreate(ctx context.Context, token *entity.Token) (*entity.Token, error)

	// FindByKey retrieves a token by its key.
	// It returns ErrTokenNotFound if the key is unknown.
	FindByKey(ctx context.Context, key string) (*entity.Token, error)
}

// TokenIssuer hands out the single durable bearer token of each user.
type TokenIssuer struct {
	tokens TokenRepository
	newKey func() (string, error)
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer backed by the given repository.
func NewTokenIssuer(tokens TokenRepository) *TokenIssuer {
	return &TokenIssuer{
		tokens: tokens,
		newKey: GenerateTokenKey,
		now:    time.Now,
	}
}

// GenerateTokenKey returns a new random 40-character hex key.
func GenerateTokenKey() (string, error) {
	b := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IssueOrFetch returns the user's token, creating it on first use.
// Repeated and concurrent calls for one user return the same key.
func (i *TokenIssuer) IssueOrFetch(ctx context.Context, userID uint) (*entity.Token, error) {
	key, err := i.newKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	token, err := i.tokens.GetOrCreate(ctx, &entity.Token{
		Key:       key,
		UserID:    userID,
		CreatedAt: i.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if !token.BelongsTo(userID) {
		return nil, fmt.Errorf("failed to issue token: stored token belongs to user %d, not %d", token.UserID, userID)
	}
	return token, nil
}

// Resolve returns the ID of the user owning key, or ErrTokenNotFound.
func (i *TokenIssuer) Resolve(ctx context.Context, key string) (uint, error) {
	if key == "" {
		return 0, ErrTokenNotFound
	}
	token, err := i.tokens.FindByKey(ctx, key)
	if err != nil {
		return 0, err
	}
	return token.UserID, nil
}

package entity

import "time"

// Token is the opaque bearer credential bound to a single user.
// A user has at most one token; it is reused on every login and never expires.
type Token struct {
	Key       string    // 40-character hex string
	UserID    uint      // Owning user, unique
	CreatedAt time.Time // Issuance time
}

// BelongsTo reports whether the token was issued to the given user.
func (t *Token) BelongsTo(userID uint) bool {
	return t != nil && t.UserID == userID
}

// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// It carries the password hash and must not be handed to the transport layer;
// use Profile for anything that leaves the usecase package.
type User struct {
	// ID is the surrogate key assigned at creation.
	ID uint

	// Email is the normalized email address. It is unique across all users
	// and is the identifier used at login.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	Firstname string
	Lastname  string
	Phone     string

	IsStaff     bool
	IsSuperuser bool
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// LastLogin is nil until the first successful login.
	LastLogin *time.Time
}

// Profile is the outward representation of a User. It has no password field.
type Profile struct {
	ID          uint
	Email       string
	Firstname   string
	Lastname    string
	Phone       string
	IsStaff     bool
	IsSuperuser bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLogin   *time.Time
}

// Profile returns the user without its password hash.
func (u *User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		Email:       u.Email,
		Firstname:   u.Firstname,
		Lastname:    u.Lastname,
		Phone:       u.Phone,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLogin:   u.LastLogin,
	}
}

// UserAttrs holds the optional attributes supplied when a user is created.
// A nil IsActive means the default (active).
type UserAttrs struct {
	Firstname   string
	Lastname    string
	Phone       string
	IsStaff     bool
	IsSuperuser bool
	IsActive    *bool
}

// UserChanges describes a partial update of a User. Nil fields are left untouched.
// Password is plaintext and is only ever turned into a new PasswordHash.
type UserChanges struct {
	Email       *string
	Password    *string
	Firstname   *string
	Lastname    *string
	Phone       *string
	IsStaff     *bool
	IsSuperuser *bool
	IsActive    *bool
	LastLogin   *time.Time
}

// ProfileChanges is the subset of UserChanges a user may apply to their own profile.
type ProfileChanges struct {
	Firstname *string
	Lastname  *string
	Phone     *string
	Password  *string
}

// UserChanges widens the profile changes to a store update.
func (p ProfileChanges) UserChanges() UserChanges {
	return UserChanges{
		Firstname: p.Firstname,
		Lastname:  p.Lastname,
		Phone:     p.Phone,
		Password:  p.Password,
	}
}

package usecase

import "strings"

// NormalizeEmail lowercases the domain part of an email address and keeps the
// local part as typed, so "Test2@Example.com" becomes "Test2@example.com".
// Surrounding whitespace is removed. A value without "@" is returned trimmed
// and otherwise unchanged.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

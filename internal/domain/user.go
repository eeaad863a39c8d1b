package domain

import "time"

// User is an account identity. PasswordHash is empty for accounts created
// through Google sign-in.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	GoogleID       string
	FailedAttempts int
	LockUntil      *time.Time
	RefreshToken   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLocked reports whether the account is currently login-locked.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

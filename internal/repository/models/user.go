package models

import (
	"database/sql"
	"time"

	"prepdeck/internal/domain"
	"prepdeck/internal/util"
)

// User is the database row for an account.
type User struct {
	ID             string         `db:"ID"` // ULID
	Name           sql.NullString `db:"NAME"`
	Email          string         `db:"EMAIL"`
	PasswordHash   sql.NullString `db:"PASSWORD_HASH"`
	GoogleID       sql.NullString `db:"GOOGLE_ID"`
	FailedAttempts int            `db:"FAILED_ATTEMPTS"`
	LockUntil      sql.NullTime   `db:"LOCK_UNTIL"`
	RefreshToken   sql.NullString `db:"REFRESH_TOKEN"`
	CreatedAt      time.Time      `db:"CREATED_AT"`
	UpdatedAt      time.Time      `db:"UPDATED_AT"`
}

// ToDomain converts the row to its domain representation.
func (m *User) ToDomain() *domain.User {
	return &domain.User{
		ID:             m.ID,
		Name:           m.Name.String,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash.String,
		GoogleID:       m.GoogleID.String,
		FailedAttempts: m.FailedAttempts,
		LockUntil:      util.NullTimeToPtr(m.LockUntil),
		RefreshToken:   m.RefreshToken.String,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// UserFromDomain converts a domain user to its database row.
func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:             u.ID,
		Name:           util.StringToNullString(u.Name),
		Email:          u.Email,
		PasswordHash:   util.StringToNullString(u.PasswordHash),
		GoogleID:       util.StringToNullString(u.GoogleID),
		FailedAttempts: u.FailedAttempts,
		LockUntil:      util.TimePtrToNullTime(u.LockUntil),
		RefreshToken:   util.StringToNullString(u.RefreshToken),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

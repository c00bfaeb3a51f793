// internal/domain/user.go
package domain

import (
	"strings"
	"time"
)

// User represents a registered member of the ledger.
type User struct {
	ID           int64     `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	Name         string    `db:"name" json:"name"`             // Display name
	Email        string    `db:"email" json:"email"`           // Unique, stored lower-cased
	PasswordHash string    `db:"password_hash" json:"-"`       // bcrypt hash, never serialized
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
}

// NewUser creates a new User instance. The email is normalized so lookups are case-insensitive.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

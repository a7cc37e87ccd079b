// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. A user owns exactly one Business,
// created automatically at registration time.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // Unique display name; also seeds the business name.
	Email        string    // Unique contact email; receives the verification link.
	PasswordHash string    // Salted bcrypt hash, never the plaintext password.
	IsVerified   bool      // Set true exactly once, via a valid verification token.
	JoinedAt     time.Time // Timestamp of account creation.
	Business     *Business // The storefront owned by this user. Nil when not loaded.
}

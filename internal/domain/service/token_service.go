package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPurpose scopes a token to the single flow it was issued for.
// An access token presented to the verify-email flow is rejected, and vice versa.
type TokenPurpose string

const (
	// TokenPurposeAccess marks bearer tokens issued at login.
	TokenPurposeAccess TokenPurpose = "access"

	// TokenPurposeVerify marks short-lived tokens embedded in verification emails.
	TokenPurposeVerify TokenPurpose = "verify"
)

// Claims defines the custom claims carried by minishop JWTs.
type Claims struct {
	UserID   uuid.UUID    `json:"uid"`
	Username string       `json:"username"`
	Purpose  TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating signed bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token for the given user, scoped to a purpose.
	// The TTL is fixed per purpose.
	Issue(userID uuid.UUID, username string, purpose TokenPurpose) (string, error)

	// Validate checks signature, expiry and purpose of a token string.
	Validate(tokenString string, purpose TokenPurpose) (*Claims, error)
}

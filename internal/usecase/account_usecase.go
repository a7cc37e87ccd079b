// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"minishop/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user with its auto-created business.
type RegisterOutput struct {
	User *entity.User
	// EmailSent reports whether the verification email was dispatched successfully.
	// Registration itself succeeds either way.
	EmailSent bool
}

// LoginOutput returns the generated session token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// VerifyEmailOutput returns the account whose email was just confirmed.
type VerifyEmailOutput struct {
	User *entity.User
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates the user and its storefront, then dispatches the verification email.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// VerifyEmail consumes a verification token and marks the account verified.
	// A token for an already-verified account is rejected.
	VerifyEmail(ctx context.Context, token string) (*VerifyEmailOutput, error)

	// Login checks the credentials and issues a session token.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// GetProfile loads the account together with its business.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

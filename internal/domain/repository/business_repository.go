package repository

import (
	"context"
	"errors"

	"minishop/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBusinessNotFound is a domain-specific error returned when a business is not found.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessRepository defines the standard operations for business persistence.
type BusinessRepository interface {
	// FindByID retrieves a single business by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// FindByOwnerID retrieves the business owned by the given user.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Business, error)

	// Create persists a new business entity to the storage.
	Create(ctx context.Context, business *entity.Business) error

	// Update modifies an existing business entity in the storage.
	Update(ctx context.Context, business *entity.Business) error
}

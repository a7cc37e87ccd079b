package repository

import (
	"context"
	"errors"

	"minishop/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID, with its owning business.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves all products.
	List(ctx context.Context) ([]*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity in the storage.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by its unique ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

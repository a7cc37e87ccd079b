package usecase

import (
	"context"
	"time"

	"minishop/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines the data required to list a new product.
// OwnerID comes from the authenticated session; the product lands under
// that user's business.
type CreateProductInput struct {
	OwnerID        uuid.UUID
	Name           string
	Category       string
	Description    string
	OriginalPrice  float64
	NewPrice       float64
	OfferExpiresAt time.Time
}

// UpdateProductInput defines the data required to modify an existing product.
type UpdateProductInput struct {
	ActorID        uuid.UUID
	ProductID      uuid.UUID
	Name           string
	Category       string
	Description    string
	OriginalPrice  float64
	NewPrice       float64
	OfferExpiresAt time.Time
}

// UploadProductImageInput carries an uploaded image file for a product.
type UploadProductImageInput struct {
	ActorID   uuid.UUID
	ProductID uuid.UUID
	Filename  string
	Content   []byte
}

// ProductUsecase defines the interface for product-related business operations.
type ProductUsecase interface {
	// CreateProduct lists a new product under the caller's business and
	// computes its discount from the price pair.
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)

	// ListProducts retrieves all products with their owning businesses.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// GetProduct retrieves a single product with its owning business.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// UpdateProduct modifies a product the caller owns, recomputes the
	// discount and refreshes the publish timestamp.
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product the caller owns.
	DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error

	// UploadProductImage stores a resized image and points the product at it.
	UploadProductImage(ctx context.Context, input UploadProductImageInput) (*entity.Product, error)
}

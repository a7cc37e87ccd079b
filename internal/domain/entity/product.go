package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned to products created without a category.
const DefaultCategory = "Unspecified"

// DefaultProductImageFile is the placeholder image assigned to new products.
const DefaultProductImageFile = "defaultProduct.jpg"

// Product is a listing that belongs to exactly one Business.
type Product struct {
	ID                 uuid.UUID
	Name               string
	Category           string
	Description        string
	OriginalPrice      float64
	NewPrice           float64
	PercentageDiscount int       // Derived from the price pair on create and update.
	OfferExpiresAt     time.Time // Date the discounted offer stops applying.
	Image              string    // Stored image filename under the upload directory.
	PublishedAt        time.Time // Refreshed on every update.
	BusinessID         uuid.UUID
	Business           *Business // Owning storefront. Nil when not loaded.
}

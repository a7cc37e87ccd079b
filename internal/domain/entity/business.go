package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLocation is used for business location fields the owner has not filled in.
const DefaultLocation = "Unspecified"

// DefaultLogoFile is the placeholder logo assigned to new businesses.
const DefaultLogoFile = "default.jpg"

// Business is a user's storefront. It is created exactly once per user,
// seeded with the username as business name.
type Business struct {
	ID           uuid.UUID
	BusinessName string // Unique storefront name, defaults to the owner's username.
	City         string
	Region       string
	Country      string
	Description  string
	Logo         string    // Stored logo filename under the upload directory.
	OwnerID      uuid.UUID // The owning user; ownership checks compare against this.
	Owner        *User     // Loaded on product reads so listings carry seller metadata.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

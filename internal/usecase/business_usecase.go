package usecase

import (
	"context"

	"minishop/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateBusinessInput defines the data required to update a storefront.
// OwnerID comes from the authenticated session, never from the request body.
type UpdateBusinessInput struct {
	OwnerID      uuid.UUID
	BusinessName string
	City         string
	Region       string
	Country      string
	Description  string
}

// UploadLogoInput carries an uploaded logo file for the caller's storefront.
type UploadLogoInput struct {
	OwnerID  uuid.UUID
	Filename string
	Content  []byte
}

// BusinessUsecase defines the interface for storefront-related business operations.
type BusinessUsecase interface {
	// UpdateBusiness modifies the caller's own storefront. Empty fields keep
	// their current values.
	UpdateBusiness(ctx context.Context, input UpdateBusinessInput) (*entity.Business, error)

	// UploadLogo stores a resized logo image and points the storefront at it.
	UploadLogo(ctx context.Context, input UploadLogoInput) (*entity.Business, error)
}

package impl

import (
	"context"
	"log/slog"

	deliverycontext "minishop/internal/delivery/context"
	"minishop/internal/domain/entity"
	domainerrors "minishop/internal/domain/errors"
	"minishop/internal/domain/repository"
	"minishop/internal/domain/service"
	"minishop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// businessService implements the BusinessUsecase interface.
type businessService struct {
	businessRepo repository.BusinessRepository
	imageStore   service.ImageStore
	logger       *slog.Logger
}

// BusinessServiceParams holds dependencies for businessService, injected by Fx.
type BusinessServiceParams struct {
	fx.In

	BusinessRepo repository.BusinessRepository
	ImageStore   service.ImageStore
	Logger       *slog.Logger
}

// NewBusinessService is the constructor for businessService.
func NewBusinessService(params BusinessServiceParams) usecase.BusinessUsecase {
	return &businessService{
		businessRepo: params.BusinessRepo,
		imageStore:   params.ImageStore,
		logger:       params.Logger,
	}
}

func (srv *businessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateBusiness modifies the caller's own storefront. The row is looked up by
// owner ID, so a caller can never reach another user's storefront. Empty input
// fields keep their current values.
func (srv *businessService) UpdateBusiness(ctx context.Context, input usecase.UpdateBusinessInput) (*entity.Business, error) {
	business, err := srv.findOwnBusiness(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != "" {
		business.BusinessName = input.BusinessName
	}
	if input.City != "" {
		business.City = input.City
	}
	if input.Region != "" {
		business.Region = input.Region
	}
	if input.Country != "" {
		business.Country = input.Country
	}
	if input.Description != "" {
		business.Description = input.Description
	}

	if err := srv.businessRepo.Update(ctx, business); err != nil {
		srv.log(ctx).Error("Failed to update business", slog.Any("businessID", business.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update business")
	}

	srv.log(ctx).Debug("Business updated", slog.Any("businessID", business.ID))

	return business, nil
}

// UploadLogo stores a resized logo image and points the storefront at it.
func (srv *businessService) UploadLogo(ctx context.Context, input usecase.UploadLogoInput) (*entity.Business, error) {
	business, err := srv.findOwnBusiness(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	filename, err := srv.imageStore.Save(ctx, input.Filename, input.Content)
	if err != nil {
		return nil, err
	}

	business.Logo = filename
	if err := srv.businessRepo.Update(ctx, business); err != nil {
		return nil, errors.Wrap(err, "failed to store new logo reference")
	}

	srv.log(ctx).Info("Business logo updated", slog.Any("businessID", business.ID), slog.String("logo", filename))

	return business, nil
}

func (srv *businessService) findOwnBusiness(ctx context.Context, ownerID uuid.UUID) (*entity.Business, error) {
	business, err := srv.businessRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, domainerrors.ErrBusinessNotFound.WrapMessage("no storefront registered for this account")
		}

		return nil, errors.Wrap(err, "failed to load business by owner")
	}

	return business, nil
}

package impl

import (
	"context"
	"log/slog"
	"time"

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

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo  repository.ProductRepository
	businessRepo repository.BusinessRepository
	imageStore   service.ImageStore
	logger       *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	BusinessRepo repository.BusinessRepository
	ImageStore   service.ImageStore
	Logger       *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo:  params.ProductRepo,
		businessRepo: params.BusinessRepo,
		imageStore:   params.ImageStore,
		logger:       params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct lists a new product under the caller's business. The discount
// is computed from the price pair before anything is persisted.
func (srv *productService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	business, err := srv.businessRepo.FindByOwnerID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, domainerrors.ErrBusinessNotFound.WrapMessage("no storefront registered for this account")
		}

		return nil, errors.Wrap(err, "failed to load business for product creation")
	}

	discount, err := computeDiscount(input.OriginalPrice, input.NewPrice)
	if err != nil {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = entity.DefaultCategory
	}

	product := &entity.Product{
		Name:               input.Name,
		Category:           category,
		Description:        input.Description,
		OriginalPrice:      input.OriginalPrice,
		NewPrice:           input.NewPrice,
		PercentageDiscount: discount,
		OfferExpiresAt:     input.OfferExpiresAt,
		Image:              entity.DefaultProductImageFile,
		BusinessID:         business.ID,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("businessID", business.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	product.Business = business

	srv.log(ctx).Debug("Product created", slog.Any("productID", product.ID), slog.Any("businessID", business.ID))

	return product, nil
}

// ListProducts retrieves all products with their owning businesses.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct retrieves a single product with its owning business.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return srv.findProduct(ctx, id)
}

// UpdateProduct modifies a product the caller owns. The discount is recomputed
// from the incoming price pair and the publish timestamp is refreshed.
func (srv *productService) UpdateProduct(ctx context.Context, input usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.findOwnedProduct(ctx, input.ActorID, input.ProductID)
	if err != nil {
		return nil, err
	}

	discount, err := computeDiscount(input.OriginalPrice, input.NewPrice)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if !input.OfferExpiresAt.IsZero() {
		product.OfferExpiresAt = input.OfferExpiresAt
	}
	product.OriginalPrice = input.OriginalPrice
	product.NewPrice = input.NewPrice
	product.PercentageDiscount = discount
	product.PublishedAt = time.Now()

	if err := srv.productRepo.Update(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to update product", slog.Any("productID", product.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Debug("Product updated", slog.Any("productID", product.ID))

	return product, nil
}

// DeleteProduct removes a product the caller owns.
func (srv *productService) DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error {
	product, err := srv.findOwnedProduct(ctx, actorID, productID)
	if err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("product vanished before deletion")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", product.ID))

	return nil
}

// UploadProductImage stores a resized image and points the product at it.
// The publish timestamp is left alone; only field updates refresh it.
func (srv *productService) UploadProductImage(ctx context.Context, input usecase.UploadProductImageInput) (*entity.Product, error) {
	product, err := srv.findOwnedProduct(ctx, input.ActorID, input.ProductID)
	if err != nil {
		return nil, err
	}

	filename, err := srv.imageStore.Save(ctx, input.Filename, input.Content)
	if err != nil {
		return nil, err
	}

	product.Image = filename
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to store new product image reference")
	}

	srv.log(ctx).Info("Product image updated", slog.Any("productID", product.ID), slog.String("image", filename))

	return product, nil
}

func (srv *productService) findProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("no product matches the given id")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// findOwnedProduct loads a product and enforces that the actor owns the
// business it belongs to. Ownership compares identifiers, never objects.
func (srv *productService) findOwnedProduct(ctx context.Context, actorID, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Business == nil || product.Business.OwnerID != actorID {
		srv.log(ctx).Warn("Ownership check failed",
			slog.Any("productID", productID),
			slog.Any("actorID", actorID),
		)

		return nil, domainerrors.ErrForbidden.WrapMessage("product belongs to another user's storefront")
	}

	return product, nil
}

package postgres

import (
	"context"

	"minishop/internal/domain/entity"
	domainerrors "minishop/internal/domain/errors"
	"minishop/internal/domain/repository"
	"minishop/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the domain's ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a single product by its unique ID, preloading the owning
// business together with its owner so responses carry seller metadata.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Business").
		Preload("Business.Owner").
		Where("id = ?", id).
		First(&productM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// List retrieves all products with their owning businesses, newest first.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Business").
		Preload("Business.Owner").
		Order("published_at DESC").
		Find(&productMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBusinessNotFound.WrapMessage("owning business does not exist")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidPrice.WrapMessage("original price failed the price check")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.PublishedAt = productM.PublishedAt

	return nil
}

// Update modifies an existing product entity in the database.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", productM.ID).
		Updates(map[string]any{
			"name":                productM.Name,
			"category":            productM.Category,
			"description":         productM.Description,
			"original_price":      productM.OriginalPrice,
			"new_price":           productM.NewPrice,
			"percentage_discount": productM.PercentageDiscount,
			"offer_expires_at":    productM.OfferExpiresAt,
			"image":               productM.Image,
			"published_at":        productM.PublishedAt,
		})

	if err := result.Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidPrice.WrapMessage("original price failed the price check")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product by its unique ID.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:                 data.ID,
		Name:               data.Name,
		Category:           data.Category,
		Description:        data.Description,
		OriginalPrice:      data.OriginalPrice,
		NewPrice:           data.NewPrice,
		PercentageDiscount: data.PercentageDiscount,
		OfferExpiresAt:     data.OfferExpiresAt,
		Image:              data.Image,
		PublishedAt:        data.PublishedAt,
		BusinessID:         data.BusinessID,
		Business:           toBusinessDomain(data.Business),
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel for persistence.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:                 data.ID,
		Name:               data.Name,
		Category:           data.Category,
		Description:        data.Description,
		OriginalPrice:      data.OriginalPrice,
		NewPrice:           data.NewPrice,
		PercentageDiscount: data.PercentageDiscount,
		OfferExpiresAt:     data.OfferExpiresAt,
		Image:              data.Image,
		PublishedAt:        data.PublishedAt,
		BusinessID:         data.BusinessID,
	}
}

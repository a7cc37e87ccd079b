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

// businessRepository implements the domain's BusinessRepository interface using GORM.
type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository is the constructor for businessRepository.
func NewBusinessRepository(db *gorm.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

// FindByID retrieves a single business by its unique ID.
func (repo *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var businessM model.BusinessModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&businessM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to find business by id")
	}

	return toBusinessDomain(&businessM), nil
}

// FindByOwnerID retrieves the business owned by the given user.
func (repo *businessRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Business, error) {
	var businessM model.BusinessModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&businessM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to find business by owner id")
	}

	return toBusinessDomain(&businessM), nil
}

// Create persists a new business entity to the database.
func (repo *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	businessM := fromBusinessDomain(business)

	if err := repo.db.WithContext(ctx).Create(businessM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrBusinessAlreadyExists.WrapMessage("business name or owner already registered")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required business information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create business")
	}

	business.ID = businessM.ID
	business.CreatedAt = businessM.CreatedAt
	business.UpdatedAt = businessM.UpdatedAt

	return nil
}

// Update modifies an existing business entity in the database.
func (repo *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	businessM := fromBusinessDomain(business)

	result := repo.db.WithContext(ctx).
		Model(&model.BusinessModel{}).
		Where("id = ?", businessM.ID).
		Updates(map[string]any{
			"business_name": businessM.BusinessName,
			"city":          businessM.City,
			"region":        businessM.Region,
			"country":       businessM.Country,
			"description":   businessM.Description,
			"logo":          businessM.Logo,
		})

	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrBusinessAlreadyExists.WrapMessage("business name already taken")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update business")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toBusinessDomain converts a GORM BusinessModel to a domain Business entity.
func toBusinessDomain(data *model.BusinessModel) *entity.Business {
	if data == nil {
		return nil
	}

	return &entity.Business{
		ID:           data.ID,
		BusinessName: data.BusinessName,
		City:         data.City,
		Region:       data.Region,
		Country:      data.Country,
		Description:  data.Description,
		Logo:         data.Logo,
		OwnerID:      data.OwnerID,
		Owner:        toUserDomain(data.Owner),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromBusinessDomain converts a domain Business entity to a GORM BusinessModel for persistence.
func fromBusinessDomain(data *entity.Business) *model.BusinessModel {
	if data == nil {
		return nil
	}

	return &model.BusinessModel{
		ID:           data.ID,
		BusinessName: data.BusinessName,
		City:         data.City,
		Region:       data.Region,
		Country:      data.Country,
		Description:  data.Description,
		Logo:         data.Logo,
		OwnerID:      data.OwnerID,
	}
}

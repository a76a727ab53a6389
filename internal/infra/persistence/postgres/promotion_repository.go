package postgres

import (
	"context"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// promotionRepository implements the repository.PromotionRepository interface.
type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository is the constructor for promotionRepository.
func NewPromotionRepository(db *gorm.DB) repository.PromotionRepository {
	return &promotionRepository{db: db}
}

func (repo *promotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	promotionM := &model.PromotionModel{
		ID:              promotion.ID,
		Code:            promotion.Code,
		Description:     promotion.Description,
		DiscountPercent: promotion.DiscountPercent,
		ValidFrom:       promotion.ValidFrom,
		ValidTo:         promotion.ValidTo,
		IsActive:        promotion.IsActive,
		CreatedByID:     promotion.CreatedByID,
	}

	if err := repo.db.WithContext(ctx).Create(promotionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrPromotionCodeTaken
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid promotion creator")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create promotion")
	}

	promotion.ID = promotionM.ID
	promotion.CreatedAt = promotionM.CreatedAt

	return nil
}

func (repo *promotionRepository) FindByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	var promotionM model.PromotionModel
	if err := repo.db.WithContext(ctx).Where("code = ?", code).First(&promotionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrPromotionNotFound
		}

		return nil, errors.Wrap(err, "failed to find promotion by code")
	}

	return &entity.Promotion{
		ID:              promotionM.ID,
		Code:            promotionM.Code,
		Description:     promotionM.Description,
		DiscountPercent: promotionM.DiscountPercent,
		ValidFrom:       promotionM.ValidFrom,
		ValidTo:         promotionM.ValidTo,
		IsActive:        promotionM.IsActive,
		CreatedByID:     promotionM.CreatedByID,
		CreatedAt:       promotionM.CreatedAt,
	}, nil
}

// DeleteByCode removes the promotion. Bookings that used it keep existing with a cleared reference.
func (repo *promotionRepository) DeleteByCode(ctx context.Context, code string) error {
	result := repo.db.WithContext(ctx).Where("code = ?", code).Delete(&model.PromotionModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete promotion")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPromotionNotFound
	}

	return nil
}

package impl

import (
	"context"
	"strings"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/errors"
	"homestay/internal/usecase"
)

type promotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService creates the discount code use case
func NewPromotionService(promotionRepo repository.PromotionRepository) usecase.PromotionUsecase {
	return &promotionService{promotionRepo: promotionRepo}
}

// Create stores a new code. Codes are case-insensitive and kept upper case.
func (srv *promotionService) Create(ctx context.Context, creatorID string, input *usecase.CreatePromotionInput) (*entity.Promotion, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	switch {
	case code == "":
		return nil, domainerrors.NewValidationError("code is required")
	case input.DiscountPercent <= 0 || input.DiscountPercent > 100:
		return nil, domainerrors.NewValidationError("discountPercent must be in (0, 100]")
	case input.ValidTo.Before(input.ValidFrom):
		return nil, domainerrors.NewValidationError("validTo must not be before validFrom")
	}

	promotion := &entity.Promotion{
		Code:            code,
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
		ValidFrom:       input.ValidFrom,
		ValidTo:         input.ValidTo,
		IsActive:        true,
		CreatedByID:     &creatorID,
	}
	if err := srv.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, errors.Wrap(err, "failed to create promotion")
	}

	return promotion, nil
}

func (srv *promotionService) Delete(ctx context.Context, code string) error {
	return errors.Wrap(srv.promotionRepo.DeleteByCode(ctx, strings.ToUpper(strings.TrimSpace(code))), "failed to delete promotion")
}

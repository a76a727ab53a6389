package postgres

import (
	"context"
	"time"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// availabilityRepository implements the repository.AvailabilityRepository interface.
// Dates are stored as calendar days in UTC.
type availabilityRepository struct {
	db *gorm.DB
}

// NewAvailabilityRepository is the constructor for availabilityRepository.
func NewAvailabilityRepository(db *gorm.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func calendarDay(t time.Time) datatypes.Date {
	return datatypes.Date(entity.TruncateDate(t))
}

// CreatePricing stores a nightly price override. One rule per homestay and date.
func (repo *availabilityRepository) CreatePricing(ctx context.Context, pricing *entity.HomestayPricing) error {
	pricingM := &model.HomestayPricingModel{
		ID:         pricing.ID,
		HomestayID: pricing.HomestayID,
		Date:       calendarDay(pricing.Date),
		Price:      pricing.Price,
		Note:       pricing.Note,
	}

	if err := repo.db.WithContext(ctx).Create(pricingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrPricingAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrHomestayNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create homestay pricing")
	}

	pricing.ID = pricingM.ID
	pricing.Date = entity.TruncateDate(pricing.Date)

	return nil
}

func (repo *availabilityRepository) FindPricing(ctx context.Context, homestayID uuid.UUID, from, to time.Time) ([]*entity.HomestayPricing, error) {
	var pricingModels []*model.HomestayPricingModel
	if err := repo.db.WithContext(ctx).
		Where("homestay_id = ? AND date >= ? AND date < ?", homestayID, calendarDay(from), calendarDay(to)).
		Order("date").
		Find(&pricingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find homestay pricing")
	}

	pricing := make([]*entity.HomestayPricing, 0, len(pricingModels))
	for _, pricingM := range pricingModels {
		pricing = append(pricing, &entity.HomestayPricing{
			ID:         pricingM.ID,
			HomestayID: pricingM.HomestayID,
			Date:       entity.TruncateDate(time.Time(pricingM.Date)),
			Price:      pricingM.Price,
			Note:       pricingM.Note,
		})
	}

	return pricing, nil
}

// CreateBlockedDate closes a single day for booking.
func (repo *availabilityRepository) CreateBlockedDate(ctx context.Context, blocked *entity.BlockedDate) error {
	blockedM := &model.BlockedDateModel{
		ID:         blocked.ID,
		HomestayID: blocked.HomestayID,
		Date:       calendarDay(blocked.Date),
		Reason:     blocked.Reason,
	}

	if err := repo.db.WithContext(ctx).Create(blockedM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDateAlreadyBlocked
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrHomestayNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create blocked date")
	}

	blocked.ID = blockedM.ID
	blocked.Date = entity.TruncateDate(blocked.Date)
	blocked.CreatedAt = blockedM.CreatedAt

	return nil
}

func (repo *availabilityRepository) DeleteBlockedDate(ctx context.Context, homestayID uuid.UUID, date time.Time) error {
	result := repo.db.WithContext(ctx).
		Where("homestay_id = ? AND date = ?", homestayID, calendarDay(date)).
		Delete(&model.BlockedDateModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete blocked date")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBlockedDateNotFound
	}

	return nil
}

func (repo *availabilityRepository) FindBlockedDates(ctx context.Context, homestayID uuid.UUID, from, to time.Time) ([]*entity.BlockedDate, error) {
	var blockedModels []*model.BlockedDateModel
	if err := repo.db.WithContext(ctx).
		Where("homestay_id = ? AND date >= ? AND date < ?", homestayID, calendarDay(from), calendarDay(to)).
		Order("date").
		Find(&blockedModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find blocked dates")
	}

	blocked := make([]*entity.BlockedDate, 0, len(blockedModels))
	for _, blockedM := range blockedModels {
		blocked = append(blocked, &entity.BlockedDate{
			ID:         blockedM.ID,
			HomestayID: blockedM.HomestayID,
			Date:       entity.TruncateDate(time.Time(blockedM.Date)),
			Reason:     blockedM.Reason,
			CreatedAt:  blockedM.CreatedAt,
		})
	}

	return blocked, nil
}

package impl

import (
	"context"
	"math"
	"time"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type availabilityService struct {
	homestayRepo     repository.HomestayRepository
	availabilityRepo repository.AvailabilityRepository
}

// AvailabilityServiceParams holds dependencies for AvailabilityService, injected by Fx.
type AvailabilityServiceParams struct {
	fx.In

	HomestayRepo     repository.HomestayRepository
	AvailabilityRepo repository.AvailabilityRepository
}

// NewAvailabilityService creates the pricing and blocked-date use case
func NewAvailabilityService(params AvailabilityServiceParams) usecase.AvailabilityUsecase {
	return &availabilityService{
		homestayRepo:     params.HomestayRepo,
		availabilityRepo: params.AvailabilityRepo,
	}
}

// SetPricing adds a price override for one date. A second rule for the same date is rejected.
func (srv *availabilityService) SetPricing(ctx context.Context, callerID string, homestayID uuid.UUID, date time.Time, price float64, note string) (*entity.HomestayPricing, error) {
	if price <= 0 {
		return nil, domainerrors.NewValidationError("price must be positive")
	}
	if err := srv.checkOwner(ctx, callerID, homestayID); err != nil {
		return nil, err
	}

	pricing := &entity.HomestayPricing{
		HomestayID: homestayID,
		Date:       entity.TruncateDate(date),
		Price:      math.Round(price*100) / 100,
		Note:       note,
	}
	if err := srv.availabilityRepo.CreatePricing(ctx, pricing); err != nil {
		return nil, errors.Wrap(err, "failed to create pricing")
	}

	return pricing, nil
}

func (srv *availabilityService) BlockDate(ctx context.Context, callerID string, homestayID uuid.UUID, date time.Time, reason string) (*entity.BlockedDate, error) {
	if err := srv.checkOwner(ctx, callerID, homestayID); err != nil {
		return nil, err
	}

	blocked := &entity.BlockedDate{
		HomestayID: homestayID,
		Date:       entity.TruncateDate(date),
		Reason:     reason,
	}
	if err := srv.availabilityRepo.CreateBlockedDate(ctx, blocked); err != nil {
		return nil, errors.Wrap(err, "failed to block date")
	}

	return blocked, nil
}

func (srv *availabilityService) UnblockDate(ctx context.Context, callerID string, homestayID uuid.UUID, date time.Time) error {
	if err := srv.checkOwner(ctx, callerID, homestayID); err != nil {
		return err
	}

	return errors.Wrap(srv.availabilityRepo.DeleteBlockedDate(ctx, homestayID, entity.TruncateDate(date)), "failed to unblock date")
}

func (srv *availabilityService) checkOwner(ctx context.Context, callerID string, homestayID uuid.UUID) error {
	homestay, err := srv.homestayRepo.FindByID(ctx, homestayID)
	if err != nil {
		return errors.Wrap(err, "failed to find homestay")
	}
	if homestay.HostID != callerID {
		return domainerrors.ErrNotHomestayOwner
	}

	return nil
}

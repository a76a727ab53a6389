package impl

import (
	"context"
	"testing"
	"time"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/errors"
	mockRepo "homestay/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityService(t *testing.T) {
	ctx := context.Background()
	homestayID := uuid.New()
	listing := &entity.Homestay{ID: homestayID, HostID: "host"}

	newService := func(t *testing.T) (*mockRepo.MockHomestayRepository, *mockRepo.MockAvailabilityRepository, *availabilityService) {
		homestayRepo := mockRepo.NewMockHomestayRepository(t)
		availabilityRepo := mockRepo.NewMockAvailabilityRepository(t)
		srv := NewAvailabilityService(AvailabilityServiceParams{HomestayRepo: homestayRepo, AvailabilityRepo: availabilityRepo})

		return homestayRepo, availabilityRepo, srv.(*availabilityService)
	}

	t.Run("pricing truncated to the day and rounded to cents", func(t *testing.T) {
		homestayRepo, availabilityRepo, srv := newService(t)
		homestayRepo.On("FindByID", ctx, homestayID).Return(listing, nil)
		availabilityRepo.On("CreatePricing", ctx, mock.MatchedBy(func(p *entity.HomestayPricing) bool {
			return p.Date.Equal(date(2026, 7, 4)) && p.Price == 80.13
		})).Return(nil)

		pricing, err := srv.SetPricing(ctx, "host", homestayID, time.Date(2026, 7, 4, 18, 30, 0, 0, time.UTC), 80.129, "holiday")

		require.NoError(t, err)
		assert.Equal(t, "holiday", pricing.Note)
	})

	t.Run("duplicate date", func(t *testing.T) {
		homestayRepo, availabilityRepo, srv := newService(t)
		homestayRepo.On("FindByID", ctx, homestayID).Return(listing, nil)
		availabilityRepo.On("CreateBlockedDate", ctx, mock.Anything).Return(domainerrors.ErrDateAlreadyBlocked)

		_, err := srv.BlockDate(ctx, "host", homestayID, date(2026, 7, 4), "maintenance")

		assert.True(t, errors.Is(err, domainerrors.ErrDateAlreadyBlocked))
	})

	t.Run("other host", func(t *testing.T) {
		homestayRepo, _, srv := newService(t)
		homestayRepo.On("FindByID", ctx, homestayID).Return(listing, nil)

		err := srv.UnblockDate(ctx, "someone", homestayID, date(2026, 7, 4))

		assert.True(t, errors.Is(err, domainerrors.ErrNotHomestayOwner))
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, _, srv := newService(t)

		_, err := srv.SetPricing(ctx, "host", homestayID, date(2026, 7, 4), 0, "")

		assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
	})
}

package impl

import (
	"context"
	"testing"
	"time"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/service"
	"homestay/internal/errors"
	mockRepo "homestay/internal/mocks/repository"
	mockSvc "homestay/internal/mocks/service"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingFixtures struct {
	service   *bookingService
	factory   *mockRepo.RepositoryFactory
	publisher *mockSvc.MockEventPublisher
	notifier  *mockSvc.MockPushNotifier
	qrcode    *mockSvc.MockQRCodeService
	homestay  *entity.Homestay
}

func newBookingFixtures(t *testing.T) bookingFixtures {
	tx, factory := newTx(t)
	f := bookingFixtures{
		factory:   factory,
		publisher: mockSvc.NewMockEventPublisher(t),
		notifier:  mockSvc.NewMockPushNotifier(t),
		qrcode:    mockSvc.NewMockQRCodeService(t),
		homestay: &entity.Homestay{
			ID:         uuid.New(),
			HostID:     "host",
			Title:      "Hillside cabin",
			BasePrice:  100,
			MaxGuests:  4,
			IsActive:   true,
			IsApproved: true,
		},
	}
	f.service = NewBookingService(BookingServiceParams{
		TxManager:    tx,
		UserRepo:     factory.Users,
		HomestayRepo: factory.Homestays,
		BookingRepo:  factory.Bookings,
		QRCode:       f.qrcode,
		Publisher:    f.publisher,
		Notifier:     f.notifier,
		Logger:       newDiscardLogger(),
	}).(*bookingService)
	f.service.now = fixedClock(date(2026, 5, 1))

	return f
}

func TestBookingService_Create_PricesNightsAndAppliesPromotion(t *testing.T) {
	f := newBookingFixtures(t)
	ctx := context.Background()
	checkIn, checkOut := date(2026, 6, 10), date(2026, 6, 13)
	promotion := &entity.Promotion{ID: uuid.New(), Code: "SUMMER", DiscountPercent: 10, IsActive: true, ValidFrom: date(2026, 1, 1), ValidTo: date(2026, 12, 31)}

	f.factory.Homestays.On("FindByID", ctx, f.homestay.ID).Return(f.homestay, nil)
	f.factory.Availability.On("FindBlockedDates", ctx, f.homestay.ID, checkIn, checkOut).Return([]*entity.BlockedDate{}, nil)
	f.factory.Bookings.On("FindOverlapping", ctx, f.homestay.ID, checkIn, checkOut).Return([]*entity.Booking{}, nil)
	f.factory.Availability.On("FindPricing", ctx, f.homestay.ID, checkIn, checkOut).Return([]*entity.HomestayPricing{
		{Date: date(2026, 6, 11), Price: 150.5},
	}, nil)
	f.factory.Promotions.On("FindByCode", ctx, "SUMMER").Return(promotion, nil)
	f.factory.Bookings.On("Create", ctx, mock.AnythingOfType("*entity.Booking")).Return(nil)
	f.publisher.On("PublishEvent", ctx, mock.MatchedBy(func(e *service.DomainEvent) bool {
		return e.Type == service.EventBookingCreated
	})).Return(nil)
	f.factory.Users.On("FindByID", ctx, "host").Return(&entity.User{ID: "host", PushToken: "host-device"}, nil)
	f.notifier.On("Push", ctx, "host-device", "New booking", mock.Anything, mock.Anything).Return(nil)

	booking, err := f.service.Create(ctx, "guest", &usecase.CreateBookingInput{
		HomestayID:    f.homestay.ID,
		CheckIn:       checkIn.Add(14 * time.Hour),
		CheckOut:      checkOut,
		Guests:        2,
		PromotionCode: "summer",
	})

	require.NoError(t, err)
	// 100 + 150.50 + 100 = 350.50, minus 10% (35.05)
	assert.InDelta(t, 35.05, booking.DiscountAmount, 0.001)
	assert.InDelta(t, 315.45, booking.TotalPrice, 0.001)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.Equal(t, &promotion.ID, booking.PromotionID)
	assert.Equal(t, checkIn, booking.CheckIn)
}

func TestBookingService_Create_RejectsUnavailableDates(t *testing.T) {
	checkIn, checkOut := date(2026, 6, 10), date(2026, 6, 12)
	ctx := context.Background()
	input := &usecase.CreateBookingInput{CheckIn: checkIn, CheckOut: checkOut, Guests: 1}

	t.Run("blocked", func(t *testing.T) {
		f := newBookingFixtures(t)
		input.HomestayID = f.homestay.ID
		f.factory.Homestays.On("FindByID", ctx, f.homestay.ID).Return(f.homestay, nil)
		f.factory.Availability.On("FindBlockedDates", ctx, f.homestay.ID, checkIn, checkOut).
			Return([]*entity.BlockedDate{{Date: date(2026, 6, 11)}}, nil)

		_, err := f.service.Create(ctx, "guest", input)

		assert.True(t, errors.Is(err, domainerrors.ErrDatesUnavailable))
		assert.Equal(t, domainerrors.KindInvalidOperation, domainerrors.KindOf(err))
	})

	t.Run("overlapping booking", func(t *testing.T) {
		f := newBookingFixtures(t)
		input.HomestayID = f.homestay.ID
		f.factory.Homestays.On("FindByID", ctx, f.homestay.ID).Return(f.homestay, nil)
		f.factory.Availability.On("FindBlockedDates", ctx, f.homestay.ID, checkIn, checkOut).Return(nil, nil)
		f.factory.Bookings.On("FindOverlapping", ctx, f.homestay.ID, checkIn, checkOut).
			Return([]*entity.Booking{{ID: uuid.New(), Status: entity.BookingStatusConfirmed}}, nil)

		_, err := f.service.Create(ctx, "guest", input)

		assert.True(t, errors.Is(err, domainerrors.ErrDatesUnavailable))
	})

	t.Run("not approved", func(t *testing.T) {
		f := newBookingFixtures(t)
		input.HomestayID = f.homestay.ID
		f.homestay.IsApproved = false
		f.factory.Homestays.On("FindByID", ctx, f.homestay.ID).Return(f.homestay, nil)

		_, err := f.service.Create(ctx, "guest", input)

		assert.True(t, errors.Is(err, domainerrors.ErrHomestayNotBookable))
	})

	t.Run("own listing", func(t *testing.T) {
		f := newBookingFixtures(t)
		input.HomestayID = f.homestay.ID
		f.factory.Homestays.On("FindByID", ctx, f.homestay.ID).Return(f.homestay, nil)

		_, err := f.service.Create(ctx, "host", input)

		assert.Equal(t, domainerrors.KindInvalidOperation, domainerrors.KindOf(err))
	})
}

func TestBookingService_Create_Validation(t *testing.T) {
	f := newBookingFixtures(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input usecase.CreateBookingInput
	}{
		{name: "checkout before checkin", input: usecase.CreateBookingInput{CheckIn: date(2026, 6, 10), CheckOut: date(2026, 6, 10), Guests: 1}},
		{name: "past", input: usecase.CreateBookingInput{CheckIn: date(2026, 4, 1), CheckOut: date(2026, 4, 3), Guests: 1}},
		{name: "too long", input: usecase.CreateBookingInput{CheckIn: date(2026, 6, 1), CheckOut: date(2026, 10, 1), Guests: 1}},
		{name: "no guests", input: usecase.CreateBookingInput{CheckIn: date(2026, 6, 1), CheckOut: date(2026, 6, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(ctx, "guest", &tt.input)

			assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("guest cancels pending booking", func(t *testing.T) {
		f := newBookingFixtures(t)
		booking := &entity.Booking{ID: uuid.New(), UserID: "guest", HomestayID: f.homestay.ID, Status: entity.BookingStatusPending}
		f.factory.Bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
		f.factory.Homestays.On("FindByID", ctx, f.homestay.ID).Return(f.homestay, nil)
		f.factory.Bookings.On("UpdateStatus", ctx, booking.ID, entity.BookingStatusCancelled).Return(nil)
		f.publisher.On("PublishEvent", ctx, mock.Anything).Return(errors.New("broker down"))

		got, err := f.service.Cancel(ctx, "guest", booking.ID)

		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, got.Status)
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newBookingFixtures(t)
		booking := &entity.Booking{ID: uuid.New(), UserID: "guest", HomestayID: f.homestay.ID, Status: entity.BookingStatusCancelled}
		f.factory.Bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
		f.factory.Homestays.On("FindByID", ctx, f.homestay.ID).Return(f.homestay, nil)

		_, err := f.service.Cancel(ctx, "host", booking.ID)

		assert.True(t, errors.Is(err, domainerrors.ErrBookingNotCancellable))
	})

	t.Run("stranger", func(t *testing.T) {
		f := newBookingFixtures(t)
		booking := &entity.Booking{ID: uuid.New(), UserID: "guest", HomestayID: f.homestay.ID, Status: entity.BookingStatusPending}
		f.factory.Bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
		f.factory.Homestays.On("FindByID", ctx, f.homestay.ID).Return(f.homestay, nil)

		_, err := f.service.Cancel(ctx, "someone-else", booking.ID)

		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	})
}

func TestBookingService_QRCode(t *testing.T) {
	f := newBookingFixtures(t)
	ctx := context.Background()
	booking := &entity.Booking{ID: uuid.New(), UserID: "guest", HomestayID: f.homestay.ID}

	f.factory.Bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
	f.factory.Homestays.On("FindByID", ctx, f.homestay.ID).Return(f.homestay, nil)
	f.qrcode.On("GenerateBookingQR", booking.ID).Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := f.service.QRCode(ctx, "guest", booking.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)
}

func TestStayPrice(t *testing.T) {
	booking := &entity.Booking{CheckIn: date(2026, 1, 1), CheckOut: date(2026, 1, 4)}

	assert.InDelta(t, 240.0, stayPrice(booking, 80, nil), 0.0001)
	assert.InDelta(t, 260.1, stayPrice(booking, 80, []*entity.HomestayPricing{{Date: date(2026, 1, 3), Price: 100.1}}), 0.0001)
}

package impl

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	deliverycontext "homestay/internal/delivery/context"
	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/domain/service"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// maxStayNights bounds a single booking.
const maxStayNights = 90

type bookingService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	homestayRepo repository.HomestayRepository
	bookingRepo  repository.BookingRepository
	qrcode       service.QRCodeService
	outbox       *outbox
	logger       *slog.Logger
	now          func() time.Time
}

// BookingServiceParams holds dependencies for BookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	HomestayRepo repository.HomestayRepository
	BookingRepo  repository.BookingRepository
	QRCode       service.QRCodeService
	Publisher    service.EventPublisher
	Notifier     service.PushNotifier
	Logger       *slog.Logger
}

// NewBookingService creates the reservation use case
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	return &bookingService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		homestayRepo: params.HomestayRepo,
		bookingRepo:  params.BookingRepo,
		qrcode:       params.QRCode,
		outbox:       newOutbox(params.Publisher, params.Notifier, params.Logger),
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create reserves the dates inside one transaction: availability is checked
// against blocked dates and active bookings, then the price is summed per night.
func (srv *bookingService) Create(ctx context.Context, userID string, input *usecase.CreateBookingInput) (*entity.Booking, error) {
	checkIn := entity.TruncateDate(input.CheckIn)
	checkOut := entity.TruncateDate(input.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, domainerrors.NewValidationError("checkOut must be after checkIn")
	}
	if checkIn.Before(entity.TruncateDate(srv.now())) {
		return nil, domainerrors.NewValidationError("checkIn must not be in the past")
	}
	if nights := int(checkOut.Sub(checkIn).Hours() / 24); nights > maxStayNights {
		return nil, domainerrors.NewValidationError("a stay is limited to " + strconv.Itoa(maxStayNights) + " nights")
	}
	if input.Guests <= 0 {
		return nil, domainerrors.NewValidationError("guests must be positive")
	}

	var booking *entity.Booking
	var homestay *entity.Homestay
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		homestay, err = repoFactory.NewHomestayRepository().FindByID(ctx, input.HomestayID)
		if err != nil {
			return err
		}
		if !homestay.IsBookable() {
			return domainerrors.ErrHomestayNotBookable
		}
		if homestay.HostID == userID {
			return domainerrors.ErrInvalidOperation.WrapMessage("hosts cannot book their own homestay")
		}
		if input.Guests > homestay.MaxGuests {
			return domainerrors.NewValidationError("guests exceed the homestay capacity of " + strconv.Itoa(homestay.MaxGuests))
		}

		availabilityRepo := repoFactory.NewAvailabilityRepository()
		blocked, err := availabilityRepo.FindBlockedDates(ctx, homestay.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if len(blocked) > 0 {
			return domainerrors.ErrDatesUnavailable.WrapMessage("blocked on " + blocked[0].Date.Format(time.DateOnly))
		}

		bookingRepo := repoFactory.NewBookingRepository()
		overlapping, err := bookingRepo.FindOverlapping(ctx, homestay.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return domainerrors.ErrDatesUnavailable
		}

		pricing, err := availabilityRepo.FindPricing(ctx, homestay.ID, checkIn, checkOut)
		if err != nil {
			return err
		}

		booking = &entity.Booking{
			UserID:     userID,
			HomestayID: homestay.ID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     input.Guests,
			Status:     entity.BookingStatusPending,
			Note:       input.Note,
		}
		subtotal := stayPrice(booking, homestay.BasePrice, pricing)

		if code := strings.ToUpper(strings.TrimSpace(input.PromotionCode)); code != "" {
			promotion, err := repoFactory.NewPromotionRepository().FindByCode(ctx, code)
			if err != nil {
				return err
			}
			if !promotion.IsApplicable(srv.now()) {
				return domainerrors.ErrPromotionNotApplicable
			}
			booking.PromotionID = &promotion.ID
			booking.DiscountAmount = promotion.Discount(subtotal)
		}
		booking.TotalPrice = math.Round((subtotal-booking.DiscountAmount)*100) / 100

		return bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create booking")
	}

	srv.log(ctx).Info("Booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("homestay_id", homestay.ID.String()),
		slog.Float64("total", booking.TotalPrice),
	)

	srv.announce(ctx, booking, homestay)

	return booking, nil
}

// announce tells the host about a new booking; failures only get logged.
func (srv *bookingService) announce(ctx context.Context, booking *entity.Booking, homestay *entity.Homestay) {
	srv.outbox.publish(ctx, service.EventBookingCreated, booking.ID.String(), []string{booking.UserID, homestay.HostID}, map[string]string{
		"homestay_id": homestay.ID.String(),
		"check_in":    booking.CheckIn.Format(time.DateOnly),
		"check_out":   booking.CheckOut.Format(time.DateOnly),
	})

	host, err := srv.userRepo.FindByID(ctx, homestay.HostID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load host for booking push", slog.Any("error", err))

		return
	}
	srv.outbox.push(ctx, host, "New booking", homestay.Title+": "+booking.CheckIn.Format(time.DateOnly)+" to "+booking.CheckOut.Format(time.DateOnly), map[string]string{
		"type":       string(entity.NotificationTypeBookingCreated),
		"booking_id": booking.ID.String(),
	})
}

// stayPrice sums the nightly price, preferring a date's pricing rule over the base price.
func stayPrice(booking *entity.Booking, basePrice float64, rules []*entity.HomestayPricing) float64 {
	byDate := make(map[time.Time]float64, len(rules))
	for _, rule := range rules {
		byDate[entity.TruncateDate(rule.Date)] = rule.Price
	}

	total := 0.0
	for _, night := range booking.StayDates() {
		if price, ok := byDate[night]; ok {
			total += price
		} else {
			total += basePrice
		}
	}

	return math.Round(total*100) / 100
}

// Get returns the booking to its guest or to the host of the listing.
func (srv *bookingService) Get(ctx context.Context, callerID string, id uuid.UUID) (*entity.Booking, error) {
	booking, _, err := srv.visible(ctx, callerID, id)

	return booking, err
}

func (srv *bookingService) ListMine(ctx context.Context, userID string) ([]*entity.Booking, error) {
	bookings, err := srv.bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookings")
	}

	return bookings, nil
}

// Cancel releases the dates of an active booking. Guest and host may both cancel.
func (srv *bookingService) Cancel(ctx context.Context, callerID string, id uuid.UUID) (*entity.Booking, error) {
	booking, homestay, err := srv.visible(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, domainerrors.ErrBookingNotCancellable
	}

	if err := srv.bookingRepo.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		return nil, errors.Wrap(err, "failed to cancel booking")
	}
	booking.Status = entity.BookingStatusCancelled

	srv.outbox.publish(ctx, service.EventBookingCancelled, booking.ID.String(), []string{booking.UserID, homestay.HostID}, map[string]string{
		"cancelled_by": callerID,
	})

	return booking, nil
}

func (srv *bookingService) QRCode(ctx context.Context, callerID string, id uuid.UUID) ([]byte, error) {
	booking, _, err := srv.visible(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GenerateBookingQR(booking.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render booking QR code")
	}

	return png, nil
}

// visible loads the booking and its listing and checks the caller is the guest or the host.
func (srv *bookingService) visible(ctx context.Context, callerID string, id uuid.UUID) (*entity.Booking, *entity.Homestay, error) {
	booking, err := srv.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to find booking")
	}

	homestay, err := srv.homestayRepo.FindByID(ctx, booking.HomestayID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to find homestay")
	}
	if booking.UserID != callerID && homestay.HostID != callerID {
		return nil, nil, domainerrors.ErrUnauthorized.WrapMessage("booking belongs to another user")
	}

	return booking, homestay, nil
}

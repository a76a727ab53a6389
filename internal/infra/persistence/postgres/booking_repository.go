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
	"gorm.io/gorm"
)

// bookingRepository implements the repository.BookingRepository interface.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (repo *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	bookingM := fromBookingDomain(booking)

	if err := repo.db.WithContext(ctx).Create(bookingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidOperation.WrapMessage("invalid booking reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking")
	}

	booking.ID = bookingM.ID
	booking.CreatedAt = bookingM.CreatedAt
	booking.UpdatedAt = bookingM.UpdatedAt

	return nil
}

func (repo *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var bookingM model.BookingModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&bookingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking by id")
	}

	return toBookingDomain(&bookingM), nil
}

func (repo *bookingRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Booking, error) {
	var bookingModels []*model.BookingModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("check_in DESC").
		Find(&bookingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by user")
	}

	return toBookingDomains(bookingModels), nil
}

// FindOverlapping returns pending or confirmed bookings whose stay intersects [checkIn, checkOut).
func (repo *bookingRepository) FindOverlapping(ctx context.Context, homestayID uuid.UUID, checkIn, checkOut time.Time) ([]*entity.Booking, error) {
	var bookingModels []*model.BookingModel
	if err := repo.db.WithContext(ctx).
		Where("homestay_id = ?", homestayID).
		Where("status IN ?", []string{string(entity.BookingStatusPending), string(entity.BookingStatusConfirmed)}).
		Where("check_in < ? AND check_out > ?", calendarDay(checkOut), calendarDay(checkIn)).
		Order("check_in").
		Find(&bookingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find overlapping bookings")
	}

	return toBookingDomains(bookingModels), nil
}

func (repo *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update booking status")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBookingNotFound
	}

	return nil
}

func toBookingDomains(data []*model.BookingModel) []*entity.Booking {
	bookings := make([]*entity.Booking, 0, len(data))
	for _, bookingM := range data {
		bookings = append(bookings, toBookingDomain(bookingM))
	}

	return bookings
}

// toBookingDomain converts a GORM BookingModel to a domain Booking entity.
func toBookingDomain(data *model.BookingModel) *entity.Booking {
	if data == nil {
		return nil
	}

	return &entity.Booking{
		ID:             data.ID,
		UserID:         data.UserID,
		HomestayID:     data.HomestayID,
		PromotionID:    data.PromotionID,
		CheckIn:        entity.TruncateDate(time.Time(data.CheckIn)),
		CheckOut:       entity.TruncateDate(time.Time(data.CheckOut)),
		Guests:         data.Guests,
		TotalPrice:     data.TotalPrice,
		DiscountAmount: data.DiscountAmount,
		Status:         entity.BookingStatus(data.Status),
		Note:           data.Note,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromBookingDomain converts a domain Booking entity to a GORM BookingModel.
func fromBookingDomain(data *entity.Booking) *model.BookingModel {
	if data == nil {
		return nil
	}

	return &model.BookingModel{
		ID:             data.ID,
		UserID:         data.UserID,
		HomestayID:     data.HomestayID,
		PromotionID:    data.PromotionID,
		CheckIn:        calendarDay(data.CheckIn),
		CheckOut:       calendarDay(data.CheckOut),
		Guests:         data.Guests,
		TotalPrice:     data.TotalPrice,
		DiscountAmount: data.DiscountAmount,
		Status:         string(data.Status),
		Note:           data.Note,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// paymentRepository implements the repository.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentM := &model.PaymentModel{
		ID:             payment.ID,
		UserID:         payment.UserID,
		BookingID:      payment.BookingID,
		Amount:         payment.Amount,
		Method:         payment.Method,
		Status:         string(payment.Status),
		TransactionRef: payment.TransactionRef,
		PaidAt:         payment.PaidAt,
	}

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBookingNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	payment.ID = paymentM.ID
	payment.CreatedAt = paymentM.CreatedAt

	return nil
}

func (repo *paymentRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	var paymentModels []*model.PaymentModel
	if err := repo.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at").
		Find(&paymentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find payments by booking")
	}

	payments := make([]*entity.Payment, 0, len(paymentModels))
	for _, paymentM := range paymentModels {
		payments = append(payments, &entity.Payment{
			ID:             paymentM.ID,
			UserID:         paymentM.UserID,
			BookingID:      paymentM.BookingID,
			Amount:         paymentM.Amount,
			Method:         paymentM.Method,
			Status:         entity.PaymentStatus(paymentM.Status),
			TransactionRef: paymentM.TransactionRef,
			PaidAt:         paymentM.PaidAt,
			CreatedAt:      paymentM.CreatedAt,
		})
	}

	return payments, nil
}

package impl

import (
	"context"
	"log/slog"
	"math"
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

var paymentMethods = map[string]bool{
	"card":          true,
	"bank_transfer": true,
	"cash":          true,
	"e_wallet":      true,
}

type paymentService struct {
	txManager repository.TransactionManager
	outbox    *outbox
	logger    *slog.Logger
	now       func() time.Time
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewPaymentService creates the payment use case
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		txManager: params.TxManager,
		outbox:    newOutbox(params.Publisher, nil, params.Logger),
		logger:    params.Logger,
		now:       time.Now,
	}
}

// Pay settles a pending booking in full. The payment row and the booking
// confirmation commit together.
func (srv *paymentService) Pay(ctx context.Context, callerID string, bookingID uuid.UUID, input *usecase.PayInput) (*entity.Payment, error) {
	method := strings.ToLower(strings.TrimSpace(input.Method))
	if !paymentMethods[method] {
		return nil, domainerrors.NewValidationError("method must be one of card, bank_transfer, cash, e_wallet")
	}

	var payment *entity.Payment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookingRepo := repoFactory.NewBookingRepository()
		booking, err := bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.UserID != callerID {
			return domainerrors.ErrUnauthorized.WrapMessage("booking belongs to another user")
		}
		if booking.Status != entity.BookingStatusPending {
			return domainerrors.ErrBookingNotPayable
		}
		if math.Abs(input.Amount-booking.TotalPrice) > 0.005 {
			return domainerrors.NewValidationError("amount must equal the booking total")
		}

		paidAt := srv.now().UTC()
		payment = &entity.Payment{
			UserID:         callerID,
			BookingID:      bookingID,
			Amount:         booking.TotalPrice,
			Method:         method,
			Status:         entity.PaymentStatusCompleted,
			TransactionRef: "PAY-" + strings.ToUpper(uuid.NewString()[:8]),
			PaidAt:         &paidAt,
		}
		if err := repoFactory.NewPaymentRepository().Create(ctx, payment); err != nil {
			return err
		}

		return bookingRepo.UpdateStatus(ctx, bookingID, entity.BookingStatusConfirmed)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record payment")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Payment completed",
		slog.String("booking_id", bookingID.String()),
		slog.String("payment_id", payment.ID.String()),
	)
	srv.outbox.publish(ctx, service.EventPaymentCompleted, bookingID.String(), []string{callerID}, map[string]string{
		"payment_id": payment.ID.String(),
		"method":     method,
	})

	return payment, nil
}

package handler

import (
	"net/http"

	"homestay/internal/delivery/http/response"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BookingHandlerParams holds dependencies for BookingHandler, injected by Fx.
type BookingHandlerParams struct {
	fx.In

	BookingUC usecase.BookingUsecase
	PaymentUC usecase.PaymentUsecase
}

// BookingHandler serves reservations and their payments.
type BookingHandler struct {
	bookingUC usecase.BookingUsecase
	paymentUC usecase.PaymentUsecase
}

// NewBookingHandler is the constructor for BookingHandler
func NewBookingHandler(params BookingHandlerParams) *BookingHandler {
	return &BookingHandler{
		bookingUC: params.BookingUC,
		paymentUC: params.PaymentUC,
	}
}

type CreateBookingRequest struct {
	HomestayID    uuid.UUID `json:"homestayId" validate:"required"`
	CheckIn       string    `json:"checkIn" validate:"required"`
	CheckOut      string    `json:"checkOut" validate:"required"`
	Guests        int       `json:"guests" validate:"gt=0"`
	PromotionCode string    `json:"promotionCode" validate:"max=50"`
	Note          string    `json:"note" validate:"max=1000"`
}

type PayRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Method string  `json:"method" validate:"required"`
}

func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	checkIn, err := parseDate("checkIn", req.CheckIn)
	if err != nil {
		return err
	}
	checkOut, err := parseDate("checkOut", req.CheckOut)
	if err != nil {
		return err
	}

	booking, err := h.bookingUC.Create(c.Request().Context(), userID, &usecase.CreateBookingInput{
		HomestayID:    req.HomestayID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		PromotionCode: req.PromotionCode,
		Note:          req.Note,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, newBookingResponse(booking), "Booking created")
}

func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.bookingUC.Get(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newBookingResponse(booking), "")
}

func (h *BookingHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingUC.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, newBookingResponse(b))
	}

	return response.Success(c, http.StatusOK, out, "")
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.bookingUC.Cancel(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newBookingResponse(booking), "Booking cancelled")
}

// QRCode returns the booking confirmation code as a PNG image.
func (h *BookingHandler) QRCode(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	png, err := h.bookingUC.QRCode(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Pay settles a pending booking.
func (h *BookingHandler) Pay(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req PayRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	payment, err := h.paymentUC.Pay(c.Request().Context(), userID, id, &usecase.PayInput{Amount: req.Amount, Method: req.Method})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, PaymentResponse{
		ID:             payment.ID,
		BookingID:      payment.BookingID,
		Amount:         payment.Amount,
		Method:         payment.Method,
		Status:         string(payment.Status),
		TransactionRef: payment.TransactionRef,
		PaidAt:         payment.PaidAt,
	}, "Payment completed")
}

// PromotionHandlerParams holds dependencies for PromotionHandler, injected by Fx.
type PromotionHandlerParams struct {
	fx.In

	PromotionUC usecase.PromotionUsecase
}

// PromotionHandler serves discount code administration.
type PromotionHandler struct {
	promotionUC usecase.PromotionUsecase
}

// NewPromotionHandler is the constructor for PromotionHandler
func NewPromotionHandler(params PromotionHandlerParams) *PromotionHandler {
	return &PromotionHandler{promotionUC: params.PromotionUC}
}

type CreatePromotionRequest struct {
	Code            string  `json:"code" validate:"required,max=50"`
	Description     string  `json:"description" validate:"max=500"`
	DiscountPercent float64 `json:"discountPercent" validate:"gt=0,lte=100"`
	ValidFrom       string  `json:"validFrom" validate:"required"`
	ValidTo         string  `json:"validTo" validate:"required"`
}

func (h *PromotionHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreatePromotionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	validFrom, err := parseDate("validFrom", req.ValidFrom)
	if err != nil {
		return err
	}
	validTo, err := parseDate("validTo", req.ValidTo)
	if err != nil {
		return err
	}

	promotion, err := h.promotionUC.Create(c.Request().Context(), userID, &usecase.CreatePromotionInput{
		Code:            req.Code,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		ValidFrom:       validFrom,
		ValidTo:         validTo,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, PromotionResponse{
		ID:              promotion.ID,
		Code:            promotion.Code,
		Description:     promotion.Description,
		DiscountPercent: promotion.DiscountPercent,
		ValidFrom:       promotion.ValidFrom.Format(dateLayout),
		ValidTo:         promotion.ValidTo.Format(dateLayout),
		IsActive:        promotion.IsActive,
	}, "Promotion created")
}

// Delete removes a code. Bookings that used it keep their price.
func (h *PromotionHandler) Delete(c echo.Context) error {
	if err := h.promotionUC.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

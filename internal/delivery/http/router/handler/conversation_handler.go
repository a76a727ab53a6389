package handler

import (
	"net/http"

	"homestay/internal/delivery/http/response"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ConversationHandlerParams holds dependencies for ConversationHandler, injected by Fx.
type ConversationHandlerParams struct {
	fx.In

	ConversationUC usecase.ConversationUsecase
}

// ConversationHandler serves direct messaging.
type ConversationHandler struct {
	conversationUC usecase.ConversationUsecase
}

// NewConversationHandler is the constructor for ConversationHandler
func NewConversationHandler(params ConversationHandlerParams) *ConversationHandler {
	return &ConversationHandler{conversationUC: params.ConversationUC}
}

type StartConversationRequest struct {
	OtherUserID string `json:"otherUserId" validate:"required"`
	HomestayID  string `json:"homestayId" validate:"omitempty,uuid"`
	BookingID   string `json:"bookingId" validate:"omitempty,uuid"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// Start returns the caller's thread with another user, creating it when needed.
func (h *ConversationHandler) Start(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req StartConversationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	homestayID, err := optionalUUID("homestayId", req.HomestayID)
	if err != nil {
		return err
	}
	bookingID, err := optionalUUID("bookingId", req.BookingID)
	if err != nil {
		return err
	}

	conversation, err := h.conversationUC.Start(c.Request().Context(), userID, &usecase.StartConversationInput{
		OtherUserID: req.OtherUserID,
		HomestayID:  homestayID,
		BookingID:   bookingID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newConversationResponse(conversation), "")
}

func (h *ConversationHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	conversations, err := h.conversationUC.List(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]*ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		out = append(out, newConversationResponse(conv))
	}

	return response.Success(c, http.StatusOK, out, "")
}

// Messages lists the newest messages of a thread; ?limit= caps the count.
func (h *ConversationHandler) Messages(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return domainerrors.NewValidationError("limit must be a number")
	}

	messages, err := h.conversationUC.Messages(c.Request().Context(), userID, id, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, newMessageResponse(m))
	}

	return response.Success(c, http.StatusOK, out, "")
}

func (h *ConversationHandler) Send(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	message, err := h.conversationUC.Send(c.Request().Context(), userID, id, req.Content)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, newMessageResponse(message), "Message sent")
}

func (h *ConversationHandler) MarkRead(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	count, err := h.conversationUC.MarkRead(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"updated": count}, "")
}

func (h *ConversationHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.conversationUC.Delete(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

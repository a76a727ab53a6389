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

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
}

// NotificationHandler serves the caller's inbox and connection requests.
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{notificationUC: params.NotificationUC}
}

type ConnectionRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Message string `json:"message" validate:"max=500"`
}

func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return domainerrors.NewValidationError("limit must be a number")
	}

	notifications, err := h.notificationUC.List(c.Request().Context(), userID, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, newNotificationResponse(n))
	}

	return response.Success(c, http.StatusOK, out, "")
}

// RequestConnection asks another user to chat.
func (h *NotificationHandler) RequestConnection(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req ConnectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	notification, err := h.notificationUC.RequestConnection(c.Request().Context(), userID, req.UserID, req.Message)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, newNotificationResponse(notification), "Request sent")
}

// Accept answers a connection request and returns the linked conversation.
func (h *NotificationHandler) Accept(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	conversation, err := h.notificationUC.Accept(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newConversationResponse(conversation), "Request accepted")
}

func (h *NotificationHandler) Decline(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationUC.Decline(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Request declined")
}

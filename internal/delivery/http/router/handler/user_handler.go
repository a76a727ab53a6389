package handler

import (
	"net/http"

	"homestay/internal/delivery/http/response"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC     usecase.UserUsecase
	HomestayUC usecase.HomestayUsecase
}

// UserHandler serves the caller's own account.
type UserHandler struct {
	userUC     usecase.UserUsecase
	homestayUC usecase.HomestayUsecase
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC:     params.UserUC,
		homestayUC: params.HomestayUC,
	}
}

type PushTokenRequest struct {
	Token string `json:"token" validate:"max=4096"`
}

// GetProfile returns the caller's account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "")
}

// UpdatePushToken stores the caller's device token. An empty token turns push off.
func (h *UserHandler) UpdatePushToken(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req PushTokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.userUC.UpdatePushToken(c.Request().Context(), userID, req.Token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Push token updated")
}

// DeleteAccount removes the caller's account.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.userUC.DeleteAccount(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// ListMyHomestays returns every listing of the calling host, inactive ones included.
func (h *UserHandler) ListMyHomestays(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	homestays, err := h.homestayUC.ListByHost(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newHomestayResponses(homestays), "")
}

// Package handler contains the HTTP handlers for the application.
// Handlers return errors unchanged; the exception stage turns them into responses.
package handler

import (
	"time"

	deliverycontext "homestay/internal/delivery/context"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const dateLayout = time.DateOnly

// callerID returns the authenticated user's ID.
func callerID(c echo.Context) (string, error) {
	identity := deliverycontext.GetIdentity(c)
	if identity == nil || identity.UserID == "" {
		return "", domainerrors.ErrUnauthorized.WrapMessage("no authenticated caller")
	}

	return identity.UserID, nil
}

// bind decodes and validates the request into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.NewValidationError("Invalid request body")
	}

	return errors.WithStack(c.Validate(req))
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.NewValidationError("Invalid " + name)
	}

	return id, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domainerrors.NewValidationError(field + " must be a date in YYYY-MM-DD form")
	}

	return t, nil
}

func optionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return nil, domainerrors.NewValidationError("Invalid " + field)
	}

	return &id, nil
}

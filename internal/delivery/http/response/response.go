package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope of every successful API response. Failures are
// written by the exception stage with the same success/message fields.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 response
func Created(c echo.Context, data any, message string) error {
	return Success(c, http.StatusCreated, data, message)
}

// NoContent writes a 204 response
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

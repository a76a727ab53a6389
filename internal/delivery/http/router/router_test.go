package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"homestay/config"
	"homestay/internal/delivery/http/middleware"
	"homestay/internal/delivery/http/router/handler"
	mockSvc "homestay/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newRoutedServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.APIPrefix = "/api"
	exception := middleware.NewExceptionMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)

	e := echo.New()
	e.HTTPErrorHandler = exception.HandleError
	NewRouter(RouterParams{
		AuthHandler:         &handler.AuthHandler{},
		UserHandler:         &handler.UserHandler{},
		HomestayHandler:     &handler.HomestayHandler{},
		AmenityHandler:      &handler.AmenityHandler{},
		BookingHandler:      &handler.BookingHandler{},
		PromotionHandler:    &handler.PromotionHandler{},
		ConversationHandler: &handler.ConversationHandler{},
		NotificationHandler: &handler.NotificationHandler{},
		PageHandler:         &handler.PageHandler{},
		AuthMiddleware:      middleware.NewAuthMiddleware(mockSvc.NewMockTokenService(t)),
		Config:              cfg,
	}).RegisterRoutes(e)

	return e
}

func TestRouter_UnknownAPIPathsAreNotFound(t *testing.T) {
	e := newRoutedServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{name: "prefix root", method: http.MethodGet, path: "/api", want: http.StatusNotFound},
		{name: "unknown resource", method: http.MethodGet, path: "/api/nowhere", want: http.StatusNotFound},
		{name: "unknown path under bookings", method: http.MethodGet, path: "/api/bookings/x/y/z", want: http.StatusNotFound},
		{name: "unknown path under promotions", method: http.MethodGet, path: "/api/promotions/x/y", want: http.StatusNotFound},
		{name: "known route still needs a token", method: http.MethodGet, path: "/api/bookings", want: http.StatusUnauthorized},
		{name: "admin route still needs a token", method: http.MethodDelete, path: "/api/promotions/SUMMER", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

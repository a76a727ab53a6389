package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homestay/config"
	deliverycontext "homestay/internal/delivery/context"
	"homestay/internal/delivery/http/middleware"
	"homestay/internal/delivery/http/validator"
	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	mockSvc "homestay/internal/mocks/service"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthUsecase struct{ mock.Mock }

func (m *mockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, refreshToken)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

type mockBookingUsecase struct{ mock.Mock }

func (m *mockBookingUsecase) Create(ctx context.Context, userID string, input *usecase.CreateBookingInput) (*entity.Booking, error) {
	args := m.Called(ctx, userID, input)
	out, _ := args.Get(0).(*entity.Booking)

	return out, args.Error(1)
}

func (m *mockBookingUsecase) Get(ctx context.Context, callerID string, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, callerID, id)
	out, _ := args.Get(0).(*entity.Booking)

	return out, args.Error(1)
}

func (m *mockBookingUsecase) ListMine(ctx context.Context, userID string) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]*entity.Booking)

	return out, args.Error(1)
}

func (m *mockBookingUsecase) Cancel(ctx context.Context, callerID string, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, callerID, id)
	out, _ := args.Get(0).(*entity.Booking)

	return out, args.Error(1)
}

func (m *mockBookingUsecase) QRCode(ctx context.Context, callerID string, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, callerID, id)
	out, _ := args.Get(0).([]byte)

	return out, args.Error(1)
}

// newTestServer wires the exception stage and validator the way the server does.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.APIPrefix = "/api"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	exception := middleware.NewExceptionMiddleware(logger, cfg)

	e := echo.New()
	e.HTTPErrorHandler = exception.HandleError
	e.Use(exception.Handle)
	e.Validator = validator.New()

	return e
}

// asCaller marks requests as coming from an authenticated user.
func asCaller(userID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			deliverycontext.SetIdentity(c, &deliverycontext.Identity{UserID: userID, UserName: userID})

			return next(c)
		}
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuthHandler_Register(t *testing.T) {
	authUC := &mockAuthUsecase{}
	h := NewAuthHandler(AuthHandlerParams{AuthUC: authUC, Logger: slog.Default()})
	e := newTestServer(t)
	e.POST("/api/auth/register", h.Register)

	t.Run("invalid body is a validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"username":"al","email":"nope","password":"short"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["message"], "username must satisfy min=3")
		assert.Contains(t, body["message"], "email must satisfy email")
	})

	t.Run("created", func(t *testing.T) {
		authUC.On("Register", mock.Anything, &usecase.RegisterInput{
			UserName: "alice",
			Email:    "alice@example.com",
			Password: "correct-horse",
			IsHost:   true,
		}).Return(&usecase.AuthOutput{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    900,
			User:         &entity.User{ID: "u1", UserName: "alice", PasswordHash: "secret-hash", IsHost: true},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"correct-horse","isHost":true}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret-hash")
		data := decodeBody(t, rec)["data"].(map[string]any)
		assert.Equal(t, "access", data["accessToken"])
		assert.Equal(t, "alice", data["user"].(map[string]any)["username"])
		authUC.AssertExpectations(t)
	})

	t.Run("business error goes through the exception stage", func(t *testing.T) {
		authUC.On("Register", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserAlreadyExists).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"correct-horse"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid operation", decodeBody(t, rec)["message"])
	})
}

func TestBookingHandler_Create(t *testing.T) {
	bookingUC := &mockBookingUsecase{}
	h := NewBookingHandler(BookingHandlerParams{BookingUC: bookingUC})
	e := newTestServer(t)
	e.POST("/api/bookings", h.Create, asCaller("guest"))
	homestayID := uuid.New()

	bookingUC.On("Create", mock.Anything, "guest", mock.MatchedBy(func(in *usecase.CreateBookingInput) bool {
		return in.HomestayID == homestayID &&
			in.CheckIn.Equal(time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)) &&
			in.CheckOut.Equal(time.Date(2026, 12, 23, 0, 0, 0, 0, time.UTC)) &&
			in.PromotionCode == "winter"
	})).Return(&entity.Booking{
		ID:         uuid.New(),
		UserID:     "guest",
		HomestayID: homestayID,
		CheckIn:    time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 12, 23, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalPrice: 270,
		Status:     entity.BookingStatusPending,
	}, nil)

	body := `{"homestayId":"` + homestayID.String() + `","checkIn":"2026-12-20","checkOut":"2026-12-23","guests":2,"promotionCode":"winter"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "2026-12-20", data["checkIn"])
	assert.Equal(t, "pending", data["status"])
	bookingUC.AssertExpectations(t)
}

func TestBookingHandler_CreateRejectsBadDate(t *testing.T) {
	h := NewBookingHandler(BookingHandlerParams{BookingUC: &mockBookingUsecase{}})
	e := newTestServer(t)
	e.POST("/api/bookings", h.Create, asCaller("guest"))

	body := `{"homestayId":"` + uuid.NewString() + `","checkIn":"20/12/2026","checkOut":"2026-12-23","guests":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "checkIn must be a date in YYYY-MM-DD form", decodeBody(t, rec)["message"])
}

func TestBookingHandler_QRCode(t *testing.T) {
	bookingUC := &mockBookingUsecase{}
	h := NewBookingHandler(BookingHandlerParams{BookingUC: bookingUC})
	e := newTestServer(t)
	e.GET("/api/bookings/:id/qrcode", h.QRCode, asCaller("guest"))
	id := uuid.New()
	bookingUC.On("QRCode", mock.Anything, "guest", id).Return([]byte("\x89PNG"), nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings/"+id.String()+"/qrcode", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "\x89PNG", rec.Body.String())
}

func TestHandlers_RequireCaller(t *testing.T) {
	h := NewBookingHandler(BookingHandlerParams{BookingUC: &mockBookingUsecase{}})
	e := newTestServer(t)
	e.GET("/api/bookings", h.List)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPageHandler_ErrorPageEscapesMessage(t *testing.T) {
	h := NewPageHandler(PageHandlerParams{Storage: mockSvc.NewMockImageStorage(t), Logger: slog.Default()})
	e := newTestServer(t)
	e.GET(middleware.ErrorPagePath, h.ErrorPage)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, middleware.ErrorPagePath+"?message=%3Cscript%3Ealert(1)%3C%2Fscript%3E", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, rec.Body.String(), "<script>")
}

func TestPageHandler_Media(t *testing.T) {
	storage := mockSvc.NewMockImageStorage(t)
	h := NewPageHandler(PageHandlerParams{Storage: storage, Logger: slog.Default()})
	e := newTestServer(t)
	e.GET(MediaPath+"/*", h.Media)

	storage.On("Open", mock.Anything, "homestays/h1/a.png").Return(io.NopCloser(strings.NewReader("png")), "image/png", nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/homestays/h1/a.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/secrets/config.yaml", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
}

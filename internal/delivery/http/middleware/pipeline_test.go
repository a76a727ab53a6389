package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"homestay/config"
	deliverycontext "homestay/internal/delivery/context"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/errors"
	"homestay/internal/infra/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(debug bool, limit int) *config.Config {
	cfg := &config.Config{
		RateLimit: &config.RateLimitConfig{Enabled: true, Limit: limit, Window: time.Minute},
	}
	cfg.Env.Debug = debug
	cfg.HTTP.APIPrefix = "/api"

	return cfg
}

// newPipeline assembles the stages in production order around a single route.
func newPipeline(cfg *config.Config, handler echo.HandlerFunc) (*echo.Echo, *int) {
	logger := newDiscardLogger()
	e := echo.New()

	exception := NewExceptionMiddleware(logger, cfg)
	e.HTTPErrorHandler = exception.HandleError
	e.Use(exception.Handle)
	e.Use(NewSecurityHeadersMiddleware().Handle)
	e.Use(NewRateLimitMiddleware(ratelimit.NewMemoryStore(cfg.RateLimit.Limit, cfg.RateLimit.Window), logger, cfg).Handle)

	calls := 0
	wrapped := func(c echo.Context) error {
		calls++

		return handler(c)
	}
	e.GET("/api/thing", wrapped)
	e.GET("/page", wrapped)

	return e, &calls
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func assertSecurityHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	for _, h := range SecurityHeaders {
		assert.Equal(t, h[1], rec.Header().Get(h[0]), h[0])
	}
}

func TestSecurityHeaders_LiteralValues(t *testing.T) {
	e, _ := newPipeline(newTestConfig(false, 100), func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/thing", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=(), microphone=(), camera=()", rec.Header().Get("Permissions-Policy"))
	assert.Equal(t, ContentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
}

func TestRateLimit_RejectsRequestOverLimit(t *testing.T) {
	e, calls := newPipeline(newTestConfig(false, 100), func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rec := serve(e, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	rec := serve(e, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, RateLimitMessage, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, 100, *calls)
	assertSecurityHeaders(t, rec)

	// Another address is unaffected.
	req = httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	req.RemoteAddr = "203.0.113.8:5000"
	assert.Equal(t, http.StatusOK, serve(e, req).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	cfg := newTestConfig(false, 1)
	cfg.RateLimit.Enabled = false
	e, calls := newPipeline(cfg, func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(e, httptest.NewRequest(http.MethodGet, "/api/thing", nil)).Code)
	}
	assert.Equal(t, 3, *calls)
}

func TestClientID(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "ip_198.51.100.4", ClientID(c))

	deliverycontext.SetIdentity(c, &deliverycontext.Identity{UserID: "u1", UserName: "alice"})
	assert.Equal(t, "user_alice", ClientID(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ""
	c = e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "ip_unknown", ClientID(c))
}

func TestException_APIStatusTable(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "validation", err: domainerrors.NewValidationError("checkOut must be after checkIn"), wantStatus: http.StatusBadRequest, wantMessage: "checkOut must be after checkIn"},
		{name: "not found", err: domainerrors.ErrHomestayNotFound, wantStatus: http.StatusNotFound, wantMessage: "Resource not found"},
		{name: "unauthorized", err: domainerrors.ErrNotHomestayOwner.WrapMessage("delete"), wantStatus: http.StatusUnauthorized, wantMessage: "Not authorized"},
		{name: "invalid operation", err: domainerrors.ErrDatesUnavailable, wantStatus: http.StatusBadRequest, wantMessage: "Invalid operation"},
		{name: "unclassified", err: errors.New("db exploded"), wantStatus: http.StatusInternalServerError, wantMessage: "A system error occurred"},
		{name: "framework not found", err: echo.ErrNotFound, wantStatus: http.StatusNotFound, wantMessage: "Resource not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newPipeline(newTestConfig(false, 100), func(echo.Context) error { return tt.err })

			rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/thing", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.NotContains(t, body, "details")
			assert.NotContains(t, body, "stackTrace")
			assertSecurityHeaders(t, rec)
		})
	}
}

func TestException_DebugAddsDetailsAndStack(t *testing.T) {
	e, _ := newPipeline(newTestConfig(true, 100), func(echo.Context) error {
		return errors.Wrap(errors.New("connection reset"), "load homestay")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/thing", nil))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "load homestay: connection reset", body.Details)
	assert.Contains(t, body.StackTrace, "connection reset")
	assert.Contains(t, body.StackTrace, ".go:")
}

func TestException_AJAXOutsideAPIPrefixGetsJSON(t *testing.T) {
	e, _ := newPipeline(newTestConfig(false, 100), func(echo.Context) error {
		return domainerrors.ErrBookingNotFound
	})

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	rec := serve(e, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

func TestException_APIPrefixIgnoresCase(t *testing.T) {
	m := NewExceptionMiddleware(newDiscardLogger(), newTestConfig(false, 100))
	e := echo.New()

	tests := []struct {
		path string
		want bool
	}{
		{path: "/api/bookings", want: true},
		{path: "/API/bookings", want: true},
		{path: "/Api", want: true},
		{path: "/apiary", want: false},
		{path: "/Home/Error", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, tt.path, nil), httptest.NewRecorder())
			assert.Equal(t, tt.want, m.isAPIRequest(c))
		})
	}
}

func TestException_BrowserRedirectCarriesMessage(t *testing.T) {
	message := "Ngày không hợp lệ & <b>bad</b> 100%"
	e, _ := newPipeline(newTestConfig(false, 100), func(echo.Context) error {
		return errors.New(message)
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/page", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, ErrorPagePath, location.Path)
	assert.Equal(t, message, location.Query().Get("message"))
	assertSecurityHeaders(t, rec)
}

func TestException_RecoversPanic(t *testing.T) {
	e, _ := newPipeline(newTestConfig(false, 100), func(echo.Context) error {
		panic("nil map write")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/thing", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestException_CommittedResponseLeftAlone(t *testing.T) {
	e, _ := newPipeline(newTestConfig(false, 100), func(c echo.Context) error {
		c.Response().WriteHeader(http.StatusAccepted)
		_, _ = c.Response().Write([]byte("partial"))

		return errors.New("late failure")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/thing", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestException_WriteFailureIsSwallowed(t *testing.T) {
	logger := newDiscardLogger()
	m := NewExceptionMiddleware(logger, newTestConfig(false, 100))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Response().Writer = failingWriter{ResponseWriter: httptest.NewRecorder()}

	assert.NotPanics(t, func() {
		err := m.Handle(func(echo.Context) error { return domainerrors.ErrNotFound })(c)
		assert.NoError(t, err)
	})
}

type failingWriter struct {
	http.ResponseWriter
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestClassify_ValidationAndHTTPErrors(t *testing.T) {
	kind, message, status := Classify(echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"))
	assert.Equal(t, domainerrors.KindValidation, kind)
	assert.Equal(t, "Request Entity Too Large", message)
	assert.Equal(t, http.StatusBadRequest, status)

	kind, _, status = Classify(echo.ErrMethodNotAllowed)
	assert.Equal(t, domainerrors.KindValidation, kind)
	assert.Equal(t, http.StatusBadRequest, status)

	kind, _, status = Classify(echo.ErrServiceUnavailable)
	assert.Equal(t, domainerrors.KindInternal, kind)
	assert.Equal(t, http.StatusInternalServerError, status)

	kind, _, status = Classify(echo.ErrForbidden)
	assert.Equal(t, domainerrors.KindUnauthorized, kind)
	assert.Equal(t, http.StatusUnauthorized, status)
}

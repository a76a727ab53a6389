package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"homestay/config"
	deliverycontext "homestay/internal/delivery/context"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorPagePath is where browser callers are sent when a request fails.
const ErrorPagePath = "/Home/Error"

// ErrorResponse is the JSON body returned to API callers.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	StackTrace string `json:"stackTrace,omitempty"`
}

type errorMapping struct {
	status  int
	message string // empty means the error's own message
}

// kindMappings is the single translation from error kind to transport status.
var kindMappings = map[domainerrors.Kind]errorMapping{
	domainerrors.KindValidation:       {status: http.StatusBadRequest},
	domainerrors.KindNotFound:         {status: http.StatusNotFound, message: "Resource not found"},
	domainerrors.KindUnauthorized:     {status: http.StatusUnauthorized, message: "Not authorized"},
	domainerrors.KindInvalidOperation: {status: http.StatusBadRequest, message: "Invalid operation"},
	domainerrors.KindInternal:         {status: http.StatusInternalServerError, message: "A system error occurred"},
}

// ExceptionMiddleware turns every failure surfacing from later stages into a
// response: JSON for API and AJAX callers, a redirect to the error page otherwise.
type ExceptionMiddleware struct {
	logger    *slog.Logger
	apiPrefix string
	debug     bool
}

// NewExceptionMiddleware creates the exception middleware
func NewExceptionMiddleware(logger *slog.Logger, cfg *config.Config) *ExceptionMiddleware {
	return &ExceptionMiddleware{
		logger:    logger,
		apiPrefix: cfg.HTTP.APIPrefix,
		debug:     cfg.Env.Debug,
	}
}

// Handle wraps the rest of the chain. It never returns an error.
func (m *ExceptionMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if r == http.ErrAbortHandler {
					panic(r)
				}
				m.HandleError(panicError(r), c)
				err = nil
			}
		}()

		if err := next(c); err != nil {
			m.HandleError(err, c)
		}

		return nil
	}
}

// HandleError writes the error response. It can also serve as Echo's HTTPErrorHandler.
func (m *ExceptionMiddleware) HandleError(err error, c echo.Context) {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)

	if c.Response().Committed {
		logger.WarnContext(ctx, "Response already started, error dropped",
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)

		return
	}

	kind, ownMessage, status := Classify(err)
	level := slog.LevelWarn
	if kind == domainerrors.KindInternal {
		level = slog.LevelError
	}
	logger.Log(ctx, level, "Request failed",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Request().URL.Path),
		slog.String("kind", kind.String()),
		slog.Any("error", err),
	)

	var writeErr error
	if m.isAPIRequest(c) {
		writeErr = c.JSON(status, m.buildResponse(err, kind, ownMessage))
	} else {
		writeErr = c.Redirect(http.StatusFound, ErrorPagePath+"?message="+url.QueryEscape(ownMessage))
	}

	if writeErr != nil {
		logger.ErrorContext(ctx, "Failed to write error response",
			slog.Any("error", writeErr),
			slog.Any("original_error", err),
		)
	}
}

// Diagnostic is the development HTTPErrorHandler: plain text with the full error chain and stack.
func (m *ExceptionMiddleware) Diagnostic(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	_, _, status := Classify(err)
	body := fmt.Sprintf("%s %s\n\n%+v\n", c.Request().Method, c.Request().URL.Path, err)
	if writeErr := c.String(status, body); writeErr != nil {
		m.logger.Error("Failed to write diagnostic response", slog.Any("error", writeErr))
	}
}

func (m *ExceptionMiddleware) isAPIRequest(c echo.Context) bool {
	req := c.Request()
	if strings.EqualFold(req.Header.Get(echo.HeaderXRequestedWith), "XMLHttpRequest") {
		return true
	}
	if m.apiPrefix == "" {
		return false
	}
	prefix := strings.TrimSuffix(m.apiPrefix, "/")
	path := req.URL.Path
	if len(path) < len(prefix) || !strings.EqualFold(path[:len(prefix)], prefix) {
		return false
	}

	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func (m *ExceptionMiddleware) buildResponse(err error, kind domainerrors.Kind, ownMessage string) ErrorResponse {
	mapping := kindMappings[kind]
	resp := ErrorResponse{Success: false, Message: mapping.message}
	if mapping.message == "" {
		resp.Message = ownMessage
	}

	if m.debug {
		resp.Details = err.Error()
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.Details() != "" {
			resp.Details = appErr.Details()
		}
		resp.StackTrace = fmt.Sprintf("%+v", err)
	}

	return resp
}

// Classify returns the error's kind, its own message and the response status.
func Classify(err error) (domainerrors.Kind, string, int) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Kind(), appErr.Message(), kindMappings[appErr.Kind()].status
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return domainerrors.KindValidation, formatValidationErrors(validationErrs), http.StatusBadRequest
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprint(httpErr.Message)
		kind := domainerrors.KindInternal
		switch {
		case httpErr.Code == http.StatusNotFound:
			kind = domainerrors.KindNotFound
		case httpErr.Code == http.StatusUnauthorized, httpErr.Code == http.StatusForbidden:
			kind = domainerrors.KindUnauthorized
		case httpErr.Code >= http.StatusBadRequest && httpErr.Code < http.StatusInternalServerError:
			// 405, 413, 415 and friends are argument errors of the request itself.
			kind = domainerrors.KindValidation
		}

		return kind, message, kindMappings[kind].status
	}

	message := "An unexpected error occurred"
	if err != nil {
		message = err.Error()
	}

	return domainerrors.KindInternal, message, http.StatusInternalServerError
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}

	return strings.Join(parts, "; ")
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errors.WithStack(err)
	}

	return errors.Errorf("panic: %v", r)
}

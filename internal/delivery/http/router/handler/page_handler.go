package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"homestay/internal/delivery/http/response"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/service"
	"homestay/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const defaultErrorMessage = "Something went wrong while processing your request."

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Error</title>
</head>
<body>
<main>
<h1>Sorry, something went wrong</h1>
<p>{{.Message}}</p>
{{if .RequestID}}<p><small>Request ID: {{.RequestID}}</small></p>{{end}}
<p><a href="/">Back to home</a></p>
</main>
</body>
</html>
`))

// MediaPath is where stored images are served from.
const MediaPath = "/media"

// PageHandlerParams holds dependencies for PageHandler, injected by Fx.
type PageHandlerParams struct {
	fx.In

	Storage service.ImageStorage
	Logger  *slog.Logger
}

// PageHandler serves the non-API pages and stored media.
type PageHandler struct {
	storage service.ImageStorage
	logger  *slog.Logger
}

// NewPageHandler is the constructor for PageHandler
func NewPageHandler(params PageHandlerParams) *PageHandler {
	return &PageHandler{
		storage: params.Storage,
		logger:  params.Logger,
	}
}

// ErrorPage renders the page browser callers are redirected to on failure.
// The message comes from the query string and is HTML-escaped by the template.
func (h *PageHandler) ErrorPage(c echo.Context) error {
	message := c.QueryParam("message")
	if message == "" {
		message = defaultErrorMessage
	}

	var buf bytes.Buffer
	err := errorPage.Execute(&buf, struct {
		Message   string
		RequestID string
	}{
		Message:   message,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	})
	if err != nil {
		return errors.Wrap(err, "render error page")
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// Media streams an uploaded image from storage.
func (h *PageHandler) Media(c echo.Context) error {
	key := c.Param("*")
	if !strings.HasPrefix(key, "homestays/") || strings.Contains(key, "..") {
		return domainerrors.ErrNotFound
	}

	r, contentType, err := h.storage.Open(c.Request().Context(), key)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")

	return c.Stream(http.StatusOK, contentType, r)
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"homestay/config"
	"homestay/internal/delivery"
	"homestay/internal/delivery/http/middleware"
	"homestay/internal/delivery/http/router"
	"homestay/internal/delivery/http/validator"
	deliverymiddleware "homestay/internal/delivery/middleware"
	"homestay/internal/domain/constants"
	"homestay/internal/domain/lifecycle"
	"homestay/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc              fx.Lifecycle
	Cfg             *config.Config
	Logger          *slog.Logger
	Exception       *middleware.ExceptionMiddleware
	SecurityHeaders *middleware.SecurityHeadersMiddleware
	RateLimit       *middleware.RateLimitMiddleware
	Auth            *middleware.AuthMiddleware
	RouterParams    router.RouterParams
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewServer builds the Echo server with the request pipeline in order:
// exception (outside development), recover, request ID, access log, CORS,
// body limit, security headers, identity, rate limit, then the routes.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Server.ReadTimeout = params.Cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = params.Cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = params.Cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = params.Cfg.HTTP.Timeouts.IdleTimeout

	Pipeline(echoServer, params)

	echoServer.Validator = validator.New()

	r := router.NewRouter(params.RouterParams)
	r.RegisterRoutes(echoServer)

	srv := &httpServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Pipeline installs the middleware chain and the error handler on e.
func Pipeline(e *echo.Echo, params ServerParams) {
	if params.Cfg.Env.Env == constants.EnvDevelop {
		e.HTTPErrorHandler = params.Exception.Diagnostic
	} else {
		e.Use(params.Exception.Handle)
		// Errors raised before the chain runs (unknown route, wrong method) skip
		// middleware, so the same handler serves as Echo's fallback.
		e.HTTPErrorHandler = params.Exception.HandleError
	}

	// Headers go on before any stage that can answer on its own (CORS preflight, body limit).
	e.Use(params.SecurityHeaders.Handle)
	e.Use(echomiddleware.Recover())
	e.Use(deliverymiddleware.NewRequestIDMiddleware(params.Logger).Process)
	e.Use(deliverymiddleware.NewLoggerMiddleware(params.Logger, params.Cfg, "/health").Handle)
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(params.Cfg.HTTP.MaxRequestBodySize))
	e.Use(params.Auth.Identify)
	e.Use(params.RateLimit.Handle)
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"strings"

	"homestay/config"
	"homestay/internal/delivery/http/middleware"
	"homestay/internal/delivery/http/router/handler"
	"homestay/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	HomestayHandler     *handler.HomestayHandler
	AmenityHandler      *handler.AmenityHandler
	BookingHandler      *handler.BookingHandler
	PromotionHandler    *handler.PromotionHandler
	ConversationHandler *handler.ConversationHandler
	NotificationHandler *handler.NotificationHandler
	PageHandler         *handler.PageHandler
	AuthMiddleware      *middleware.AuthMiddleware
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{RouterParams: params}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET(middleware.ErrorPagePath, r.PageHandler.ErrorPage)
	e.GET(handler.MediaPath+"/*", r.PageHandler.Media)

	api := e.Group(r.Config.HTTP.APIPrefix)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.AuthHandler.Register)
		authGroup.POST("/login", r.AuthHandler.Login)
		authGroup.POST("/refresh", r.AuthHandler.Refresh)
	}

	// Public catalogue
	api.GET("/homestays", r.HomestayHandler.Search)
	api.GET("/homestays/:id", r.HomestayHandler.Get)
	api.GET("/amenities", r.AmenityHandler.List)

	// Everything below requires a valid access token
	authed := api.Group("", r.AuthMiddleware.Authenticate)

	usersGroup := authed.Group("/users/me")
	{
		usersGroup.GET("", r.UserHandler.GetProfile)
		usersGroup.DELETE("", r.UserHandler.DeleteAccount)
		usersGroup.PUT("/push-token", r.UserHandler.UpdatePushToken)
		usersGroup.GET("/homestays", r.UserHandler.ListMyHomestays, r.AuthMiddleware.RequireRole(entity.RoleHost.String()))
	}

	homestaysGroup := authed.Group("/homestays")
	{
		homestaysGroup.POST("", r.HomestayHandler.Create, r.AuthMiddleware.RequireRole(entity.RoleHost.String()))
		homestaysGroup.DELETE("/:id", r.HomestayHandler.Delete)
		homestaysGroup.PUT("/:id/status", r.HomestayHandler.SetStatus)
		homestaysGroup.POST("/:id/approve", r.HomestayHandler.Approve, r.AuthMiddleware.RequireRole(entity.RoleAdmin.String()))
		homestaysGroup.PUT("/:id/pricing", r.HomestayHandler.SetPricing)
		homestaysGroup.POST("/:id/blocked-dates", r.HomestayHandler.BlockDate)
		homestaysGroup.DELETE("/:id/blocked-dates/:date", r.HomestayHandler.UnblockDate)
		homestaysGroup.PUT("/:id/amenities", r.HomestayHandler.ReplaceAmenities)
		homestaysGroup.POST("/:id/images", r.HomestayHandler.UploadImage)
	}

	authed.POST("/amenities", r.AmenityHandler.Create, r.AuthMiddleware.RequireRole(entity.RoleAdmin.String()))

	bookingsGroup := authed.Group("/bookings")
	{
		bookingsGroup.POST("", r.BookingHandler.Create)
		bookingsGroup.GET("", r.BookingHandler.List)
		bookingsGroup.GET("/:id", r.BookingHandler.Get)
		bookingsGroup.POST("/:id/cancel", r.BookingHandler.Cancel)
		bookingsGroup.GET("/:id/qrcode", r.BookingHandler.QRCode)
		bookingsGroup.POST("/:id/payments", r.BookingHandler.Pay)
	}

	promotionsGroup := authed.Group("/promotions", r.AuthMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		promotionsGroup.POST("", r.PromotionHandler.Create)
		promotionsGroup.DELETE("/:code", r.PromotionHandler.Delete)
	}

	conversationsGroup := authed.Group("/conversations")
	{
		conversationsGroup.POST("", r.ConversationHandler.Start)
		conversationsGroup.GET("", r.ConversationHandler.List)
		conversationsGroup.GET("/:id/messages", r.ConversationHandler.Messages)
		conversationsGroup.POST("/:id/messages", r.ConversationHandler.Send)
		conversationsGroup.POST("/:id/read", r.ConversationHandler.MarkRead)
		conversationsGroup.DELETE("/:id", r.ConversationHandler.Delete)
	}

	notificationsGroup := authed.Group("/notifications")
	{
		notificationsGroup.GET("", r.NotificationHandler.List)
		notificationsGroup.POST("/requests", r.NotificationHandler.RequestConnection)
		notificationsGroup.POST("/:id/accept", r.NotificationHandler.Accept)
		notificationsGroup.POST("/:id/decline", r.NotificationHandler.Decline)
	}

	// Groups with middleware claim their prefix for unmatched paths, which would
	// answer unknown API paths with 401. Reclaim those as plain 404s.
	for _, route := range e.Routes() {
		if route.Method == echo.RouteNotFound && strings.HasPrefix(route.Path, r.Config.HTTP.APIPrefix) {
			e.RouteNotFound(route.Path, echo.NotFoundHandler)
		}
	}
}

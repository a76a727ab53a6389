package main

import (
	"context"
	"log/slog"
	"os"

	"homestay/config"
	"homestay/internal/delivery"
	"homestay/internal/delivery/http"
	"homestay/internal/delivery/http/middleware"
	"homestay/internal/delivery/http/router/handler"
	"homestay/internal/infra/auth"
	logs "homestay/internal/infra/log"
	"homestay/internal/infra/notification"
	"homestay/internal/infra/persistence/postgres"
	"homestay/internal/infra/pubsub"
	"homestay/internal/infra/qrcode"
	"homestay/internal/infra/ratelimit"
	"homestay/internal/infra/redis"
	"homestay/internal/infra/storage"
	"homestay/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			redis.New,
			ratelimit.NewStore,
			storage.New,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewHomestayRepository,
			postgres.NewAmenityRepository,
			postgres.NewAvailabilityRepository,
			postgres.NewBookingRepository,
			postgres.NewPaymentRepository,
			postgres.NewPromotionRepository,
			postgres.NewConversationRepository,
			postgres.NewMessageRepository,
			postgres.NewNotificationRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			notification.NewPushNotifier,
			qrcode.NewFromConfig,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewHomestayService,
			impl.NewAmenityService,
			impl.NewAvailabilityService,
			impl.NewBookingService,
			impl.NewPaymentService,
			impl.NewPromotionService,
			impl.NewConversationService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewExceptionMiddleware,
			middleware.NewSecurityHeadersMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewHomestayHandler,
			handler.NewAmenityHandler,
			handler.NewBookingHandler,
			handler.NewPromotionHandler,
			handler.NewConversationHandler,
			handler.NewNotificationHandler,
			handler.NewPageHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flexprice/offerpricing/internal/api"
	v1 "github.com/flexprice/offerpricing/internal/api/v1"
	"github.com/flexprice/offerpricing/internal/cache"
	"github.com/flexprice/offerpricing/internal/config"
	"github.com/flexprice/offerpricing/internal/domain/billing"
	"github.com/flexprice/offerpricing/internal/domain/pricing"
	"github.com/flexprice/offerpricing/internal/logger"
	"github.com/flexprice/offerpricing/internal/metrics"
	"github.com/flexprice/offerpricing/internal/sentry"
	"github.com/flexprice/offerpricing/internal/service"
	"github.com/flexprice/offerpricing/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// all billing dates are computed in UTC
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	opts = append(opts,
		fx.Provide(
			validator.NewValidator,

			config.NewConfig,

			logger.NewLogger,

			cache.NewInMemoryCache,

			metrics.NewCollector,
		),
		sentry.Module(),
	)

	opts = append(opts,
		fx.Provide(
			pricing.NewResolver,
			billing.NewProjector,

			service.NewServiceParams,

			service.NewPricingService,
			service.NewBillingProjectionService,
		),
	)

	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	pricingService service.PricingService,
	billingProjectionService service.BillingProjectionService,
) api.Handlers {
	return api.Handlers{
		Health:       v1.NewHealthHandler(logger),
		Pricing:      v1.NewPricingHandler(pricingService, logger),
		Subscription: v1.NewSubscriptionHandler(billingProjectionService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, sentryService *sentry.Service, collector *metrics.Collector) *gin.Engine {
	return api.NewRouter(handlers, cfg, sentryService, collector)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Infow("Registering API server start hook", "mode", cfg.Deployment.Mode)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

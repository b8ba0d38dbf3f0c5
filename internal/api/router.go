package api

import (
	v1 "github.com/flexprice/offerpricing/internal/api/v1"
	"github.com/flexprice/offerpricing/internal/config"
	"github.com/flexprice/offerpricing/internal/metrics"
	"github.com/flexprice/offerpricing/internal/rest/middleware"
	"github.com/flexprice/offerpricing/internal/sentry"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health       *v1.HealthHandler
	Pricing      *v1.PricingHandler
	Subscription *v1.SubscriptionHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, sentryService *sentry.Service, collector *metrics.Collector) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.MetricsMiddleware(collector),
		middleware.SentryMiddleware(cfg),
		middleware.SentryRequestTagMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(sentryService),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	pricing := router.Group("/pricing")
	{
		pricing.POST("/preview", handlers.Pricing.PreviewPrice)
		pricing.POST("/preview/batch", handlers.Pricing.PreviewPrices)
		pricing.POST("/selection", handlers.Pricing.ApplySelectionAction)
	}

	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.POST("/billing/projection", handlers.Subscription.ProjectBilling)
	}
}

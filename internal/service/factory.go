package service

import (
	"github.com/flexprice/offerpricing/internal/cache"
	"github.com/flexprice/offerpricing/internal/config"
	"github.com/flexprice/offerpricing/internal/domain/billing"
	"github.com/flexprice/offerpricing/internal/domain/pricing"
	"github.com/flexprice/offerpricing/internal/logger"
	"github.com/flexprice/offerpricing/internal/metrics"
	"github.com/flexprice/offerpricing/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger  *logger.Logger
	Config  *config.Configuration
	Cache   cache.Cache
	Sentry  *sentry.Service
	Metrics *metrics.Collector

	// Calculators
	PriceResolver    pricing.Resolver
	BillingProjector billing.Projector
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	sentryService *sentry.Service,
	collector *metrics.Collector,
	priceResolver pricing.Resolver,
	billingProjector billing.Projector,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		Cache:            cache,
		Sentry:           sentryService,
		Metrics:          collector,
		PriceResolver:    priceResolver,
		BillingProjector: billingProjector,
	}
}

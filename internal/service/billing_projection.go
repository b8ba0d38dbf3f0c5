package service

import (
	"context"
	"time"

	"github.com/flexprice/offerpricing/internal/cache"
	"github.com/flexprice/offerpricing/internal/domain/billing"
	"github.com/flexprice/offerpricing/internal/domain/subscription"
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/sentry"
)

// BillingProjectionService projects the next bill of a subscription instance
type BillingProjectionService interface {
	ProjectSubscriptionBilling(ctx context.Context, sub *subscription.Subscription) (*billing.BillingBreakdown, error)
}

type billingProjectionService struct {
	ServiceParams
}

func NewBillingProjectionService(params ServiceParams) BillingProjectionService {
	return &billingProjectionService{ServiceParams: params}
}

// ProjectSubscriptionBilling only fails on a malformed subscription. The
// projection itself is total.
func (s *billingProjectionService) ProjectSubscriptionBilling(ctx context.Context, sub *subscription.Subscription) (*billing.BillingBreakdown, error) {
	if sub == nil {
		return nil, ierr.NewError("subscription is required").
			WithHint("A subscription is required to project billing").
			Mark(ierr.ErrValidation)
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	key, err := cache.HashKey(cache.PrefixBillingProjection, sub)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to prepare the billing projection").
			Mark(ierr.ErrSystem)
	}

	span := cache.StartCacheSpan(ctx, cache.PrefixBillingProjection, "get")
	if cached, found := s.Cache.Get(ctx, key); found {
		if breakdown, ok := cached.(*billing.BillingBreakdown); ok {
			cache.FinishCacheSpan(span, true)
			s.Metrics.ObserveCacheLookup(cache.PrefixBillingProjection, true)
			return breakdown, nil
		}
	}
	cache.FinishCacheSpan(span, false)
	s.Metrics.ObserveCacheLookup(cache.PrefixBillingProjection, false)

	projectSpan, _ := s.Sentry.StartCalculationSpan(ctx, "billing.project", map[string]interface{}{
		"subscription_id": sub.ID,
	})
	start := time.Now()
	breakdown := s.BillingProjector.Project(sub)
	s.Metrics.ObserveCalculation("billing.project", time.Since(start), nil)
	sentry.FinishSpan(projectSpan)

	s.Logger.Debugw("projected subscription billing",
		"subscription_id", sub.ID,
		"projected_total", breakdown.ProjectedTotal.String(),
		"is_overridden", breakdown.IsOverridden,
		"unpaid_setup_total", breakdown.UnpaidSetupTotal.String(),
	)

	s.Cache.Set(ctx, key, breakdown, 0)
	return breakdown, nil
}

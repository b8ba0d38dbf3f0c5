package service

import (
	"context"
	"time"

	"github.com/flexprice/offerpricing/internal/cache"
	"github.com/flexprice/offerpricing/internal/domain/catalog"
	"github.com/flexprice/offerpricing/internal/domain/pricing"
	"github.com/flexprice/offerpricing/internal/domain/selection"
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/sentry"
	"github.com/sourcegraph/conc/iter"
)

// PricingService answers "what would this selection cost" for an offering
type PricingService interface {
	// ResolveCatalogPrice prices a selection against a catalog. Identical
	// inputs always produce equal breakdowns. The returned breakdown may be
	// shared with other callers and must not be modified.
	ResolveCatalogPrice(ctx context.Context, c *catalog.ServiceCatalog, sel selection.Selection) (*pricing.PriceBreakdown, error)

	// ResolveCatalogPrices prices several selections against one catalog, for
	// side by side comparison. Results are in the order of sels.
	ResolveCatalogPrices(ctx context.Context, c *catalog.ServiceCatalog, sels []selection.Selection) ([]*pricing.PriceBreakdown, error)

	// ApplySelectionAction returns the selection after action, leaving sel untouched
	ApplySelectionAction(ctx context.Context, sel selection.Selection, action selection.Action) (selection.Selection, error)
}

type pricingService struct {
	ServiceParams
}

func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{ServiceParams: params}
}

func (s *pricingService) ResolveCatalogPrice(ctx context.Context, c *catalog.ServiceCatalog, sel selection.Selection) (*pricing.PriceBreakdown, error) {
	if c == nil {
		return nil, ierr.NewError("catalog is required").
			WithHint("A service catalog is required to preview a price").
			Mark(ierr.ErrValidation)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	// add-on order and duplicates do not change the breakdown
	keyed := sel.Clone()
	keyed.OptionGroupIDs = sel.SortedAddOnIDs()
	key, err := cache.HashKey(cache.PrefixPricePreview, c, keyed)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to prepare the price preview").
			Mark(ierr.ErrSystem)
	}

	span := cache.StartCacheSpan(ctx, cache.PrefixPricePreview, "get")
	if cached, found := s.Cache.Get(ctx, key); found {
		if breakdown, ok := cached.(*pricing.PriceBreakdown); ok {
			cache.FinishCacheSpan(span, true)
			s.Metrics.ObserveCacheLookup(cache.PrefixPricePreview, true)
			return breakdown, nil
		}
	}
	cache.FinishCacheSpan(span, false)
	s.Metrics.ObserveCacheLookup(cache.PrefixPricePreview, false)

	resolveSpan, _ := s.Sentry.StartCalculationSpan(ctx, "pricing.resolve", map[string]interface{}{
		"catalog_id":    c.ID,
		"tier_id":       sel.TierID,
		"billing_cycle": string(sel.BillingCycle),
	})
	start := time.Now()
	breakdown, err := s.PriceResolver.Resolve(c, sel)
	s.Metrics.ObserveCalculation("pricing.resolve", time.Since(start), err)
	sentry.FinishSpan(resolveSpan)
	if err != nil {
		s.Logger.Debugw("price resolution failed",
			"catalog_id", c.ID,
			"tier_id", sel.TierID,
			"error", err,
		)
		return nil, err
	}

	s.Logger.Debugw("resolved catalog price",
		"catalog_id", c.ID,
		"tier_id", sel.TierID,
		"billing_cycle", sel.BillingCycle,
		"grand_recurring_total", breakdown.Totals.GrandRecurringTotal.String(),
		"grand_setup_total", breakdown.Totals.GrandSetupTotal.String(),
	)

	s.Cache.Set(ctx, key, breakdown, 0)
	return breakdown, nil
}

func (s *pricingService) ResolveCatalogPrices(ctx context.Context, c *catalog.ServiceCatalog, sels []selection.Selection) ([]*pricing.PriceBreakdown, error) {
	if len(sels) == 0 {
		return nil, ierr.NewError("at least one selection is required").
			WithHint("Please provide at least one selection to compare").
			Mark(ierr.ErrValidation)
	}

	type result struct {
		breakdown *pricing.PriceBreakdown
		err       error
	}
	results := iter.Map(sels, func(sel *selection.Selection) result {
		breakdown, err := s.ResolveCatalogPrice(ctx, c, *sel)
		return result{breakdown: breakdown, err: err}
	})

	// report the first failing selection in request order, unwrapped so its
	// hint and details reach the caller
	items := make([]*pricing.PriceBreakdown, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		items = append(items, r.breakdown)
	}
	return items, nil
}

func (s *pricingService) ApplySelectionAction(ctx context.Context, sel selection.Selection, action selection.Action) (selection.Selection, error) {
	if action == nil {
		return sel, ierr.NewError("action is required").
			WithHint("Please provide a selection action").
			Mark(ierr.ErrValidation)
	}

	next, err := selection.Reduce(sel, action)
	if err != nil {
		return sel, err
	}

	s.Logger.Debugw("applied selection action",
		"action", action.Type(),
		"tier_id", next.TierID,
		"billing_cycle", next.BillingCycle,
	)
	return next, nil
}

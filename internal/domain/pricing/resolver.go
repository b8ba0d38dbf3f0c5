package pricing

import (
	"github.com/flexprice/offerpricing/internal/domain/catalog"
	"github.com/flexprice/offerpricing/internal/domain/discount"
	"github.com/flexprice/offerpricing/internal/domain/selection"
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Resolver computes what a selection costs against a catalog
type Resolver interface {
	// Resolve fails only when the selected tier is not in the catalog.
	// Missing prices, discounts and setup costs resolve to zero or nil.
	Resolve(c *catalog.ServiceCatalog, sel selection.Selection) (*PriceBreakdown, error)
}

// NewResolver returns the catalog price resolver. It holds no state and is
// safe for concurrent use.
func NewResolver() Resolver {
	return &catalogResolver{}
}

type catalogResolver struct{}

func (r *catalogResolver) Resolve(c *catalog.ServiceCatalog, sel selection.Selection) (*PriceBreakdown, error) {
	tier, ok := c.FindTier(sel.TierID)
	if !ok {
		return nil, ierr.NewErrorf("Tier %s not found", sel.TierID).
			WithHintf("Tier %s not found", sel.TierID).
			WithReportableDetails(map[string]any{
				"tier_id": sel.TierID,
			}).
			Mark(ierr.ErrNotFound)
	}

	out := &PriceBreakdown{
		CatalogID: c.ID,
		Tier: TierInfo{
			ID:       tier.ID,
			Name:     tier.Name,
			Amount:   types.RoundMoney(tier.Pricing.Amount),
			Currency: tier.Pricing.Currency,
		},
		BillingCycle:          sel.BillingCycle,
		TierMonthlyBase:       types.RoundMoney(tier.Pricing.Amount),
		OptionGroupBreakdowns: []GroupBreakdown{},
		SetupGroupBreakdowns:  []GroupBreakdown{},
		AddOnBreakdowns:       []GroupBreakdown{},
	}

	for i := range c.OptionGroups {
		g := &c.OptionGroups[i]
		switch {
		case g.IsAddOn:
			if sel.HasAddOn(g.ID) {
				out.AddOnBreakdowns = append(out.AddOnBreakdowns, r.resolveAddOn(g, tier.ID, sel))
			}
		case g.IsSetupOnly():
			out.SetupGroupBreakdowns = append(out.SetupGroupBreakdowns, r.resolveSetupOnly(g, tier.ID, sel))
		case g.IsRegular():
			out.OptionGroupBreakdowns = append(out.OptionGroupBreakdowns, r.resolveRegular(c, g, tier.ID, sel))
		}
	}

	out.Totals = computeTotals(out.OptionGroupBreakdowns, out.SetupGroupBreakdowns, out.AddOnBreakdowns)
	return out, nil
}

func (r *catalogResolver) resolveRegular(c *catalog.ServiceCatalog, g *catalog.OptionGroup, tierID string, sel selection.Selection) GroupBreakdown {
	cycle := sel.GroupCycle(g.ID)
	b := newGroupBreakdown(g, types.GROUP_KIND_REGULAR)
	applyRecurring(&b, g, tierID, cycle, sel.BillingCycle)

	if quote, ok := resolveRegularSetup(c, g, tierID, cycle); ok {
		applySetup(&b, quote)
	}
	return b
}

func (r *catalogResolver) resolveSetupOnly(g *catalog.OptionGroup, tierID string, sel selection.Selection) GroupBreakdown {
	b := newGroupBreakdown(g, types.GROUP_KIND_SETUP_ONLY)
	b.EffectiveBillingCycle = sel.BillingCycle

	if quote, ok := setupOnlyQuote(g, tierID, sel.BillingCycle); ok {
		applySetup(&b, quote)
		b.HasPrice = quote.amount.IsPositive()
	}
	return b
}

func (r *catalogResolver) resolveAddOn(g *catalog.OptionGroup, tierID string, sel selection.Selection) GroupBreakdown {
	b := newGroupBreakdown(g, types.GROUP_KIND_ADD_ON)
	applyRecurring(&b, g, tierID, sel.AddOnCycle(g.ID), sel.BillingCycle)

	if quote, ok := addOnSetupQuote(g); ok {
		applySetup(&b, quote)
	}
	return b
}

func newGroupBreakdown(g *catalog.OptionGroup, kind types.GroupKind) GroupBreakdown {
	return GroupBreakdown{
		GroupID:             g.ID,
		GroupName:           g.Name,
		Kind:                kind,
		Currency:            g.Currency,
		PriceSource:         types.PRICE_SOURCE_NONE,
		MonthlyBase:         types.RoundMoney(decimal.Zero),
		CycleAmount:         types.RoundMoney(decimal.Zero),
		RecurringAmount:     types.RoundMoney(decimal.Zero),
		DiscountSource:      types.DISCOUNT_SOURCE_NONE,
		SetupCost:           types.RoundMoney(decimal.Zero),
		SetupSource:         types.SETUP_SOURCE_NONE,
		SetupDiscountSource: types.DISCOUNT_SOURCE_NONE,
	}
}

// applyRecurring prices a recurring group at its effective cycle. The
// discount is applied to the scaled cycle amount, never the monthly base, and
// is looked up strictly for the effective cycle.
func applyRecurring(b *GroupBreakdown, g *catalog.OptionGroup, tierID string, cycle, globalCycle types.BillingCycle) {
	price := resolveMonthlyPrice(g, tierID)
	cycleAmount := price.amount.Mul(decimal.NewFromInt(cycle.Months()))

	b.EffectiveBillingCycle = cycle
	b.BillingCycleOverridden = cycle != globalCycle
	b.HasPrice = price.hasPrice
	b.PriceSource = price.source
	b.MonthlyBase = types.RoundMoney(price.amount)
	b.CycleAmount = types.RoundMoney(cycleAmount)

	rule, source := resolveRecurringDiscount(g, tierID, cycle)
	if rule == nil {
		b.RecurringAmount = types.RoundMoney(cycleAmount)
	} else {
		resolved := exposeDiscount(discount.Resolve(cycleAmount, *rule))
		b.Discount = &resolved
		b.DiscountSource = source
		b.RecurringAmount = resolved.DiscountedAmount
	}

	b.DiscountStripped = b.BillingCycleOverridden && b.Discount == nil
}

func applySetup(b *GroupBreakdown, quote setupQuote) {
	b.SetupSource = quote.source
	b.SetupCost = types.RoundMoney(quote.amount)

	if !quote.amount.IsPositive() {
		return
	}
	for _, d := range quote.discounts {
		if !d.rule.IsApplicable() {
			continue
		}
		resolved := exposeDiscount(discount.Resolve(quote.amount, *d.rule))
		b.SetupDiscount = &resolved
		b.SetupDiscountSource = d.name
		b.SetupCost = resolved.DiscountedAmount
		return
	}
}

// exposeDiscount rounds the pre-discount amount when it enters a breakdown.
// Savings stay derived from the unrounded amount.
func exposeDiscount(d discount.Resolved) discount.Resolved {
	d.OriginalAmount = types.RoundMoney(d.OriginalAmount)
	return d
}

// computeTotals sums the exposed group amounts and rounds each total once
func computeTotals(regular, setupOnly, addOns []GroupBreakdown) Totals {
	recurring := sumBy(regular, func(b GroupBreakdown) decimal.Decimal { return b.RecurringAmount })
	setup := sumBy(regular, func(b GroupBreakdown) decimal.Decimal { return b.SetupCost }).
		Add(sumBy(setupOnly, func(b GroupBreakdown) decimal.Decimal { return b.SetupCost }))
	addOnRecurring := sumBy(addOns, func(b GroupBreakdown) decimal.Decimal { return b.RecurringAmount })
	addOnSetup := sumBy(addOns, func(b GroupBreakdown) decimal.Decimal { return b.SetupCost })

	return Totals{
		RecurringTotal:      types.RoundMoney(recurring),
		SetupTotal:          types.RoundMoney(setup),
		AddOnRecurringTotal: types.RoundMoney(addOnRecurring),
		AddOnSetupTotal:     types.RoundMoney(addOnSetup),
		GrandRecurringTotal: types.RoundMoney(recurring.Add(addOnRecurring)),
		GrandSetupTotal:     types.RoundMoney(setup.Add(addOnSetup)),
	}
}

func sumBy[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, item T, _ int) decimal.Decimal {
		return acc.Add(amount(item))
	}, decimal.Zero)
}

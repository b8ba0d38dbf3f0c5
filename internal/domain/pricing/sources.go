package pricing

import (
	"github.com/flexprice/offerpricing/internal/domain/catalog"
	"github.com/flexprice/offerpricing/internal/domain/discount"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/shopspring/decimal"
)

// Every precedence chain of the resolver is an ordered list of named sources.
// Sources are tried in order and the first one that reports found wins.

// priceSource looks up a group's monthly base price. A source that owns the
// price reports found even when the amount is zero, so later sources are not
// consulted.
type priceSource struct {
	name   types.PriceSource
	lookup func(g *catalog.OptionGroup, tierID string) (decimal.Decimal, bool)
}

var priceSources = []priceSource{
	{name: types.PRICE_SOURCE_TIER_DEPENDENT, lookup: tierDependentMonthly},
	{name: types.PRICE_SOURCE_STANDALONE, lookup: standaloneMonthly},
}

func tierDependentMonthly(g *catalog.OptionGroup, tierID string) (decimal.Decimal, bool) {
	tp, ok := g.TierPricingFor(tierID)
	if !ok {
		return decimal.Zero, false
	}
	if price, ok := tp.RecurringPriceFor(types.BILLING_CYCLE_MONTHLY); ok {
		return price.Amount, true
	}
	return decimal.Zero, true
}

func standaloneMonthly(g *catalog.OptionGroup, _ string) (decimal.Decimal, bool) {
	if price, ok := g.StandalonePricing.RecurringPriceFor(types.BILLING_CYCLE_MONTHLY); ok {
		return price.Amount, true
	}
	return decimal.Zero, false
}

type monthlyPrice struct {
	amount   decimal.Decimal
	source   types.PriceSource
	hasPrice bool
}

func resolveMonthlyPrice(g *catalog.OptionGroup, tierID string) monthlyPrice {
	for _, src := range priceSources {
		amount, found := src.lookup(g, tierID)
		if !found {
			continue
		}
		if !amount.IsPositive() {
			return monthlyPrice{amount: decimal.Zero, source: src.name}
		}
		return monthlyPrice{amount: amount, source: src.name, hasPrice: true}
	}
	return monthlyPrice{amount: decimal.Zero, source: types.PRICE_SOURCE_NONE}
}

// discountSource looks up a recurring discount for a group at one billing
// cycle. Only rules with a positive value count as found.
type discountSource struct {
	name   types.DiscountSource
	lookup func(g *catalog.OptionGroup, tierID string, cycle types.BillingCycle) *discount.Rule
}

var recurringDiscountSources = []discountSource{
	{name: types.DISCOUNT_SOURCE_GROUP_CYCLE, lookup: groupCycleDiscount},
	{name: types.DISCOUNT_SOURCE_TIER_INDEPENDENT, lookup: tierIndependentDiscount},
}

func groupCycleDiscount(g *catalog.OptionGroup, _ string, cycle types.BillingCycle) *discount.Rule {
	if rule, ok := g.CycleDiscount(cycle); ok && rule.IsApplicable() {
		return rule
	}
	return nil
}

func tierIndependentDiscount(g *catalog.OptionGroup, tierID string, cycle types.BillingCycle) *discount.Rule {
	tp, ok := g.TierPricingFor(tierID)
	if !ok {
		return nil
	}
	if price, ok := tp.RecurringPriceFor(cycle); ok && price.Discount.IsApplicable() {
		return price.Discount
	}
	return nil
}

func resolveRecurringDiscount(g *catalog.OptionGroup, tierID string, cycle types.BillingCycle) (*discount.Rule, types.DiscountSource) {
	for _, src := range recurringDiscountSources {
		if rule := src.lookup(g, tierID, cycle); rule != nil {
			return rule, src.name
		}
	}
	return nil, types.DISCOUNT_SOURCE_NONE
}

// setupQuote is a setup cost found by a setup source together with the
// discounts that may apply to it, in precedence order.
type setupQuote struct {
	amount    decimal.Decimal
	source    types.SetupSource
	discounts []namedRule
}

type namedRule struct {
	name types.DiscountSource
	rule *discount.Rule
}

// setupSource looks up a regular group's setup cost. Only positive amounts count as found.
type setupSource struct {
	name   types.SetupSource
	lookup func(c *catalog.ServiceCatalog, g *catalog.OptionGroup, tierID string, cycle types.BillingCycle) (setupQuote, bool)
}

// regularSetupSources keeps the two paths' different discount capabilities:
// only tier-dependent setup costs have a per-cycle discount table.
var regularSetupSources = []setupSource{
	{name: types.SETUP_SOURCE_TIER_DEPENDENT, lookup: tierDependentSetup},
	{name: types.SETUP_SOURCE_SERVICE_GROUP, lookup: serviceGroupSetup},
}

func tierDependentSetup(_ *catalog.ServiceCatalog, g *catalog.OptionGroup, tierID string, cycle types.BillingCycle) (setupQuote, bool) {
	tp, ok := g.TierPricingFor(tierID)
	if !ok || tp.SetupCost == nil || !tp.SetupCost.Amount.IsPositive() {
		return setupQuote{}, false
	}
	cycleRule, _ := tp.SetupCostDiscount(cycle)
	return setupQuote{
		amount: tp.SetupCost.Amount,
		source: types.SETUP_SOURCE_TIER_DEPENDENT,
		discounts: []namedRule{
			{name: types.DISCOUNT_SOURCE_CYCLE_SETUP, rule: cycleRule},
			{name: types.DISCOUNT_SOURCE_EMBEDDED, rule: tp.SetupCost.Discount},
		},
	}, true
}

func serviceGroupSetup(c *catalog.ServiceCatalog, g *catalog.OptionGroup, tierID string, cycle types.BillingCycle) (setupQuote, bool) {
	for i := range c.ServiceGroups {
		sg := &c.ServiceGroups[i]
		if !sg.AppliesTo(g.ID) {
			continue
		}
		cost, ok := sg.SetupCostFor(tierID, cycle)
		if !ok || !cost.Amount.IsPositive() {
			continue
		}
		return setupQuote{
			amount: cost.Amount,
			source: types.SETUP_SOURCE_SERVICE_GROUP,
			discounts: []namedRule{
				{name: types.DISCOUNT_SOURCE_EMBEDDED, rule: cost.Discount},
			},
		}, true
	}
	return setupQuote{}, false
}

func resolveRegularSetup(c *catalog.ServiceCatalog, g *catalog.OptionGroup, tierID string, cycle types.BillingCycle) (setupQuote, bool) {
	for _, src := range regularSetupSources {
		if quote, ok := src.lookup(c, g, tierID, cycle); ok {
			return quote, true
		}
	}
	return setupQuote{}, false
}

// setupOnlyQuote prices a bundled one-time group: the tier-dependent setup
// cost if the tier has one, else the group's flat price, else nothing.
// The per-cycle discount table is keyed by the selection's global cycle.
func setupOnlyQuote(g *catalog.OptionGroup, tierID string, cycle types.BillingCycle) (setupQuote, bool) {
	tp, hasTier := g.TierPricingFor(tierID)

	var quote setupQuote
	switch {
	case hasTier && tp.SetupCost != nil:
		quote = setupQuote{amount: tp.SetupCost.Amount, source: types.SETUP_SOURCE_TIER_DEPENDENT}
	case g.Price != nil:
		quote = setupQuote{amount: *g.Price, source: types.SETUP_SOURCE_GROUP_PRICE}
	default:
		return setupQuote{}, false
	}

	if hasTier {
		cycleRule, _ := tp.SetupCostDiscount(cycle)
		quote.discounts = append(quote.discounts, namedRule{name: types.DISCOUNT_SOURCE_CYCLE_SETUP, rule: cycleRule})
		if tp.SetupCost != nil {
			quote.discounts = append(quote.discounts, namedRule{name: types.DISCOUNT_SOURCE_EMBEDDED, rule: tp.SetupCost.Discount})
		}
	}
	return quote, true
}

// addOnSetupQuote prices an add-on's setup cost from its standalone pricing only
func addOnSetupQuote(g *catalog.OptionGroup) (setupQuote, bool) {
	if g.StandalonePricing == nil || g.StandalonePricing.SetupCost == nil {
		return setupQuote{}, false
	}
	cost := g.StandalonePricing.SetupCost
	return setupQuote{
		amount: cost.Amount,
		source: types.SETUP_SOURCE_STANDALONE,
		discounts: []namedRule{
			{name: types.DISCOUNT_SOURCE_EMBEDDED, rule: cost.Discount},
		},
	}, true
}

package catalog

import (
	"github.com/flexprice/offerpricing/internal/domain/discount"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ServiceCatalog is the priced part of a service offering document
type ServiceCatalog struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Tiers         []Tier         `json:"tiers"`
	OptionGroups  []OptionGroup  `json:"option_groups"`
	ServiceGroups []ServiceGroup `json:"service_groups,omitempty"`
}

// Tier is a named subscription plan with a base monthly price
type Tier struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Pricing TierPricing `json:"pricing"`
}

type TierPricing struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// OptionGroup is a bundle of services with its own pricing and discount rules
type OptionGroup struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	IsAddOn  bool           `json:"is_add_on"`
	CostType types.CostType `json:"cost_type"`
	Currency string         `json:"currency"`
	// Price is the flat price of a setup-only group without tier pricing
	Price                 *decimal.Decimal       `json:"price,omitempty"`
	StandalonePricing     *StandalonePricing     `json:"standalone_pricing,omitempty"`
	TierDependentPricing  []TierDependentPricing `json:"tier_dependent_pricing,omitempty"`
	BillingCycleDiscounts []BillingCycleDiscount `json:"billing_cycle_discounts,omitempty"`
}

type StandalonePricing struct {
	RecurringPricing []RecurringPrice `json:"recurring_pricing,omitempty"`
	SetupCost        *SetupCost       `json:"setup_cost,omitempty"`
}

// TierDependentPricing overrides a group's standalone pricing for one tier
type TierDependentPricing struct {
	TierID             string                 `json:"tier_id"`
	RecurringPricing   []RecurringPrice       `json:"recurring_pricing,omitempty"`
	SetupCost          *SetupCost             `json:"setup_cost,omitempty"`
	SetupCostDiscounts []BillingCycleDiscount `json:"setup_cost_discounts,omitempty"`
}

type RecurringPrice struct {
	BillingCycle types.BillingCycle `json:"billing_cycle"`
	Amount       decimal.Decimal    `json:"amount"`
	Discount     *discount.Rule     `json:"discount,omitempty"`
}

type SetupCost struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Discount *discount.Rule  `json:"discount,omitempty"`
}

// BillingCycleDiscount keys a discount rule to exactly one billing cycle
type BillingCycleDiscount struct {
	BillingCycle types.BillingCycle `json:"billing_cycle"`
	DiscountRule discount.Rule      `json:"discount_rule"`
}

// ServiceGroup is the coarser service aggregate of an offering. Its per-cycle
// setup costs back regular groups that have no tier-dependent setup cost.
type ServiceGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// OptionGroupID restricts the group to one option group. Empty applies to all.
	OptionGroupID string                    `json:"option_group_id,omitempty"`
	TierPricing   []ServiceGroupTierPricing `json:"tier_pricing,omitempty"`
}

type ServiceGroupTierPricing struct {
	TierID             string           `json:"tier_id"`
	SetupCostsPerCycle []CycleSetupCost `json:"setup_costs_per_cycle,omitempty"`
}

type CycleSetupCost struct {
	BillingCycle types.BillingCycle `json:"billing_cycle"`
	Amount       decimal.Decimal    `json:"amount"`
	Currency     string             `json:"currency"`
	Discount     *discount.Rule     `json:"discount,omitempty"`
}

// FindTier returns the tier with the given id
func (c *ServiceCatalog) FindTier(tierID string) (*Tier, bool) {
	for i := range c.Tiers {
		if c.Tiers[i].ID == tierID {
			return &c.Tiers[i], true
		}
	}
	return nil, false
}

// IsSetupOnly reports whether a bundled group is billed once instead of every cycle
func (g *OptionGroup) IsSetupOnly() bool {
	return !g.IsAddOn && g.CostType == types.COST_TYPE_SETUP
}

// IsRegular reports whether a group is bundled and recurring
func (g *OptionGroup) IsRegular() bool {
	return !g.IsAddOn && g.CostType != types.COST_TYPE_SETUP
}

// TierPricingFor returns the tier-dependent pricing entry for tierID
func (g *OptionGroup) TierPricingFor(tierID string) (*TierDependentPricing, bool) {
	for i := range g.TierDependentPricing {
		if g.TierDependentPricing[i].TierID == tierID {
			return &g.TierDependentPricing[i], true
		}
	}
	return nil, false
}

// CycleDiscount returns the group level discount keyed to cycle
func (g *OptionGroup) CycleDiscount(cycle types.BillingCycle) (*discount.Rule, bool) {
	return findCycleDiscount(g.BillingCycleDiscounts, cycle)
}

// RecurringPriceFor returns the recurring price entry for cycle
func (p *TierDependentPricing) RecurringPriceFor(cycle types.BillingCycle) (*RecurringPrice, bool) {
	return findRecurringPrice(p.RecurringPricing, cycle)
}

// SetupCostDiscount returns the setup cost discount keyed to cycle
func (p *TierDependentPricing) SetupCostDiscount(cycle types.BillingCycle) (*discount.Rule, bool) {
	return findCycleDiscount(p.SetupCostDiscounts, cycle)
}

// RecurringPriceFor returns the standalone recurring price entry for cycle
func (p *StandalonePricing) RecurringPriceFor(cycle types.BillingCycle) (*RecurringPrice, bool) {
	if p == nil {
		return nil, false
	}
	return findRecurringPrice(p.RecurringPricing, cycle)
}

// AppliesTo reports whether the service group may back optionGroupID
func (s *ServiceGroup) AppliesTo(optionGroupID string) bool {
	return s.OptionGroupID == "" || s.OptionGroupID == optionGroupID
}

// SetupCostFor returns the per-cycle setup cost of the group for a tier
func (s *ServiceGroup) SetupCostFor(tierID string, cycle types.BillingCycle) (*CycleSetupCost, bool) {
	tp, ok := lo.Find(s.TierPricing, func(tp ServiceGroupTierPricing) bool {
		return tp.TierID == tierID
	})
	if !ok {
		return nil, false
	}
	for i := range tp.SetupCostsPerCycle {
		if tp.SetupCostsPerCycle[i].BillingCycle == cycle {
			cost := tp.SetupCostsPerCycle[i]
			return &cost, true
		}
	}
	return nil, false
}

func findRecurringPrice(prices []RecurringPrice, cycle types.BillingCycle) (*RecurringPrice, bool) {
	for i := range prices {
		if prices[i].BillingCycle == cycle {
			return &prices[i], true
		}
	}
	return nil, false
}

func findCycleDiscount(discounts []BillingCycleDiscount, cycle types.BillingCycle) (*discount.Rule, bool) {
	for i := range discounts {
		if discounts[i].BillingCycle == cycle {
			return &discounts[i].DiscountRule, true
		}
	}
	return nil, false
}

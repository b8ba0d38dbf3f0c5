package catalog

import (
	"fmt"

	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/shopspring/decimal"
)

// Validate checks the enum values and amounts of a catalog received over the
// wire. Documents persisted by the editors are already schema checked, this
// only guards the preview API against malformed payloads.
func (c *ServiceCatalog) Validate() error {
	for i, tier := range c.Tiers {
		if tier.ID == "" {
			return invalid("tier id is required", fmt.Sprintf("tiers[%d].id", i), tier.ID)
		}
		if err := nonNegative(tier.Pricing.Amount, fmt.Sprintf("tiers[%d].pricing.amount", i)); err != nil {
			return err
		}
	}

	for i, g := range c.OptionGroups {
		field := fmt.Sprintf("option_groups[%d]", i)
		if g.ID == "" {
			return invalid("option group id is required", field+".id", g.ID)
		}
		if err := g.CostType.Validate(); err != nil {
			return err
		}
		if g.Price != nil {
			if err := nonNegative(*g.Price, field+".price"); err != nil {
				return err
			}
		}
		if g.StandalonePricing != nil {
			if err := validateRecurring(g.StandalonePricing.RecurringPricing, field+".standalone_pricing"); err != nil {
				return err
			}
			if err := validateSetupCost(g.StandalonePricing.SetupCost, field+".standalone_pricing.setup_cost"); err != nil {
				return err
			}
		}
		for j, tp := range g.TierDependentPricing {
			tpField := fmt.Sprintf("%s.tier_dependent_pricing[%d]", field, j)
			if err := validateRecurring(tp.RecurringPricing, tpField); err != nil {
				return err
			}
			if err := validateSetupCost(tp.SetupCost, tpField+".setup_cost"); err != nil {
				return err
			}
			if err := validateCycleDiscounts(tp.SetupCostDiscounts); err != nil {
				return err
			}
		}
		if err := validateCycleDiscounts(g.BillingCycleDiscounts); err != nil {
			return err
		}
	}

	for _, sg := range c.ServiceGroups {
		for _, tp := range sg.TierPricing {
			for _, sc := range tp.SetupCostsPerCycle {
				if err := sc.BillingCycle.Validate(); err != nil {
					return err
				}
				if err := sc.Discount.Validate(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validateRecurring(prices []RecurringPrice, field string) error {
	for i, p := range prices {
		if err := p.BillingCycle.Validate(); err != nil {
			return err
		}
		if err := nonNegative(p.Amount, fmt.Sprintf("%s.recurring_pricing[%d].amount", field, i)); err != nil {
			return err
		}
		if err := p.Discount.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateSetupCost(cost *SetupCost, field string) error {
	if cost == nil {
		return nil
	}
	if err := nonNegative(cost.Amount, field+".amount"); err != nil {
		return err
	}
	return cost.Discount.Validate()
}

func validateCycleDiscounts(discounts []BillingCycleDiscount) error {
	for _, d := range discounts {
		if err := d.BillingCycle.Validate(); err != nil {
			return err
		}
		if err := d.DiscountRule.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func nonNegative(amount decimal.Decimal, field string) error {
	if amount.IsNegative() {
		return invalid("amount must not be negative", field, amount.String())
	}
	return nil
}

func invalid(msg, field string, value any) error {
	return ierr.NewError(msg).
		WithHintf("Invalid catalog: %s", msg).
		WithReportableDetails(map[string]any{
			"field": field,
			"value": value,
		}).
		Mark(ierr.ErrValidation)
}

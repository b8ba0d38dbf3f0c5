package pricing

import (
	"github.com/flexprice/offerpricing/internal/domain/discount"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/shopspring/decimal"
)

// PriceBreakdown is what a selection costs against a catalog. All amounts are
// rounded to two decimals.
type PriceBreakdown struct {
	CatalogID    string             `json:"catalog_id,omitempty"`
	Tier         TierInfo           `json:"tier"`
	BillingCycle types.BillingCycle `json:"billing_cycle"`
	// TierMonthlyBase is the selected tier's own monthly price, for display
	TierMonthlyBase       decimal.Decimal  `json:"tier_monthly_base"`
	OptionGroupBreakdowns []GroupBreakdown `json:"option_group_breakdowns"`
	SetupGroupBreakdowns  []GroupBreakdown `json:"setup_group_breakdowns"`
	AddOnBreakdowns       []GroupBreakdown `json:"add_on_breakdowns"`
	Totals                Totals           `json:"totals"`
}

type TierInfo struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// GroupBreakdown is the resolved price of one option group
type GroupBreakdown struct {
	GroupID   string          `json:"group_id"`
	GroupName string          `json:"group_name"`
	Kind      types.GroupKind `json:"kind"`
	Currency  string          `json:"currency,omitempty"`

	EffectiveBillingCycle  types.BillingCycle `json:"effective_billing_cycle"`
	BillingCycleOverridden bool               `json:"billing_cycle_overridden"`
	// DiscountStripped is set when an overridden cycle has no discount of its own.
	// Discounts never carry over from the selection's cycle.
	DiscountStripped bool `json:"discount_stripped"`

	HasPrice        bool                 `json:"has_price"`
	PriceSource     types.PriceSource    `json:"price_source"`
	MonthlyBase     decimal.Decimal      `json:"monthly_base"`
	CycleAmount     decimal.Decimal      `json:"cycle_amount"`
	RecurringAmount decimal.Decimal      `json:"recurring_amount"`
	Discount        *discount.Resolved   `json:"discount"`
	DiscountSource  types.DiscountSource `json:"discount_source"`

	SetupCost           decimal.Decimal      `json:"setup_cost"`
	SetupSource         types.SetupSource    `json:"setup_source"`
	SetupDiscount       *discount.Resolved   `json:"setup_discount"`
	SetupDiscountSource types.DiscountSource `json:"setup_discount_source"`
}

type Totals struct {
	RecurringTotal      decimal.Decimal `json:"recurring_total"`
	SetupTotal          decimal.Decimal `json:"setup_total"`
	AddOnRecurringTotal decimal.Decimal `json:"add_on_recurring_total"`
	AddOnSetupTotal     decimal.Decimal `json:"add_on_setup_total"`
	GrandRecurringTotal decimal.Decimal `json:"grand_recurring_total"`
	GrandSetupTotal     decimal.Decimal `json:"grand_setup_total"`
}

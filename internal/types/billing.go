package types

import (
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/samber/lo"
)

// BillingCycle is the recurrence period of a charge ex MONTHLY, QUARTERLY, ANNUAL
type BillingCycle string

const (
	BILLING_CYCLE_MONTHLY     BillingCycle = "MONTHLY"
	BILLING_CYCLE_QUARTERLY   BillingCycle = "QUARTERLY"
	BILLING_CYCLE_SEMI_ANNUAL BillingCycle = "SEMI_ANNUAL"
	BILLING_CYCLE_ANNUAL      BillingCycle = "ANNUAL"
	// BILLING_CYCLE_ONE_TIME is billed once but scales like a single month
	BILLING_CYCLE_ONE_TIME BillingCycle = "ONE_TIME"
)

// BILLING_CYCLE_MONTHS is the month multiplier used to scale a monthly base
// amount to the amount billed for one cycle.
var BILLING_CYCLE_MONTHS = map[BillingCycle]int64{
	BILLING_CYCLE_MONTHLY:     1,
	BILLING_CYCLE_QUARTERLY:   3,
	BILLING_CYCLE_SEMI_ANNUAL: 6,
	BILLING_CYCLE_ANNUAL:      12,
	BILLING_CYCLE_ONE_TIME:    1,
}

func (c BillingCycle) String() string {
	return string(c)
}

// Months returns the month multiplier of the cycle. Unknown cycles return 0.
func (c BillingCycle) Months() int64 {
	return BILLING_CYCLE_MONTHS[c]
}

func (c BillingCycle) Validate() error {
	allowed := []BillingCycle{
		BILLING_CYCLE_MONTHLY,
		BILLING_CYCLE_QUARTERLY,
		BILLING_CYCLE_SEMI_ANNUAL,
		BILLING_CYCLE_ANNUAL,
		BILLING_CYCLE_ONE_TIME,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid billing cycle").
			WithHint("Invalid billing cycle").
			WithReportableDetails(map[string]any{
				"billing_cycle":  c,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CostType tells whether an option group bills on every cycle or once at setup
type CostType string

const (
	COST_TYPE_RECURRING CostType = "RECURRING"
	COST_TYPE_SETUP     CostType = "SETUP"
)

func (c CostType) String() string {
	return string(c)
}

func (c CostType) Validate() error {
	allowed := []CostType{
		COST_TYPE_RECURRING,
		COST_TYPE_SETUP,
	}
	// cost type is optional on a group, empty means recurring
	if c != "" && !lo.Contains(allowed, c) {
		return ierr.NewError("invalid cost type").
			WithHint("Invalid cost type").
			WithReportableDetails(map[string]any{
				"cost_type":      c,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// UsageResetCycle is how often a metric's usage counter resets. The billing
// projection does not depend on it, it is carried for display only.
type UsageResetCycle string

const (
	USAGE_RESET_CYCLE_HOURLY      UsageResetCycle = "HOURLY"
	USAGE_RESET_CYCLE_DAILY       UsageResetCycle = "DAILY"
	USAGE_RESET_CYCLE_WEEKLY      UsageResetCycle = "WEEKLY"
	USAGE_RESET_CYCLE_MONTHLY     UsageResetCycle = "MONTHLY"
	USAGE_RESET_CYCLE_QUARTERLY   UsageResetCycle = "QUARTERLY"
	USAGE_RESET_CYCLE_SEMI_ANNUAL UsageResetCycle = "SEMI_ANNUAL"
	USAGE_RESET_CYCLE_ANNUAL      UsageResetCycle = "ANNUAL"
	USAGE_RESET_CYCLE_NONE        UsageResetCycle = "NONE"
)

func (c UsageResetCycle) Validate() error {
	allowed := []UsageResetCycle{
		USAGE_RESET_CYCLE_HOURLY,
		USAGE_RESET_CYCLE_DAILY,
		USAGE_RESET_CYCLE_WEEKLY,
		USAGE_RESET_CYCLE_MONTHLY,
		USAGE_RESET_CYCLE_QUARTERLY,
		USAGE_RESET_CYCLE_SEMI_ANNUAL,
		USAGE_RESET_CYCLE_ANNUAL,
		USAGE_RESET_CYCLE_NONE,
	}
	if c != "" && !lo.Contains(allowed, c) {
		return ierr.NewError("invalid usage reset cycle").
			WithHint("Invalid usage reset cycle").
			WithReportableDetails(map[string]any{
				"usage_reset_period": c,
				"allowed_values":     allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

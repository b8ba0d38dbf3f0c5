package billing

import (
	"time"

	"github.com/flexprice/offerpricing/internal/types"
	"github.com/shopspring/decimal"
)

// LineSource identifies whether a billing line comes from a standalone
// service or from a service group
type LineSource string

const (
	LineSourceService      LineSource = "SERVICE"
	LineSourceServiceGroup LineSource = "SERVICE_GROUP"
)

// BillingBreakdown is the projection of a subscription's next bill.
// Money amounts are rounded to two decimals.
type BillingBreakdown struct {
	SubscriptionID  string     `json:"subscription_id,omitempty"`
	Currency        string     `json:"currency,omitempty"`
	NextBillingDate *time.Time `json:"next_billing_date,omitempty"`

	FixedLines   []FixedLine   `json:"fixed_lines"`
	OverageLines []OverageLine `json:"overage_lines"`
	SetupLines   []SetupLine   `json:"setup_lines"`

	FixedSubtotal   decimal.Decimal `json:"fixed_subtotal"`
	DynamicSubtotal decimal.Decimal `json:"dynamic_subtotal"`
	// ComputedTotal is FixedSubtotal + DynamicSubtotal, reported even when overridden
	ComputedTotal  decimal.Decimal `json:"computed_total"`
	ProjectedTotal decimal.Decimal `json:"projected_total"`
	// IsOverridden is set when ProjectedTotal is the operator's projected bill amount
	IsOverridden bool `json:"is_overridden"`

	SetupTotal       decimal.Decimal `json:"setup_total"`
	PaidSetupTotal   decimal.Decimal `json:"paid_setup_total"`
	UnpaidSetupTotal decimal.Decimal `json:"unpaid_setup_total"`
}

// FixedLine is one recurring charge of the next bill
type FixedLine struct {
	SourceID     string             `json:"source_id"`
	SourceName   string             `json:"source_name"`
	SourceType   LineSource         `json:"source_type"`
	IsAddOn      bool               `json:"is_add_on"`
	BillingCycle types.BillingCycle `json:"billing_cycle,omitempty"`
	Amount       decimal.Decimal    `json:"amount"`
	Currency     string             `json:"currency,omitempty"`
}

// OverageLine is the metered usage of one metric above its free limit.
// Usage quantities and the unit rate are reported as recorded.
type OverageLine struct {
	ServiceID        string                `json:"service_id"`
	ServiceName      string                `json:"service_name"`
	GroupID          string                `json:"group_id,omitempty"`
	MetricID         string                `json:"metric_id"`
	MetricName       string                `json:"metric_name"`
	UnitName         string                `json:"unit_name,omitempty"`
	UsageResetPeriod types.UsageResetCycle `json:"usage_reset_period,omitempty"`
	CurrentUsage     decimal.Decimal       `json:"current_usage"`
	FreeLimit        decimal.Decimal       `json:"free_limit"`
	PaidLimit        *decimal.Decimal      `json:"paid_limit,omitempty"`
	ExceedsPaidLimit bool                  `json:"exceeds_paid_limit"`
	Excess           decimal.Decimal       `json:"excess"`
	UnitCost         decimal.Decimal       `json:"unit_cost"`
	ProjectedCost    decimal.Decimal       `json:"projected_cost"`
	Currency         string                `json:"currency,omitempty"`
}

// SetupLine is one entry of the setup cost ledger. Paid lines stay in the
// ledger as history.
type SetupLine struct {
	SourceID    string          `json:"source_id"`
	SourceName  string          `json:"source_name"`
	SourceType  LineSource      `json:"source_type"`
	GroupID     string          `json:"group_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	Paid        bool            `json:"paid"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

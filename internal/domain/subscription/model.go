package subscription

import (
	"time"

	"github.com/flexprice/offerpricing/internal/domain/discount"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/shopspring/decimal"
)

// Subscription is the materialized state of a live subscription instance.
// Services and groups carry their own costs, nothing is re-derived from the
// catalog the subscription was created from.
type Subscription struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	CustomerName string                   `json:"customer_name,omitempty"`
	Status       types.SubscriptionStatus `json:"status"`
	TierName     string                   `json:"tier_name,omitempty"`
	Currency     string                   `json:"currency,omitempty"`
	// ProjectedBillAmount is an operator override of the next bill
	ProjectedBillAmount *decimal.Decimal `json:"projected_bill_amount,omitempty"`
	NextBillingDate     *time.Time       `json:"next_billing_date,omitempty"`
	Services            []Service        `json:"services,omitempty"`
	ServiceGroups       []ServiceGroup   `json:"service_groups,omitempty"`
}

// Service is a single subscribed service, standalone or inside a group
type Service struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	RecurringCost *RecurringCost  `json:"recurring_cost,omitempty"`
	SetupCost     *SetupCost      `json:"setup_cost,omitempty"`
	Metrics       []ServiceMetric `json:"metrics,omitempty"`
}

// ServiceGroup bundles services under one recurring charge. Optional groups
// are add-ons the customer may ask to remove.
type ServiceGroup struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Optional      bool           `json:"optional"`
	RecurringCost *RecurringCost `json:"recurring_cost,omitempty"`
	SetupCost     *SetupCost     `json:"setup_cost,omitempty"`
	Services      []Service      `json:"services,omitempty"`
}

// ServiceMetric is a metered usage counter of a service
type ServiceMetric struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	UnitName         string                `json:"unit_name,omitempty"`
	CurrentUsage     decimal.Decimal       `json:"current_usage"`
	FreeLimit        *decimal.Decimal      `json:"free_limit,omitempty"`
	PaidLimit        *decimal.Decimal      `json:"paid_limit,omitempty"`
	UsageResetPeriod types.UsageResetCycle `json:"usage_reset_period,omitempty"`
	UnitCost         *RecurringCost        `json:"unit_cost,omitempty"`
}

type RecurringCost struct {
	Amount          decimal.Decimal    `json:"amount"`
	Currency        string             `json:"currency"`
	BillingCycle    types.BillingCycle `json:"billing_cycle,omitempty"`
	Discount        *discount.Rule     `json:"discount,omitempty"`
	LastPaymentDate *time.Time         `json:"last_payment_date,omitempty"`
	NextBillingDate *time.Time         `json:"next_billing_date,omitempty"`
}

type SetupCost struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Discount    *discount.Rule  `json:"discount,omitempty"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

// IsPaid reports whether the setup cost has been paid
func (s *SetupCost) IsPaid() bool {
	return s != nil && s.PaymentDate != nil
}

// Excess returns the usage above the free limit, floored at zero. It is only
// defined for metrics that have both a free limit and a unit cost.
func (m *ServiceMetric) Excess() (decimal.Decimal, bool) {
	if m.FreeLimit == nil || m.UnitCost == nil {
		return decimal.Zero, false
	}
	return decimal.Max(m.CurrentUsage.Sub(*m.FreeLimit), decimal.Zero), true
}

// ExceedsPaidLimit reports whether usage is above the paid (hard) limit
func (m *ServiceMetric) ExceedsPaidLimit() bool {
	return m.PaidLimit != nil && m.CurrentUsage.GreaterThan(*m.PaidLimit)
}

func (s *Subscription) Validate() error {
	if err := s.Status.Validate(); err != nil {
		return err
	}
	for _, svc := range s.Services {
		if err := svc.validate(); err != nil {
			return err
		}
	}
	for _, g := range s.ServiceGroups {
		for _, svc := range g.Services {
			if err := svc.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s Service) validate() error {
	for _, m := range s.Metrics {
		if err := m.UsageResetPeriod.Validate(); err != nil {
			return err
		}
	}
	return nil
}

package billing

import (
	"github.com/flexprice/offerpricing/internal/domain/subscription"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Projector computes the next bill of a live subscription
type Projector interface {
	// Project never fails. The subscription carries its own materialized costs
	// and nothing is looked up elsewhere.
	Project(sub *subscription.Subscription) *BillingBreakdown
}

// NewProjector returns the subscription billing projector
func NewProjector() Projector {
	return &projector{}
}

type projector struct{}

// projection accumulates raw amounts so each subtotal is rounded once
type projection struct {
	out         *BillingBreakdown
	fixed       decimal.Decimal
	dynamic     decimal.Decimal
	paidSetup   decimal.Decimal
	unpaidSetup decimal.Decimal
}

func (p *projector) Project(sub *subscription.Subscription) *BillingBreakdown {
	acc := &projection{
		out: &BillingBreakdown{
			SubscriptionID:  sub.ID,
			Currency:        sub.Currency,
			NextBillingDate: sub.NextBillingDate,
			FixedLines:      []FixedLine{},
			OverageLines:    []OverageLine{},
			SetupLines:      []SetupLine{},
		},
	}

	for i := range sub.Services {
		svc := &sub.Services[i]
		acc.addFixed(svc.ID, svc.Name, LineSourceService, false, svc.RecurringCost)
		acc.addService(svc, "")
	}

	// Optional groups only change the line label, they are billed like any other group
	for i := range sub.ServiceGroups {
		g := &sub.ServiceGroups[i]
		acc.addFixed(g.ID, g.Name, LineSourceServiceGroup, g.Optional, g.RecurringCost)
		acc.addSetup(g.ID, g.Name, LineSourceServiceGroup, "", g.SetupCost)
		for j := range g.Services {
			acc.addService(&g.Services[j], g.ID)
		}
	}

	out := acc.out
	out.FixedSubtotal = types.RoundMoney(acc.fixed)
	out.DynamicSubtotal = types.RoundMoney(acc.dynamic)
	out.ComputedTotal = types.RoundMoney(acc.fixed.Add(acc.dynamic))
	out.ProjectedTotal = out.ComputedTotal
	if sub.ProjectedBillAmount != nil {
		out.ProjectedTotal = types.RoundMoney(*sub.ProjectedBillAmount)
		out.IsOverridden = true
	}

	out.PaidSetupTotal = types.RoundMoney(acc.paidSetup)
	out.UnpaidSetupTotal = types.RoundMoney(acc.unpaidSetup)
	out.SetupTotal = types.RoundMoney(acc.paidSetup.Add(acc.unpaidSetup))
	return out
}

// addService records a service's setup cost and metric overages. The
// recurring cost of a grouped service is covered by its group's charge.
func (p *projection) addService(svc *subscription.Service, groupID string) {
	p.addSetup(svc.ID, svc.Name, LineSourceService, groupID, svc.SetupCost)
	for i := range svc.Metrics {
		p.addOverage(svc, groupID, &svc.Metrics[i])
	}
}

func (p *projection) addFixed(id, name string, source LineSource, isAddOn bool, cost *subscription.RecurringCost) {
	if cost == nil {
		return
	}
	p.fixed = p.fixed.Add(cost.Amount)
	p.out.FixedLines = append(p.out.FixedLines, FixedLine{
		SourceID:     id,
		SourceName:   name,
		SourceType:   source,
		IsAddOn:      isAddOn,
		BillingCycle: cost.BillingCycle,
		Amount:       types.RoundMoney(cost.Amount),
		Currency:     cost.Currency,
	})
}

func (p *projection) addSetup(id, name string, source LineSource, groupID string, cost *subscription.SetupCost) {
	if cost == nil {
		return
	}
	paid := cost.IsPaid()
	if paid {
		p.paidSetup = p.paidSetup.Add(cost.Amount)
	} else {
		p.unpaidSetup = p.unpaidSetup.Add(cost.Amount)
	}
	p.out.SetupLines = append(p.out.SetupLines, SetupLine{
		SourceID:    id,
		SourceName:  name,
		SourceType:  source,
		GroupID:     groupID,
		Amount:      types.RoundMoney(cost.Amount),
		Currency:    cost.Currency,
		Paid:        paid,
		PaymentDate: cost.PaymentDate,
	})
}

func (p *projection) addOverage(svc *subscription.Service, groupID string, m *subscription.ServiceMetric) {
	excess, ok := m.Excess()
	if !ok {
		return
	}
	cost := excess.Mul(m.UnitCost.Amount)
	p.dynamic = p.dynamic.Add(cost)

	p.out.OverageLines = append(p.out.OverageLines, OverageLine{
		ServiceID:        svc.ID,
		ServiceName:      svc.Name,
		GroupID:          groupID,
		MetricID:         m.ID,
		MetricName:       m.Name,
		UnitName:         m.UnitName,
		UsageResetPeriod: m.UsageResetPeriod,
		CurrentUsage:     m.CurrentUsage,
		FreeLimit:        lo.FromPtr(m.FreeLimit),
		PaidLimit:        m.PaidLimit,
		ExceedsPaidLimit: m.ExceedsPaidLimit(),
		Excess:           excess,
		UnitCost:         m.UnitCost.Amount,
		ProjectedCost:    types.RoundMoney(cost),
		Currency:         m.UnitCost.Currency,
	})
}

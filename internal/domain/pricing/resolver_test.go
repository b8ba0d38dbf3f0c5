package pricing

import (
	"testing"

	"github.com/flexprice/offerpricing/internal/domain/catalog"
	"github.com/flexprice/offerpricing/internal/domain/discount"
	"github.com/flexprice/offerpricing/internal/domain/selection"
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func pct(v int64) *discount.Rule {
	return &discount.Rule{DiscountType: types.DiscountTypePercentage, DiscountValue: decimal.NewFromInt(v)}
}

func flat(v string) *discount.Rule {
	return &discount.Rule{DiscountType: types.DiscountTypeFlatAmount, DiscountValue: dec(v)}
}

func monthly(amount string, d *discount.Rule) catalog.RecurringPrice {
	return catalog.RecurringPrice{BillingCycle: types.BILLING_CYCLE_MONTHLY, Amount: dec(amount), Discount: d}
}

func tiers() []catalog.Tier {
	return []catalog.Tier{
		{ID: "basic", Name: "Basic", Pricing: catalog.TierPricing{Amount: dec("50"), Currency: "USD"}},
		{ID: "pro", Name: "Pro", Pricing: catalog.TierPricing{Amount: dec("100"), Currency: "USD"}},
	}
}

func sel(tierID string, cycle types.BillingCycle) selection.Selection {
	return selection.Selection{TierID: tierID, BillingCycle: cycle}
}

func resolve(t *testing.T, c *catalog.ServiceCatalog, s selection.Selection) *PriceBreakdown {
	t.Helper()
	out, err := NewResolver().Resolve(c, s)
	require.NoError(t, err)
	return out
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

func TestResolve_SupportAtFifteenPercent(t *testing.T) {
	c := &catalog.ServiceCatalog{
		ID:    "cat_1",
		Tiers: tiers(),
		OptionGroups: []catalog.OptionGroup{
			{
				ID:       "support",
				Name:     "Support",
				CostType: types.COST_TYPE_RECURRING,
				TierDependentPricing: []catalog.TierDependentPricing{
					{TierID: "pro", RecurringPricing: []catalog.RecurringPrice{monthly("20", nil)}},
				},
				BillingCycleDiscounts: []catalog.BillingCycleDiscount{
					{BillingCycle: types.BILLING_CYCLE_MONTHLY, DiscountRule: *pct(15)},
				},
			},
		},
	}

	out := resolve(t, c, sel("pro", types.BILLING_CYCLE_MONTHLY))

	assert.Equal(t, "pro", out.Tier.ID)
	assertMoney(t, "100.00", out.TierMonthlyBase)
	require.Len(t, out.OptionGroupBreakdowns, 1)

	g := out.OptionGroupBreakdowns[0]
	assert.True(t, g.HasPrice)
	assert.Equal(t, types.PRICE_SOURCE_TIER_DEPENDENT, g.PriceSource)
	assertMoney(t, "20.00", g.MonthlyBase)
	assertMoney(t, "20.00", g.CycleAmount)
	assertMoney(t, "17.00", g.RecurringAmount)
	require.NotNil(t, g.Discount)
	assertMoney(t, "3.00", g.Discount.Savings)
	assert.Equal(t, types.DISCOUNT_SOURCE_GROUP_CYCLE, g.DiscountSource)
	assert.False(t, g.BillingCycleOverridden)
	assert.False(t, g.DiscountStripped)

	assertMoney(t, "17.00", out.Totals.RecurringTotal)
	assertMoney(t, "17.00", out.Totals.GrandRecurringTotal)
	assertMoney(t, "0.00", out.Totals.SetupTotal)
	assert.Empty(t, out.SetupGroupBreakdowns)
	assert.NotNil(t, out.SetupGroupBreakdowns)
	assert.NotNil(t, out.AddOnBreakdowns)
}

func TestResolve_MonthlyPricePrecedence(t *testing.T) {
	group := catalog.OptionGroup{
		ID:       "storage",
		CostType: types.COST_TYPE_RECURRING,
		StandalonePricing: &catalog.StandalonePricing{
			RecurringPricing: []catalog.RecurringPrice{monthly("80", nil)},
		},
		TierDependentPricing: []catalog.TierDependentPricing{
			{TierID: "pro", RecurringPricing: []catalog.RecurringPrice{monthly("50", nil)}},
			{TierID: "basic"},
		},
	}

	tests := []struct {
		name       string
		tierID     string
		wantSource types.PriceSource
		wantBase   string
		wantPrice  bool
	}{
		{name: "tier dependent wins over standalone", tierID: "pro", wantSource: types.PRICE_SOURCE_TIER_DEPENDENT, wantBase: "50.00", wantPrice: true},
		{name: "tier entry without monthly price is zero", tierID: "basic", wantSource: types.PRICE_SOURCE_TIER_DEPENDENT, wantBase: "0.00", wantPrice: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &catalog.ServiceCatalog{Tiers: tiers(), OptionGroups: []catalog.OptionGroup{group}}
			out := resolve(t, c, sel(tt.tierID, types.BILLING_CYCLE_MONTHLY))

			g := out.OptionGroupBreakdowns[0]
			assert.Equal(t, tt.wantSource, g.PriceSource)
			assert.Equal(t, tt.wantPrice, g.HasPrice)
			assertMoney(t, tt.wantBase, g.MonthlyBase)
		})
	}

	t.Run("standalone when tier has no entry", func(t *testing.T) {
		g := group
		g.TierDependentPricing = g.TierDependentPricing[:1]
		c := &catalog.ServiceCatalog{Tiers: tiers(), OptionGroups: []catalog.OptionGroup{g}}
		out := resolve(t, c, sel("basic", types.BILLING_CYCLE_MONTHLY))

		b := out.OptionGroupBreakdowns[0]
		assert.Equal(t, types.PRICE_SOURCE_STANDALONE, b.PriceSource)
		assertMoney(t, "80.00", b.MonthlyBase)
	})

	t.Run("no pricing at all", func(t *testing.T) {
		c := &catalog.ServiceCatalog{Tiers: tiers(), OptionGroups: []catalog.OptionGroup{{ID: "empty"}}}
		out := resolve(t, c, sel("pro", types.BILLING_CYCLE_ANNUAL))

		b := out.OptionGroupBreakdowns[0]
		assert.False(t, b.HasPrice)
		assert.Equal(t, types.PRICE_SOURCE_NONE, b.PriceSource)
		assertMoney(t, "0.00", b.RecurringAmount)
		assert.Nil(t, b.Discount)
	})
}

func TestResolve_CycleScaling(t *testing.T) {
	tests := []struct {
		cycle types.BillingCycle
		want  string
	}{
		{cycle: types.BILLING_CYCLE_MONTHLY, want: "10.00"},
		{cycle: types.BILLING_CYCLE_QUARTERLY, want: "30.00"},
		{cycle: types.BILLING_CYCLE_SEMI_ANNUAL, want: "60.00"},
		{cycle: types.BILLING_CYCLE_ANNUAL, want: "120.00"},
		{cycle: types.BILLING_CYCLE_ONE_TIME, want: "10.00"},
	}

	c := &catalog.ServiceCatalog{
		Tiers: tiers(),
		OptionGroups: []catalog.OptionGroup{
			{
				ID: "backup",
				StandalonePricing: &catalog.StandalonePricing{
					RecurringPricing: []catalog.RecurringPrice{monthly("10", nil)},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.cycle), func(t *testing.T) {
			out := resolve(t, c, sel("pro", tt.cycle))
			g := out.OptionGroupBreakdowns[0]
			assertMoney(t, "10.00", g.MonthlyBase)
			assertMoney(t, tt.want, g.CycleAmount)
			assertMoney(t, tt.want, g.RecurringAmount)
		})
	}
}

func TestResolve_RecurringDiscountPrecedence(t *testing.T) {
	c := &catalog.ServiceCatalog{
		Tiers: tiers(),
		OptionGroups: []catalog.OptionGroup{
			{
				ID: "support",
				TierDependentPricing: []catalog.TierDependentPricing{
					{
						TierID: "pro",
						RecurringPricing: []catalog.RecurringPrice{
							monthly("100", nil),
							{BillingCycle: types.BILLING_CYCLE_ANNUAL, Amount: dec("1000"), Discount: pct(20)},
						},
					},
				},
				BillingCycleDiscounts: []catalog.BillingCycleDiscount{
					{BillingCycle: types.BILLING_CYCLE_ANNUAL, DiscountRule: *pct(10)},
					{BillingCycle: types.BILLING_CYCLE_QUARTERLY, DiscountRule: discount.Rule{DiscountType: types.DiscountTypePercentage}},
				},
			},
		},
	}

	t.Run("group cycle discount wins", func(t *testing.T) {
		out := resolve(t, c, sel("pro", types.BILLING_CYCLE_ANNUAL))
		g := out.OptionGroupBreakdowns[0]

		// 100 x 12 = 1200, the annual price entry's amount is never used
		assertMoney(t, "1200.00", g.CycleAmount)
		require.NotNil(t, g.Discount)
		assert.True(t, g.Discount.DiscountValue.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, types.DISCOUNT_SOURCE_GROUP_CYCLE, g.DiscountSource)
		assertMoney(t, "1080.00", g.RecurringAmount)
		assertMoney(t, "1200.00", g.Discount.OriginalAmount)
	})

	t.Run("zero valued group discount falls through", func(t *testing.T) {
		out := resolve(t, c, sel("pro", types.BILLING_CYCLE_QUARTERLY))
		g := out.OptionGroupBreakdowns[0]

		assert.Nil(t, g.Discount)
		assert.Equal(t, types.DISCOUNT_SOURCE_NONE, g.DiscountSource)
		assertMoney(t, "300.00", g.RecurringAmount)
	})

	t.Run("tier independent discount when group has none", func(t *testing.T) {
		cc := *c
		cc.OptionGroups = []catalog.OptionGroup{c.OptionGroups[0]}
		cc.OptionGroups[0].BillingCycleDiscounts = nil

		out := resolve(t, &cc, sel("pro", types.BILLING_CYCLE_ANNUAL))
		g := out.OptionGroupBreakdowns[0]

		require.NotNil(t, g.Discount)
		assert.Equal(t, types.DISCOUNT_SOURCE_TIER_INDEPENDENT, g.DiscountSource)
		assertMoney(t, "960.00", g.RecurringAmount)
	})
}

func TestResolve_OverrideStripsDiscount(t *testing.T) {
	c := &catalog.ServiceCatalog{
		Tiers: tiers(),
		OptionGroups: []catalog.OptionGroup{
			{
				ID: "support",
				StandalonePricing: &catalog.StandalonePricing{
					RecurringPricing: []catalog.RecurringPrice{monthly("10", nil)},
				},
				BillingCycleDiscounts: []catalog.BillingCycleDiscount{
					{BillingCycle: types.BILLING_CYCLE_MONTHLY, DiscountRule: *pct(10)},
				},
			},
		},
	}

	base := resolve(t, c, sel("pro", types.BILLING_CYCLE_MONTHLY))
	require.NotNil(t, base.OptionGroupBreakdowns[0].Discount)
	assertMoney(t, "9.00", base.OptionGroupBreakdowns[0].RecurringAmount)

	s := sel("pro", types.BILLING_CYCLE_MONTHLY)
	s.GroupBillingCycleOverrides = map[string]types.BillingCycle{"support": types.BILLING_CYCLE_ANNUAL}
	out := resolve(t, c, s)

	g := out.OptionGroupBreakdowns[0]
	assert.Equal(t, types.BILLING_CYCLE_ANNUAL, g.EffectiveBillingCycle)
	assert.True(t, g.BillingCycleOverridden)
	assert.True(t, g.DiscountStripped)
	assert.Nil(t, g.Discount)
	assertMoney(t, "120.00", g.RecurringAmount)
}

func TestResolve_OverrideEqualToGlobalIsNotOverridden(t *testing.T) {
	c := &catalog.ServiceCatalog{
		Tiers:        tiers(),
		OptionGroups: []catalog.OptionGroup{{ID: "g"}},
	}
	s := sel("pro", types.BILLING_CYCLE_MONTHLY)
	s.GroupBillingCycleOverrides = map[string]types.BillingCycle{"g": types.BILLING_CYCLE_MONTHLY}

	out := resolve(t, c, s)
	assert.False(t, out.OptionGroupBreakdowns[0].BillingCycleOverridden)
	assert.False(t, out.OptionGroupBreakdowns[0].DiscountStripped)
}

func TestResolve_UnknownTier(t *testing.T) {
	c := &catalog.ServiceCatalog{Tiers: tiers()}

	out, err := NewResolver().Resolve(c, sel("enterprise", types.BILLING_CYCLE_MONTHLY))
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
	assert.Contains(t, err.Error(), "Tier enterprise not found")
}

func TestResolve_RegularSetupCost(t *testing.T) {
	serviceGroups := []catalog.ServiceGroup{
		{
			ID:            "sg_other",
			OptionGroupID: "other",
			TierPricing: []catalog.ServiceGroupTierPricing{
				{TierID: "pro", SetupCostsPerCycle: []catalog.CycleSetupCost{
					{BillingCycle: types.BILLING_CYCLE_ANNUAL, Amount: dec("999")},
				}},
			},
		},
		{
			ID: "sg_all",
			TierPricing: []catalog.ServiceGroupTierPricing{
				{TierID: "pro", SetupCostsPerCycle: []catalog.CycleSetupCost{
					{BillingCycle: types.BILLING_CYCLE_MONTHLY, Amount: dec("0")},
					{BillingCycle: types.BILLING_CYCLE_ANNUAL, Amount: dec("200"), Discount: flat("50")},
				}},
			},
		},
	}

	t.Run("tier dependent setup with cycle discount first", func(t *testing.T) {
		c := &catalog.ServiceCatalog{
			Tiers:         tiers(),
			ServiceGroups: serviceGroups,
			OptionGroups: []catalog.OptionGroup{
				{
					ID: "onboarding",
					TierDependentPricing: []catalog.TierDependentPricing{
						{
							TierID:    "pro",
							SetupCost: &catalog.SetupCost{Amount: dec("100"), Discount: pct(10)},
							SetupCostDiscounts: []catalog.BillingCycleDiscount{
								{BillingCycle: types.BILLING_CYCLE_ANNUAL, DiscountRule: *pct(50)},
							},
						},
					},
				},
			},
		}

		annual := resolve(t, c, sel("pro", types.BILLING_CYCLE_ANNUAL)).OptionGroupBreakdowns[0]
		assert.Equal(t, types.SETUP_SOURCE_TIER_DEPENDENT, annual.SetupSource)
		assert.Equal(t, types.DISCOUNT_SOURCE_CYCLE_SETUP, annual.SetupDiscountSource)
		assertMoney(t, "50.00", annual.SetupCost)

		monthlySetup := resolve(t, c, sel("pro", types.BILLING_CYCLE_MONTHLY)).OptionGroupBreakdowns[0]
		assert.Equal(t, types.DISCOUNT_SOURCE_EMBEDDED, monthlySetup.SetupDiscountSource)
		assertMoney(t, "90.00", monthlySetup.SetupCost)
	})

	t.Run("service group fallback honours restriction and skips zero", func(t *testing.T) {
		c := &catalog.ServiceCatalog{
			Tiers:         tiers(),
			ServiceGroups: serviceGroups,
			OptionGroups:  []catalog.OptionGroup{{ID: "onboarding"}},
		}

		annual := resolve(t, c, sel("pro", types.BILLING_CYCLE_ANNUAL))
		g := annual.OptionGroupBreakdowns[0]
		assert.Equal(t, types.SETUP_SOURCE_SERVICE_GROUP, g.SetupSource)
		assert.Equal(t, types.DISCOUNT_SOURCE_EMBEDDED, g.SetupDiscountSource)
		assertMoney(t, "150.00", g.SetupCost)
		assertMoney(t, "150.00", annual.Totals.SetupTotal)

		monthlySetup := resolve(t, c, sel("pro", types.BILLING_CYCLE_MONTHLY)).OptionGroupBreakdowns[0]
		assert.Equal(t, types.SETUP_SOURCE_NONE, monthlySetup.SetupSource)
		assertMoney(t, "0.00", monthlySetup.SetupCost)
		assert.Nil(t, monthlySetup.SetupDiscount)
	})

	t.Run("setup follows the group's effective cycle", func(t *testing.T) {
		c := &catalog.ServiceCatalog{
			Tiers:         tiers(),
			ServiceGroups: serviceGroups,
			OptionGroups:  []catalog.OptionGroup{{ID: "onboarding"}},
		}
		s := sel("pro", types.BILLING_CYCLE_MONTHLY)
		s.GroupBillingCycleOverrides = map[string]types.BillingCycle{"onboarding": types.BILLING_CYCLE_ANNUAL}

		g := resolve(t, c, s).OptionGroupBreakdowns[0]
		assertMoney(t, "150.00", g.SetupCost)
	})
}

func TestResolve_SetupOnlyGroups(t *testing.T) {
	c := &catalog.ServiceCatalog{
		Tiers: tiers(),
		OptionGroups: []catalog.OptionGroup{
			{
				ID:       "migration",
				CostType: types.COST_TYPE_SETUP,
				Price:    lo.ToPtr(dec("300")),
				TierDependentPricing: []catalog.TierDependentPricing{
					{
						TierID:    "pro",
						SetupCost: &catalog.SetupCost{Amount: dec("500"), Discount: flat("100")},
						SetupCostDiscounts: []catalog.BillingCycleDiscount{
							{BillingCycle: types.BILLING_CYCLE_ANNUAL, DiscountRule: *pct(20)},
						},
					},
				},
				StandalonePricing: &catalog.StandalonePricing{
					RecurringPricing: []catalog.RecurringPrice{monthly("999", nil)},
				},
			},
		},
	}

	tests := []struct {
		name           string
		tierID         string
		cycle          types.BillingCycle
		wantSource     types.SetupSource
		wantDiscount   types.DiscountSource
		wantSetup      string
		wantSetupTotal string
	}{
		{
			name:         "tier setup with cycle discount",
			tierID:       "pro",
			cycle:        types.BILLING_CYCLE_ANNUAL,
			wantSource:   types.SETUP_SOURCE_TIER_DEPENDENT,
			wantDiscount: types.DISCOUNT_SOURCE_CYCLE_SETUP,
			wantSetup:    "400.00",
		},
		{
			name:         "tier setup with embedded discount",
			tierID:       "pro",
			cycle:        types.BILLING_CYCLE_MONTHLY,
			wantSource:   types.SETUP_SOURCE_TIER_DEPENDENT,
			wantDiscount: types.DISCOUNT_SOURCE_EMBEDDED,
			wantSetup:    "400.00",
		},
		{
			name:         "group price without tier entry",
			tierID:       "basic",
			cycle:        types.BILLING_CYCLE_ANNUAL,
			wantSource:   types.SETUP_SOURCE_GROUP_PRICE,
			wantDiscount: types.DISCOUNT_SOURCE_NONE,
			wantSetup:    "300.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := resolve(t, c, sel(tt.tierID, tt.cycle))

			assert.Empty(t, out.OptionGroupBreakdowns)
			require.Len(t, out.SetupGroupBreakdowns, 1)
			g := out.SetupGroupBreakdowns[0]

			assert.Equal(t, types.GROUP_KIND_SETUP_ONLY, g.Kind)
			assert.Equal(t, tt.cycle, g.EffectiveBillingCycle)
			assertMoney(t, "0.00", g.RecurringAmount)
			assert.Equal(t, tt.wantSource, g.SetupSource)
			assert.Equal(t, tt.wantDiscount, g.SetupDiscountSource)
			assertMoney(t, tt.wantSetup, g.SetupCost)
			assertMoney(t, tt.wantSetup, out.Totals.SetupTotal)
			assertMoney(t, "0.00", out.Totals.RecurringTotal)
		})
	}

	t.Run("setup only group overrides are ignored", func(t *testing.T) {
		s := sel("pro", types.BILLING_CYCLE_MONTHLY)
		s.GroupBillingCycleOverrides = map[string]types.BillingCycle{"migration": types.BILLING_CYCLE_ANNUAL}

		g := resolve(t, c, s).SetupGroupBreakdowns[0]
		assert.Equal(t, types.BILLING_CYCLE_MONTHLY, g.EffectiveBillingCycle)
		assert.Equal(t, types.DISCOUNT_SOURCE_EMBEDDED, g.SetupDiscountSource)
	})
}

func TestResolve_AddOns(t *testing.T) {
	c := &catalog.ServiceCatalog{
		Tiers: tiers(),
		OptionGroups: []catalog.OptionGroup{
			{ID: "core", StandalonePricing: &catalog.StandalonePricing{RecurringPricing: []catalog.RecurringPrice{monthly("10", nil)}}},
			{
				ID:      "analytics",
				IsAddOn: true,
				StandalonePricing: &catalog.StandalonePricing{
					RecurringPricing: []catalog.RecurringPrice{monthly("25", nil)},
					SetupCost:        &catalog.SetupCost{Amount: dec("40"), Discount: pct(25)},
				},
				BillingCycleDiscounts: []catalog.BillingCycleDiscount{
					{BillingCycle: types.BILLING_CYCLE_ANNUAL, DiscountRule: *pct(10)},
				},
			},
			{ID: "sso", IsAddOn: true, StandalonePricing: &catalog.StandalonePricing{RecurringPricing: []catalog.RecurringPrice{monthly("5", nil)}}},
		},
	}

	t.Run("disabled add-ons are skipped", func(t *testing.T) {
		out := resolve(t, c, sel("pro", types.BILLING_CYCLE_MONTHLY))
		assert.Empty(t, out.AddOnBreakdowns)
		assert.Len(t, out.OptionGroupBreakdowns, 1)
		assertMoney(t, "0.00", out.Totals.AddOnRecurringTotal)
	})

	t.Run("enabled add-on with its own cycle", func(t *testing.T) {
		s := sel("pro", types.BILLING_CYCLE_MONTHLY)
		s.OptionGroupIDs = []string{"analytics"}
		s.AddOnBillingCycleOverrides = map[string]types.BillingCycle{"analytics": types.BILLING_CYCLE_ANNUAL}

		out := resolve(t, c, s)
		require.Len(t, out.AddOnBreakdowns, 1)
		a := out.AddOnBreakdowns[0]

		assert.Equal(t, types.GROUP_KIND_ADD_ON, a.Kind)
		assert.True(t, a.BillingCycleOverridden)
		assert.False(t, a.DiscountStripped)
		assertMoney(t, "270.00", a.RecurringAmount) // 25 x 12 less 10%
		assert.Equal(t, types.SETUP_SOURCE_STANDALONE, a.SetupSource)
		assertMoney(t, "30.00", a.SetupCost)

		assertMoney(t, "10.00", out.Totals.RecurringTotal)
		assertMoney(t, "270.00", out.Totals.AddOnRecurringTotal)
		assertMoney(t, "30.00", out.Totals.AddOnSetupTotal)
		assertMoney(t, "280.00", out.Totals.GrandRecurringTotal)
		assertMoney(t, "30.00", out.Totals.GrandSetupTotal)
	})

	t.Run("add-ons follow catalog order", func(t *testing.T) {
		s := sel("pro", types.BILLING_CYCLE_MONTHLY)
		s.OptionGroupIDs = []string{"sso", "analytics"}

		out := resolve(t, c, s)
		ids := lo.Map(out.AddOnBreakdowns, func(b GroupBreakdown, _ int) string { return b.GroupID })
		assert.Equal(t, []string{"analytics", "sso"}, ids)
	})
}

func TestResolve_Idempotent(t *testing.T) {
	c := &catalog.ServiceCatalog{
		Tiers: tiers(),
		OptionGroups: []catalog.OptionGroup{
			{ID: "a", StandalonePricing: &catalog.StandalonePricing{RecurringPricing: []catalog.RecurringPrice{monthly("19.99", pct(7))}}},
		},
	}
	s := sel("pro", types.BILLING_CYCLE_QUARTERLY)

	first := resolve(t, c, s)
	second := resolve(t, c, s)
	assert.Equal(t, first, second)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	build := func() (*catalog.ServiceCatalog, selection.Selection) {
		c := &catalog.ServiceCatalog{
			Tiers: tiers(),
			OptionGroups: []catalog.OptionGroup{
				{
					ID: "support",
					TierDependentPricing: []catalog.TierDependentPricing{
						{TierID: "pro", RecurringPricing: []catalog.RecurringPrice{monthly("20", pct(5))}},
					},
					BillingCycleDiscounts: []catalog.BillingCycleDiscount{
						{BillingCycle: types.BILLING_CYCLE_ANNUAL, DiscountRule: *pct(15)},
					},
				},
				{
					ID:       "onboarding",
					CostType: types.COST_TYPE_SETUP,
					StandalonePricing: &catalog.StandalonePricing{
						SetupCost: &catalog.SetupCost{Amount: dec("80"), Discount: flat("10")},
					},
				},
				{
					ID:      "analytics",
					IsAddOn: true,
					StandalonePricing: &catalog.StandalonePricing{
						RecurringPricing: []catalog.RecurringPrice{monthly("25", nil)},
						SetupCost:        &catalog.SetupCost{Amount: dec("40"), Discount: pct(25)},
					},
				},
			},
		}
		s := sel("pro", types.BILLING_CYCLE_MONTHLY)
		s.OptionGroupIDs = []string{"analytics", "missing"}
		s.GroupBillingCycleOverrides = map[string]types.BillingCycle{"support": types.BILLING_CYCLE_ANNUAL}
		s.AddOnBillingCycleOverrides = map[string]types.BillingCycle{"analytics": types.BILLING_CYCLE_QUARTERLY}
		return c, s
	}

	c, s := build()
	wantCatalog, wantSelection := build()

	out := resolve(t, c, s)
	require.Len(t, out.OptionGroupBreakdowns, 1)
	require.Len(t, out.SetupGroupBreakdowns, 1)
	require.Len(t, out.AddOnBreakdowns, 1)

	assert.Equal(t, wantCatalog, c)
	assert.Equal(t, wantSelection, s)
}

func TestResolve_AmountsAreRoundedToCents(t *testing.T) {
	c := &catalog.ServiceCatalog{
		Tiers: []catalog.Tier{{ID: "t", Pricing: catalog.TierPricing{Amount: dec("33.333")}}},
		OptionGroups: []catalog.OptionGroup{
			{
				ID: "a",
				TierDependentPricing: []catalog.TierDependentPricing{
					{
						TierID:           "t",
						RecurringPricing: []catalog.RecurringPrice{monthly("13.337", nil)},
						SetupCost:        &catalog.SetupCost{Amount: dec("7.777"), Discount: pct(33)},
					},
				},
				BillingCycleDiscounts: []catalog.BillingCycleDiscount{
					{BillingCycle: types.BILLING_CYCLE_QUARTERLY, DiscountRule: *pct(17)},
				},
			},
			{ID: "b", CostType: types.COST_TYPE_SETUP, Price: lo.ToPtr(dec("0.005"))},
		},
	}

	out := resolve(t, c, sel("t", types.BILLING_CYCLE_QUARTERLY))

	cents := func(d decimal.Decimal) bool {
		return d.Mul(decimal.NewFromInt(100)).IsInteger()
	}
	amounts := []decimal.Decimal{out.TierMonthlyBase, out.Tier.Amount}
	for _, g := range append(out.OptionGroupBreakdowns, out.SetupGroupBreakdowns...) {
		amounts = append(amounts, g.MonthlyBase, g.CycleAmount, g.RecurringAmount, g.SetupCost)
		if g.Discount != nil {
			amounts = append(amounts, g.Discount.OriginalAmount, g.Discount.DiscountedAmount, g.Discount.Savings)
		}
		if g.SetupDiscount != nil {
			amounts = append(amounts, g.SetupDiscount.OriginalAmount, g.SetupDiscount.DiscountedAmount, g.SetupDiscount.Savings)
		}
	}
	amounts = append(amounts,
		out.Totals.RecurringTotal, out.Totals.SetupTotal,
		out.Totals.GrandRecurringTotal, out.Totals.GrandSetupTotal,
	)

	for i, a := range amounts {
		assert.True(t, cents(a), "amount %d (%s) has more than two decimals", i, a.String())
		assert.False(t, a.IsNegative(), "amount %d is negative", i)
	}
	// 13.337 x 3 = 40.011, less 17% = 33.20913
	a := out.OptionGroupBreakdowns[0]
	assertMoney(t, "33.21", a.RecurringAmount)
	require.NotNil(t, a.Discount)
	assert.Equal(t, "40.01", a.Discount.OriginalAmount.String())
	require.NotNil(t, a.SetupDiscount)
	assert.Equal(t, "7.78", a.SetupDiscount.OriginalAmount.String())
}

package discount

import (
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rule is a discount configured on a price, a setup cost or a billing cycle
type Rule struct {
	DiscountType  types.DiscountType `json:"discount_type"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
}

// Resolved is a discount applied to a concrete base amount. It keeps the
// pre-discount amount so callers can render strikethrough pricing.
type Resolved struct {
	DiscountType     types.DiscountType `json:"discount_type"`
	DiscountValue    decimal.Decimal    `json:"discount_value"`
	OriginalAmount   decimal.Decimal    `json:"original_amount"`
	DiscountedAmount decimal.Decimal    `json:"discounted_amount"`
	Savings          decimal.Decimal    `json:"savings"`
}

// IsApplicable reports whether the rule carries a positive discount. A nil
// rule or a zero discount is never resolved, it is reported as no discount.
func (r *Rule) IsApplicable() bool {
	return r != nil && r.DiscountValue.IsPositive()
}

func (r *Rule) Validate() error {
	if r == nil {
		return nil
	}
	if err := r.DiscountType.Validate(); err != nil {
		return err
	}
	if r.DiscountValue.IsNegative() {
		return ierr.NewError("discount value must not be negative").
			WithHint("Discount value must not be negative").
			WithReportableDetails(map[string]any{
				"discount_value": r.DiscountValue.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Resolve applies rule to baseAmount. Callers must check IsApplicable first.
//
// Percentage discounts take DiscountValue percent off the base, flat discounts
// subtract DiscountValue. The result never goes below zero. DiscountedAmount
// and Savings are rounded, OriginalAmount is returned as given.
func Resolve(baseAmount decimal.Decimal, rule Rule) Resolved {
	var discounted decimal.Decimal
	switch rule.DiscountType {
	case types.DiscountTypePercentage:
		discounted = baseAmount.Mul(decimal.NewFromInt(1).Sub(rule.DiscountValue.Div(hundred)))
	case types.DiscountTypeFlatAmount:
		discounted = baseAmount.Sub(rule.DiscountValue)
	default:
		discounted = baseAmount
	}
	discounted = decimal.Max(discounted, decimal.Zero)

	return Resolved{
		DiscountType:     rule.DiscountType,
		DiscountValue:    rule.DiscountValue,
		OriginalAmount:   baseAmount,
		DiscountedAmount: types.RoundMoney(discounted),
		Savings:          types.RoundMoney(baseAmount.Sub(discounted)),
	}
}

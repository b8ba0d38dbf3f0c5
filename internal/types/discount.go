package types

import (
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/samber/lo"
)

// DiscountType represents the type of discount (flat amount or percentage)
type DiscountType string

const (
	// DiscountTypeFlatAmount subtracts a fixed amount, floored at zero
	DiscountTypeFlatAmount DiscountType = "FLAT_AMOUNT"
	// DiscountTypePercentage takes a percentage off the base amount
	DiscountTypePercentage DiscountType = "PERCENTAGE"
)

func (d DiscountType) String() string {
	return string(d)
}

func (d DiscountType) Validate() error {
	allowed := []DiscountType{
		DiscountTypeFlatAmount,
		DiscountTypePercentage,
	}
	if !lo.Contains(allowed, d) {
		return ierr.NewError("invalid discount type").
			WithHint("Invalid discount type").
			WithReportableDetails(map[string]any{
				"discount_type":  d,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

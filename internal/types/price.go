package types

import (
	"github.com/shopspring/decimal"
)

// GroupKind is the class an option group resolves into for a given selection
type GroupKind string

const (
	// GROUP_KIND_REGULAR is a bundled group billed every cycle
	GROUP_KIND_REGULAR GroupKind = "REGULAR"
	// GROUP_KIND_SETUP_ONLY is a bundled group billed once
	GROUP_KIND_SETUP_ONLY GroupKind = "SETUP_ONLY"
	// GROUP_KIND_ADD_ON is an optional group enabled by the selection
	GROUP_KIND_ADD_ON GroupKind = "ADD_ON"
)

// PriceSource names where a group's monthly base price was found
type PriceSource string

const (
	PRICE_SOURCE_TIER_DEPENDENT PriceSource = "TIER_DEPENDENT"
	PRICE_SOURCE_STANDALONE     PriceSource = "STANDALONE"
	PRICE_SOURCE_NONE           PriceSource = "NONE"
)

// DiscountSource names which discount table supplied a resolved discount
type DiscountSource string

const (
	// DISCOUNT_SOURCE_GROUP_CYCLE is the group's billingCycleDiscounts table
	DISCOUNT_SOURCE_GROUP_CYCLE DiscountSource = "GROUP_CYCLE"
	// DISCOUNT_SOURCE_TIER_INDEPENDENT is the discount embedded in a tier-dependent recurring price
	DISCOUNT_SOURCE_TIER_INDEPENDENT DiscountSource = "TIER_INDEPENDENT"
	// DISCOUNT_SOURCE_CYCLE_SETUP is the tier-dependent setupCostDiscounts table
	DISCOUNT_SOURCE_CYCLE_SETUP DiscountSource = "CYCLE_SETUP"
	// DISCOUNT_SOURCE_EMBEDDED is the discount carried by the setup cost itself
	DISCOUNT_SOURCE_EMBEDDED DiscountSource = "EMBEDDED"
	DISCOUNT_SOURCE_NONE     DiscountSource = "NONE"
)

// SetupSource names where a group's setup cost was found
type SetupSource string

const (
	SETUP_SOURCE_TIER_DEPENDENT SetupSource = "TIER_DEPENDENT"
	SETUP_SOURCE_SERVICE_GROUP  SetupSource = "SERVICE_GROUP"
	SETUP_SOURCE_GROUP_PRICE    SetupSource = "GROUP_PRICE"
	SETUP_SOURCE_STANDALONE     SetupSource = "STANDALONE"
	SETUP_SOURCE_NONE           SetupSource = "NONE"
)

const (
	// DEFAULT_FLOATING_PRECISION is the number of decimal places money is exposed with
	DEFAULT_FLOATING_PRECISION = 2
)

// RoundMoney rounds an amount to DEFAULT_FLOATING_PRECISION places, half away
// from zero. Every amount exposed in a breakdown goes through here exactly once.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(DEFAULT_FLOATING_PRECISION)
}

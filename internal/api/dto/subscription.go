package dto

import (
	"github.com/flexprice/offerpricing/internal/domain/billing"
	"github.com/flexprice/offerpricing/internal/domain/subscription"
	"github.com/flexprice/offerpricing/internal/validator"
)

// BillingProjectionRequest carries the materialized state of a subscription instance
type BillingProjectionRequest struct {
	Subscription subscription.Subscription `json:"subscription"`
}

func (r *BillingProjectionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Subscription.Validate()
}

type BillingProjectionResponse struct {
	*billing.BillingBreakdown
}

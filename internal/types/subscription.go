package types

import (
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/samber/lo"
)

// SubscriptionStatus is the lifecycle status of a subscription instance.
// Transitions are owned by the document reducers, the projector only reports it.
type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "PENDING"
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusPaused    SubscriptionStatus = "PAUSED"
	SubscriptionStatusExpiring  SubscriptionStatus = "EXPIRING"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusPending,
		SubscriptionStatusActive,
		SubscriptionStatusPaused,
		SubscriptionStatusExpiring,
		SubscriptionStatusCancelled,
	}
	if s != "" && !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Invalid subscription status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

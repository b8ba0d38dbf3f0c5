package selection

import (
	"sort"

	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/samber/lo"
)

// Selection is what a customer picked in the offering preview: a tier, a
// global billing cycle, the enabled add-ons and per-group cycle overrides.
type Selection struct {
	TierID                     string                        `json:"tier_id" validate:"required"`
	BillingCycle               types.BillingCycle            `json:"billing_cycle" validate:"required"`
	OptionGroupIDs             []string                      `json:"option_group_ids,omitempty"`
	GroupBillingCycleOverrides map[string]types.BillingCycle `json:"group_billing_cycle_overrides,omitempty"`
	AddOnBillingCycleOverrides map[string]types.BillingCycle `json:"addon_billing_cycle_overrides,omitempty"`
}

func (s Selection) Validate() error {
	if s.TierID == "" {
		return ierr.NewError("tier id is required").
			WithHint("Please select a tier").
			Mark(ierr.ErrValidation)
	}
	if err := s.BillingCycle.Validate(); err != nil {
		return err
	}
	for _, overrides := range []map[string]types.BillingCycle{s.GroupBillingCycleOverrides, s.AddOnBillingCycleOverrides} {
		for _, cycle := range overrides {
			if err := cycle.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// HasAddOn reports whether the add-on group is enabled
func (s Selection) HasAddOn(groupID string) bool {
	return lo.Contains(s.OptionGroupIDs, groupID)
}

// GroupCycle returns the effective billing cycle of a bundled group
func (s Selection) GroupCycle(groupID string) types.BillingCycle {
	if cycle, ok := s.GroupBillingCycleOverrides[groupID]; ok && cycle != "" {
		return cycle
	}
	return s.BillingCycle
}

// AddOnCycle returns the effective billing cycle of an add-on group
func (s Selection) AddOnCycle(groupID string) types.BillingCycle {
	if cycle, ok := s.AddOnBillingCycleOverrides[groupID]; ok && cycle != "" {
		return cycle
	}
	return s.BillingCycle
}

// Clone returns a deep copy so reducers never share maps or slices with their input
func (s Selection) Clone() Selection {
	out := s
	if s.OptionGroupIDs != nil {
		out.OptionGroupIDs = append([]string(nil), s.OptionGroupIDs...)
	}
	out.GroupBillingCycleOverrides = cloneOverrides(s.GroupBillingCycleOverrides)
	out.AddOnBillingCycleOverrides = cloneOverrides(s.AddOnBillingCycleOverrides)
	return out
}

// SortedAddOnIDs returns the enabled add-on ids in a stable order
func (s Selection) SortedAddOnIDs() []string {
	ids := lo.Uniq(s.OptionGroupIDs)
	sort.Strings(ids)
	return ids
}

func cloneOverrides(in map[string]types.BillingCycle) map[string]types.BillingCycle {
	if in == nil {
		return nil
	}
	out := make(map[string]types.BillingCycle, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

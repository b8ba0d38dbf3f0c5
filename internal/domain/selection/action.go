package selection

import (
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/samber/lo"
)

// ActionType is the discriminator of a selection action on the wire
type ActionType string

const (
	ActionSelectTier                ActionType = "SELECT_TIER"
	ActionSetBillingCycle           ActionType = "SET_BILLING_CYCLE"
	ActionEnableAddOn               ActionType = "ENABLE_ADD_ON"
	ActionDisableAddOn              ActionType = "DISABLE_ADD_ON"
	ActionOverrideGroupBillingCycle ActionType = "OVERRIDE_GROUP_BILLING_CYCLE"
	ActionClearGroupBillingCycle    ActionType = "CLEAR_GROUP_BILLING_CYCLE"
	ActionOverrideAddOnBillingCycle ActionType = "OVERRIDE_ADD_ON_BILLING_CYCLE"
	ActionClearAddOnBillingCycle    ActionType = "CLEAR_ADD_ON_BILLING_CYCLE"
)

// Action is one edit of a Selection. The set of actions is closed: only the
// types declared in this file implement it.
type Action interface {
	Type() ActionType
	isAction()
}

type SelectTier struct{ TierID string }

type SetBillingCycle struct{ BillingCycle types.BillingCycle }

type EnableAddOn struct{ GroupID string }

type DisableAddOn struct{ GroupID string }

type OverrideGroupBillingCycle struct {
	GroupID      string
	BillingCycle types.BillingCycle
}

type ClearGroupBillingCycle struct{ GroupID string }

type OverrideAddOnBillingCycle struct {
	GroupID      string
	BillingCycle types.BillingCycle
}

type ClearAddOnBillingCycle struct{ GroupID string }

func (SelectTier) Type() ActionType                { return ActionSelectTier }
func (SetBillingCycle) Type() ActionType           { return ActionSetBillingCycle }
func (EnableAddOn) Type() ActionType               { return ActionEnableAddOn }
func (DisableAddOn) Type() ActionType              { return ActionDisableAddOn }
func (OverrideGroupBillingCycle) Type() ActionType { return ActionOverrideGroupBillingCycle }
func (ClearGroupBillingCycle) Type() ActionType    { return ActionClearGroupBillingCycle }
func (OverrideAddOnBillingCycle) Type() ActionType { return ActionOverrideAddOnBillingCycle }
func (ClearAddOnBillingCycle) Type() ActionType    { return ActionClearAddOnBillingCycle }

func (SelectTier) isAction()                {}
func (SetBillingCycle) isAction()           {}
func (EnableAddOn) isAction()               {}
func (DisableAddOn) isAction()              {}
func (OverrideGroupBillingCycle) isAction() {}
func (ClearGroupBillingCycle) isAction()    {}
func (OverrideAddOnBillingCycle) isAction() {}
func (ClearAddOnBillingCycle) isAction()    {}

// Reduce applies action to sel and returns the new selection. sel is not modified.
func Reduce(sel Selection, action Action) (Selection, error) {
	next := sel.Clone()

	switch a := action.(type) {
	case SelectTier:
		if a.TierID == "" {
			return sel, requiredField(a.Type(), "tier_id")
		}
		next.TierID = a.TierID

	case SetBillingCycle:
		if err := a.BillingCycle.Validate(); err != nil {
			return sel, err
		}
		next.BillingCycle = a.BillingCycle

	case EnableAddOn:
		if a.GroupID == "" {
			return sel, requiredField(a.Type(), "group_id")
		}
		if !lo.Contains(next.OptionGroupIDs, a.GroupID) {
			next.OptionGroupIDs = append(next.OptionGroupIDs, a.GroupID)
		}

	case DisableAddOn:
		next.OptionGroupIDs = lo.Without(next.OptionGroupIDs, a.GroupID)
		// an override for a disabled add-on is meaningless
		delete(next.AddOnBillingCycleOverrides, a.GroupID)

	case OverrideGroupBillingCycle:
		if a.GroupID == "" {
			return sel, requiredField(a.Type(), "group_id")
		}
		if err := a.BillingCycle.Validate(); err != nil {
			return sel, err
		}
		if next.GroupBillingCycleOverrides == nil {
			next.GroupBillingCycleOverrides = make(map[string]types.BillingCycle)
		}
		next.GroupBillingCycleOverrides[a.GroupID] = a.BillingCycle

	case ClearGroupBillingCycle:
		delete(next.GroupBillingCycleOverrides, a.GroupID)

	case OverrideAddOnBillingCycle:
		if a.GroupID == "" {
			return sel, requiredField(a.Type(), "group_id")
		}
		if err := a.BillingCycle.Validate(); err != nil {
			return sel, err
		}
		if next.AddOnBillingCycleOverrides == nil {
			next.AddOnBillingCycleOverrides = make(map[string]types.BillingCycle)
		}
		next.AddOnBillingCycleOverrides[a.GroupID] = a.BillingCycle

	case ClearAddOnBillingCycle:
		delete(next.AddOnBillingCycleOverrides, a.GroupID)

	default:
		return sel, ierr.NewError("unsupported selection action").
			WithHint("Unsupported selection action").
			Mark(ierr.ErrInvalidOperation)
	}

	return next, nil
}

func requiredField(action ActionType, field string) error {
	return ierr.NewErrorf("%s is required", field).
		WithHintf("%s is required for %s", field, action).
		WithReportableDetails(map[string]any{
			"action": action,
			"field":  field,
		}).
		Mark(ierr.ErrValidation)
}

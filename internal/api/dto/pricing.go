package dto

import (
	"github.com/flexprice/offerpricing/internal/domain/catalog"
	"github.com/flexprice/offerpricing/internal/domain/pricing"
	"github.com/flexprice/offerpricing/internal/domain/selection"
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/flexprice/offerpricing/internal/validator"
)

// PricePreviewRequest asks what a selection costs against a catalog
type PricePreviewRequest struct {
	Catalog   catalog.ServiceCatalog `json:"catalog"`
	Selection selection.Selection    `json:"selection"`
}

func (r *PricePreviewRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type PricePreviewResponse struct {
	*pricing.PriceBreakdown
}

// PricePreviewBatchRequest prices several selections against one catalog
type PricePreviewBatchRequest struct {
	Catalog    catalog.ServiceCatalog `json:"catalog"`
	Selections []selection.Selection  `json:"selections" validate:"required,min=1,max=20,dive"`
}

func (r *PricePreviewBatchRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type PricePreviewBatchResponse struct {
	Items []*pricing.PriceBreakdown `json:"items"`
}

// SelectionActionRequest applies one edit to a selection
type SelectionActionRequest struct {
	Selection selection.Selection `json:"selection"`
	Action    SelectionAction     `json:"action"`
}

// SelectionAction is the wire form of a selection.Action, discriminated by Type
type SelectionAction struct {
	Type         selection.ActionType `json:"type" validate:"required"`
	TierID       string               `json:"tier_id,omitempty"`
	GroupID      string               `json:"group_id,omitempty"`
	BillingCycle types.BillingCycle   `json:"billing_cycle,omitempty"`
}

func (r *SelectionActionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToAction converts the wire action into its typed variant
func (a SelectionAction) ToAction() (selection.Action, error) {
	switch a.Type {
	case selection.ActionSelectTier:
		return selection.SelectTier{TierID: a.TierID}, nil
	case selection.ActionSetBillingCycle:
		return selection.SetBillingCycle{BillingCycle: a.BillingCycle}, nil
	case selection.ActionEnableAddOn:
		return selection.EnableAddOn{GroupID: a.GroupID}, nil
	case selection.ActionDisableAddOn:
		return selection.DisableAddOn{GroupID: a.GroupID}, nil
	case selection.ActionOverrideGroupBillingCycle:
		return selection.OverrideGroupBillingCycle{GroupID: a.GroupID, BillingCycle: a.BillingCycle}, nil
	case selection.ActionClearGroupBillingCycle:
		return selection.ClearGroupBillingCycle{GroupID: a.GroupID}, nil
	case selection.ActionOverrideAddOnBillingCycle:
		return selection.OverrideAddOnBillingCycle{GroupID: a.GroupID, BillingCycle: a.BillingCycle}, nil
	case selection.ActionClearAddOnBillingCycle:
		return selection.ClearAddOnBillingCycle{GroupID: a.GroupID}, nil
	default:
		return nil, ierr.NewErrorf("unknown action type %s", a.Type).
			WithHintf("Unknown selection action %s", a.Type).
			WithReportableDetails(map[string]any{
				"type": a.Type,
			}).
			Mark(ierr.ErrValidation)
	}
}

type SelectionActionResponse struct {
	Selection selection.Selection `json:"selection"`
}

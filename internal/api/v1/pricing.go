package v1

import (
	"net/http"

	"github.com/flexprice/offerpricing/internal/api/dto"
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/logger"
	"github.com/flexprice/offerpricing/internal/service"
	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	service service.PricingService
	log     *logger.Logger
}

func NewPricingHandler(service service.PricingService, log *logger.Logger) *PricingHandler {
	return &PricingHandler{service: service, log: log}
}

// PreviewPrice resolves what a tier, billing cycle and add-on selection costs against a catalog
func (h *PricingHandler) PreviewPrice(c *gin.Context) {
	var req dto.PricePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	breakdown, err := h.service.ResolveCatalogPrice(c.Request.Context(), &req.Catalog, req.Selection)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PricePreviewResponse{PriceBreakdown: breakdown})
}

// PreviewPrices resolves several selections against one catalog, in request order
func (h *PricingHandler) PreviewPrices(c *gin.Context) {
	var req dto.PricePreviewBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	items, err := h.service.ResolveCatalogPrices(c.Request.Context(), &req.Catalog, req.Selections)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PricePreviewBatchResponse{Items: items})
}

// ApplySelectionAction returns the selection after one edit
func (h *PricingHandler) ApplySelectionAction(c *gin.Context) {
	var req dto.SelectionActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	action, err := req.Action.ToAction()
	if err != nil {
		c.Error(err)
		return
	}

	next, err := h.service.ApplySelectionAction(c.Request.Context(), req.Selection, action)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SelectionActionResponse{Selection: next})
}

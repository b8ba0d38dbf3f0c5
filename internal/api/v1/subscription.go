package v1

import (
	"net/http"

	"github.com/flexprice/offerpricing/internal/api/dto"
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/logger"
	"github.com/flexprice/offerpricing/internal/service"
	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	service service.BillingProjectionService
	log     *logger.Logger
}

func NewSubscriptionHandler(service service.BillingProjectionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{service: service, log: log}
}

// ProjectBilling projects the next bill of a subscription
func (h *SubscriptionHandler) ProjectBilling(c *gin.Context) {
	var req dto.BillingProjectionRequest
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

	breakdown, err := h.service.ProjectSubscriptionBilling(c.Request.Context(), &req.Subscription)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.BillingProjectionResponse{BillingBreakdown: breakdown})
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/flexprice/offerpricing/internal/api/v1"
	"github.com/flexprice/offerpricing/internal/cache"
	"github.com/flexprice/offerpricing/internal/config"
	"github.com/flexprice/offerpricing/internal/domain/billing"
	"github.com/flexprice/offerpricing/internal/domain/pricing"
	"github.com/flexprice/offerpricing/internal/domain/selection"
	ierr "github.com/flexprice/offerpricing/internal/errors"
	"github.com/flexprice/offerpricing/internal/logger"
	"github.com/flexprice/offerpricing/internal/metrics"
	"github.com/flexprice/offerpricing/internal/sentry"
	"github.com/flexprice/offerpricing/internal/service"
	"github.com/flexprice/offerpricing/internal/types"
	"github.com/flexprice/offerpricing/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const previewCatalog = `{
	"id": "cat_1",
	"tiers": [{"id": "pro", "name": "Pro", "pricing": {"amount": "100", "currency": "USD"}}],
	"option_groups": [{
		"id": "support",
		"name": "Support",
		"cost_type": "RECURRING",
		"tier_dependent_pricing": [{
			"tier_id": "pro",
			"recurring_pricing": [{"billing_cycle": "MONTHLY", "amount": "20"}]
		}],
		"billing_cycle_discounts": [{
			"billing_cycle": "MONTHLY",
			"discount_rule": {"discount_type": "PERCENTAGE", "discount_value": "15"}
		}]
	}]
}`

type RouterSuite struct {
	suite.Suite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	validator.NewValidator()
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	cfg.Deployment.Mode = types.ModeAPI
	log := logger.NewNoopLogger()
	sentryService := sentry.NewSentryService(cfg, log)
	collector := metrics.NewCollector()
	params := service.NewServiceParams(
		log,
		cfg,
		cache.NewInMemoryCache(cfg, log),
		sentryService,
		collector,
		pricing.NewResolver(),
		billing.NewProjector(),
	)

	s.router = NewRouter(Handlers{
		Health:       v1.NewHealthHandler(log),
		Pricing:      v1.NewPricingHandler(service.NewPricingService(params), log),
		Subscription: v1.NewSubscriptionHandler(service.NewBillingProjectionService(params), log),
	}, cfg, sentryService, collector)
}

func (s *RouterSuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ierr.ErrorResponse {
	t.Helper()
	var resp ierr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
	s.True(strings.HasPrefix(w.Header().Get(types.HeaderRequestID), types.UUID_PREFIX_REQUEST+"_"))
}

func (s *RouterSuite) TestRequestIDIsPropagated() {
	w := s.do(http.MethodGet, "/health", "", types.HeaderRequestID, "req_caller")
	s.Equal("req_caller", w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestMetrics() {
	s.do(http.MethodGet, "/health", "")

	w := s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `offerpricing_http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func (s *RouterSuite) TestCORSPreflight() {
	w := s.do(http.MethodOptions, "/v1/pricing/preview", "")
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterSuite) TestPreviewPrice() {
	body := `{"catalog": ` + previewCatalog + `, "selection": {"tier_id": "pro", "billing_cycle": "MONTHLY"}}`

	w := s.do(http.MethodPost, "/v1/pricing/preview", body)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var out pricing.PriceBreakdown
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.Equal("pro", out.Tier.ID)
	s.Equal("100.00", out.TierMonthlyBase.StringFixed(2))
	s.Require().Len(out.OptionGroupBreakdowns, 1)
	s.Equal("17.00", out.OptionGroupBreakdowns[0].RecurringAmount.StringFixed(2))
	s.Equal("17.00", out.Totals.RecurringTotal.StringFixed(2))
}

func (s *RouterSuite) TestPreviewPrice_UnknownTier() {
	body := `{"catalog": ` + previewCatalog + `, "selection": {"tier_id": "nope", "billing_cycle": "MONTHLY"}}`

	w := s.do(http.MethodPost, "/v1/pricing/preview", body)
	s.Equal(http.StatusNotFound, w.Code)

	resp := decodeError(s.T(), w)
	s.False(resp.Success)
	s.Equal("Tier nope not found", resp.Error.Display)
	s.Equal("nope", resp.Error.Details["tier_id"])
}

func (s *RouterSuite) TestPreviewPrice_EmptyCatalog() {
	tests := []struct {
		name string
		path string
		body string
	}{
		{
			name: "single",
			path: "/v1/pricing/preview",
			body: `{"catalog": {}, "selection": {"tier_id": "pro", "billing_cycle": "MONTHLY"}}`,
		},
		{
			name: "batch",
			path: "/v1/pricing/preview/batch",
			body: `{"catalog": {}, "selections": [{"tier_id": "pro", "billing_cycle": "MONTHLY"}]}`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, tt.path, tt.body)
			s.Equal(http.StatusNotFound, w.Code, w.Body.String())
			s.Equal("Tier pro not found", decodeError(s.T(), w).Error.Display)
		})
	}
}

func (s *RouterSuite) TestPreviewPrice_BadRequests() {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"catalog":`},
		{name: "missing tier", body: `{"catalog": ` + previewCatalog + `, "selection": {"billing_cycle": "MONTHLY"}}`},
		{name: "unknown cycle", body: `{"catalog": ` + previewCatalog + `, "selection": {"tier_id": "pro", "billing_cycle": "FORTNIGHTLY"}}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/v1/pricing/preview", tt.body)
			s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
			s.NotEmpty(decodeError(s.T(), w).Error.Display)
		})
	}
}

func (s *RouterSuite) TestPreviewPrices() {
	body := `{"catalog": ` + previewCatalog + `, "selections": [
		{"tier_id": "pro", "billing_cycle": "MONTHLY"},
		{"tier_id": "pro", "billing_cycle": "ANNUAL"}
	]}`

	w := s.do(http.MethodPost, "/v1/pricing/preview/batch", body)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Items []pricing.PriceBreakdown `json:"items"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.Require().Len(out.Items, 2)
	s.Equal("17.00", out.Items[0].Totals.RecurringTotal.StringFixed(2))
	// the monthly discount does not carry over to the annual cycle
	s.Equal("240.00", out.Items[1].Totals.RecurringTotal.StringFixed(2))
}

func (s *RouterSuite) TestPreviewPrices_UnknownTier() {
	body := `{"catalog": ` + previewCatalog + `, "selections": [
		{"tier_id": "pro", "billing_cycle": "MONTHLY"},
		{"tier_id": "nope", "billing_cycle": "MONTHLY"}
	]}`

	w := s.do(http.MethodPost, "/v1/pricing/preview/batch", body)
	s.Equal(http.StatusNotFound, w.Code)

	resp := decodeError(s.T(), w)
	s.Equal("Tier nope not found", resp.Error.Display)
	s.Equal("nope", resp.Error.Details["tier_id"])
}

func (s *RouterSuite) TestApplySelectionAction() {
	body := `{
		"selection": {"tier_id": "pro", "billing_cycle": "MONTHLY"},
		"action": {"type": "OVERRIDE_GROUP_BILLING_CYCLE", "group_id": "support", "billing_cycle": "ANNUAL"}
	}`

	w := s.do(http.MethodPost, "/v1/pricing/selection", body)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Selection selection.Selection `json:"selection"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.Equal(types.BILLING_CYCLE_ANNUAL, out.Selection.GroupCycle("support"))
	s.Equal(types.BILLING_CYCLE_MONTHLY, out.Selection.BillingCycle)
}

func (s *RouterSuite) TestApplySelectionAction_UnknownType() {
	body := `{"selection": {"tier_id": "pro", "billing_cycle": "MONTHLY"}, "action": {"type": "TELEPORT"}}`

	w := s.do(http.MethodPost, "/v1/pricing/selection", body)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("TELEPORT", decodeError(s.T(), w).Error.Details["type"])
}

func (s *RouterSuite) TestProjectBilling() {
	body := `{"subscription": {
		"id": "sub_1",
		"status": "ACTIVE",
		"projected_bill_amount": "999",
		"services": [{
			"id": "api",
			"recurring_cost": {"amount": "49", "currency": "USD"},
			"setup_cost": {"amount": "100", "currency": "USD", "payment_date": "2026-01-10T00:00:00Z"},
			"metrics": [{
				"id": "calls",
				"current_usage": "80",
				"free_limit": "100",
				"usage_reset_period": "MONTHLY",
				"unit_cost": {"amount": "0.5", "currency": "USD"}
			}]
		}]
	}}`

	w := s.do(http.MethodPost, "/v1/subscriptions/billing/projection", body)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var out billing.BillingBreakdown
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.Equal("49.00", out.FixedSubtotal.StringFixed(2))
	s.Equal("0.00", out.DynamicSubtotal.StringFixed(2))
	s.Equal("999.00", out.ProjectedTotal.StringFixed(2))
	s.True(out.IsOverridden)
	s.Require().Len(out.SetupLines, 1)
	s.True(out.SetupLines[0].Paid)
	s.Equal("100.00", out.PaidSetupTotal.StringFixed(2))
}

func (s *RouterSuite) TestProjectBilling_InvalidStatus() {
	w := s.do(http.MethodPost, "/v1/subscriptions/billing/projection", `{"subscription": {"id": "sub_1", "status": "ZOMBIE"}}`)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

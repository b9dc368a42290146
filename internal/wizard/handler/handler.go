// Package handler exposes the wizard steps over HTTP. Submissions follow
// redirect-after-post; a step whose prerequisite data is missing redirects
// silently to the earliest unmet step instead of erroring.
package handler

import (
	"errors"
	"net/http"

	"garage_portal_backend/internal/catalog"
	"garage_portal_backend/internal/session"
	"garage_portal_backend/internal/wizard/service"
	"garage_portal_backend/internal/wizard/transport"
	"garage_portal_backend/platform/apperr"
	"garage_portal_backend/platform/httpkit"
	"garage_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the estimate wizard.
type Handler struct {
	svc     *service.Service
	catalog *catalog.Catalog
	val     *validator.Validator
}

// New creates a new wizard handler and registers the form's custom
// validation rules on the shared validator.
func New(svc *service.Service, cat *catalog.Catalog, val *validator.Validator) *Handler {
	registerCustomRules(val)
	return &Handler{svc: svc, catalog: cat, val: val}
}

// ShowCalculator renders the first step.
// GET /
func (h *Handler) ShowCalculator(c *gin.Context) {
	view, err := h.svc.CalculatorView(c.Request.Context(), session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// SubmitCalculator handles the plate and task submission.
// POST /
func (h *Handler) SubmitCalculator(c *gin.Context) {
	var req transport.CalculatorRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rerenderCalculator(c, msgInvalidRequest)
		return
	}

	selections := h.decodeSelections(c)

	err := h.svc.SubmitCalculator(c.Request.Context(), session.ID(c), req.LicensePlate, selections)
	if err != nil {
		// Lookup and brand failures re-display the form with the user-facing
		// message; only unexpected errors surface as error responses.
		if msg, ok := userFacingLookupError(err); ok {
			h.rerenderCalculator(c, msg)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	httpkit.SeeOther(c, "/summary")
}

// ShowSummary renders the estimate overview.
// GET /summary
func (h *Handler) ShowSummary(c *gin.Context) {
	view, err := h.svc.SummaryView(c.Request.Context(), session.ID(c))
	if h.redirectOnMissingStep(c, err) {
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// SubmitSummary stores the payment choice, or steps backward where allowed.
// POST /summary
func (h *Handler) SubmitSummary(c *gin.Context) {
	var req transport.SummaryRequest
	_ = c.ShouldBind(&req)

	if req.Back && h.svc.Profile().AllowBack {
		httpkit.SeeOther(c, "/")
		return
	}

	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.ChoosePayment(c.Request.Context(), session.ID(c), req.PaymentOption)
	if h.redirectOnMissingStep(c, err) {
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.SeeOther(c, "/customer-info")
}

// SetHourlyRate applies a session rate override on adjustable profiles.
// POST /set-hourly-rate
func (h *Handler) SetHourlyRate(c *gin.Context) {
	var req transport.SetHourlyRateRequest
	_ = c.ShouldBind(&req)

	err := h.svc.SetHourlyRate(c.Request.Context(), session.ID(c), req.HourlyRate)
	if h.redirectOnMissingStep(c, err) {
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.SeeOther(c, "/summary")
}

// ShowCustomerInfo renders the customer-details step.
// GET /customer-info
func (h *Handler) ShowCustomerInfo(c *gin.Context) {
	view, err := h.svc.CustomerInfoView(c.Request.Context(), session.ID(c))
	if h.redirectOnMissingStep(c, err) {
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// SubmitCustomerInfo stores the customer data, or steps backward where allowed.
// POST /customer-info
func (h *Handler) SubmitCustomerInfo(c *gin.Context) {
	var req transport.CustomerInfoRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if req.Back && h.svc.Profile().AllowBack {
		httpkit.SeeOther(c, "/summary")
		return
	}

	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.SubmitCustomer(c.Request.Context(), session.ID(c), req)
	if h.redirectOnMissingStep(c, err) {
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.SeeOther(c, "/confirmation")
}

// ShowConfirmation renders the final recap.
// GET /confirmation
func (h *Handler) ShowConfirmation(c *gin.Context) {
	view, err := h.svc.ConfirmationView(c.Request.Context(), session.ID(c))
	if h.redirectOnMissingStep(c, err) {
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// decodeSelections reads one boolean checkbox per catalog task. Checked
// boxes arrive as "on"; anything else counts as deselected. The result
// always covers every catalog task, replacing any earlier selection.
func (h *Handler) decodeSelections(c *gin.Context) map[string]bool {
	selections := make(map[string]bool, h.catalog.Len())
	for _, id := range h.catalog.IDs() {
		selections[id] = c.PostForm(id) == "on"
	}
	return selections
}

// redirectOnMissingStep translates guard sentinels into the silent redirect
// to the earliest unmet step. Returns true when a redirect was issued.
func (h *Handler) redirectOnMissingStep(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrVehicleRequired):
		httpkit.SeeOther(c, "/")
		return true
	case errors.Is(err, service.ErrCustomerRequired):
		httpkit.SeeOther(c, "/customer-info")
		return true
	}
	return false
}

func (h *Handler) rerenderCalculator(c *gin.Context, message string) {
	view, err := h.svc.CalculatorView(c.Request.Context(), session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	view.Error = message
	view.Selections = map[string]bool{}
	httpkit.OK(c, view)
}

// userFacingLookupError extracts the message of lookup failures that should
// re-render the form rather than produce an error response.
func userFacingLookupError(err error) (string, bool) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return "", false
	}
	switch appErr.Kind {
	case apperr.KindValidation, apperr.KindNotFound, apperr.KindUnavailable:
		return appErr.Message, true
	}
	return "", false
}

// Package wizard wires the estimate wizard: step transitions, session-backed
// state and the HTTP routes the multi-step form runs on.
package wizard

import (
	"garage_portal_backend/internal/catalog"
	"garage_portal_backend/internal/estimate"
	apphttp "garage_portal_backend/internal/http"
	"garage_portal_backend/internal/session"
	"garage_portal_backend/internal/vehicle"
	"garage_portal_backend/internal/wizard/handler"
	"garage_portal_backend/internal/wizard/service"
	"garage_portal_backend/platform/events"
	"garage_portal_backend/platform/logger"
	"garage_portal_backend/platform/validator"
)

// Module bundles the wizard's service and HTTP handler.
type Module struct {
	service *Service
	handler *handler.Handler
	profile estimate.Profile
}

// Service is re-exported so the composition root can reference it without
// importing the nested package.
type Service = service.Service

// NewModule creates the wizard module with all its dependencies wired.
func NewModule(
	store session.Store,
	lookup vehicle.Lookup,
	calc *estimate.Calculator,
	cat *catalog.Catalog,
	bus events.Bus,
	log *logger.Logger,
) *Module {
	svc := service.New(store, lookup, calc, cat, bus, log)
	return &Module{
		service: svc,
		handler: handler.New(svc, cat, validator.New()),
		profile: svc.Profile(),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "wizard"
}

// Service returns the wizard service for use by other modules.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the wizard steps at the root. Plate submissions are
// rate limited because each one calls out to the public vehicle registry.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	e := ctx.Engine

	e.GET("/", m.handler.ShowCalculator)
	e.POST("/", ctx.LookupLimiter.RateLimit(), m.handler.SubmitCalculator)

	e.GET("/summary", m.handler.ShowSummary)
	e.POST("/summary", m.handler.SubmitSummary)

	// Rate overrides only exist on profiles that price by an adjustable
	// hourly rate; others never expose the route.
	if m.profile.RateAdjustable {
		e.POST("/set-hourly-rate", m.handler.SetHourlyRate)
	}

	e.GET("/customer-info", m.handler.ShowCustomerInfo)
	e.POST("/customer-info", m.handler.SubmitCustomerInfo)

	e.GET("/confirmation", m.handler.ShowConfirmation)
}

// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"garage_portal_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Wizard Domain Events
// =============================================================================

// EstimateConfirmed is published when a customer completes the final wizard
// step. It carries everything the confirmation email needs so the handler
// does not have to read the session back.
type EstimateConfirmed struct {
	BaseEvent
	SessionID      string   `json:"sessionId"`
	CustomerName   string   `json:"customerName"`
	CustomerEmail  string   `json:"customerEmail,omitempty"`
	LicensePlate   string   `json:"licensePlate"`
	VehicleModel   string   `json:"vehicleModel"`
	PaymentOption  string   `json:"paymentOption"`
	TaskLabels     []string `json:"taskLabels"`
	AnnualInclVAT  float64  `json:"annualInclVat"`
	MonthlyInclVAT float64  `json:"monthlyInclVat"`
}

func (e EstimateConfirmed) EventName() string { return "wizard.estimate.confirmed" }

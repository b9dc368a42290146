// Package transport defines request and view-model shapes for the wizard.
// Requests arrive form-encoded from the step pages; responses are JSON view
// models for whatever renders the steps.
package transport

import (
	"garage_portal_backend/internal/catalog"
	"garage_portal_backend/internal/estimate"
	"garage_portal_backend/internal/session"
	vehicletransport "garage_portal_backend/internal/vehicle/transport"
)

// =============================================================================
// Requests
// =============================================================================

// CalculatorRequest is the plate submission on the first step. The per-task
// checkboxes are dynamic form fields decoded separately against the catalog.
type CalculatorRequest struct {
	LicensePlate string `form:"license_plate" validate:"required"`
}

// SummaryRequest is the payment choice on the summary step.
type SummaryRequest struct {
	PaymentOption string `form:"payment_option" validate:"required,oneof=monthly yearly"`
	Back          bool   `form:"back"`
}

// CustomerInfoRequest carries the customer's contact and payment details.
type CustomerInfoRequest struct {
	Name      string `form:"name" validate:"required"`
	Address   string `form:"address" validate:"required"`
	Email     string `form:"email" validate:"omitempty,email"`
	Phone     string `form:"phone" validate:"omitempty"`
	IBAN      string `form:"iban" validate:"required,iban"`
	Signature string `form:"signature" validate:"required"`
	Back      bool   `form:"back"`
}

// SetHourlyRateRequest adjusts the session hourly rate on rate-adjustable
// profiles. The field stays a string: non-numeric input is dropped silently,
// not rejected.
type SetHourlyRateRequest struct {
	HourlyRate string `form:"hourly_rate"`
}

// =============================================================================
// View models
// =============================================================================

// CalculatorView renders the first step: the task list and, after a failed
// lookup, the user-facing error above the re-displayed form.
type CalculatorView struct {
	Profile    string          `json:"profile"`
	Tasks      []catalog.Task  `json:"tasks"`
	Selections map[string]bool `json:"selections"`
	Error      string          `json:"error,omitempty"`
}

// SummaryView renders the estimate overview.
type SummaryView struct {
	Vehicle       *vehicletransport.VehicleRecord `json:"vehicle"`
	Costs         *estimate.Breakdown             `json:"costs"`
	PaymentOption string                          `json:"paymentOption,omitempty"`
	HourlyRate    float64                         `json:"hourlyRate,omitempty"`
	AllowBack     bool                            `json:"allowBack"`
}

// CustomerInfoView renders the customer-details step with the estimate recap.
type CustomerInfoView struct {
	Vehicle       *vehicletransport.VehicleRecord `json:"vehicle"`
	Costs         *estimate.Breakdown             `json:"costs"`
	PaymentOption string                          `json:"paymentOption,omitempty"`
	AllowBack     bool                            `json:"allowBack"`
}

// ConfirmationView is the final recap.
type ConfirmationView struct {
	Customer      *session.CustomerData           `json:"customer"`
	Vehicle       *vehicletransport.VehicleRecord `json:"vehicle"`
	SelectedTasks []catalog.Task                  `json:"selectedTasks"`
	PaymentOption string                          `json:"paymentOption"`
	Costs         *estimate.Breakdown             `json:"costs"`
}

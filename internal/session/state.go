// Package session provides the server-side wizard session: a typed state
// blob stored per browser session, keyed by a signed cookie.
package session

import (
	"garage_portal_backend/internal/estimate"
	"garage_portal_backend/internal/vehicle/transport"
)

// Payment options a customer can choose on the summary step.
const (
	PaymentMonthly = "monthly"
	PaymentYearly  = "yearly"
)

// CustomerData holds the contact and payment details collected on the
// customer-info step. Immutable once stored.
type CustomerData struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IBAN      string `json:"iban"`
	Signature string `json:"signature"`
}

// State is everything the wizard carries across steps. Pointer fields are nil
// until the producing step has run, which is what the step guards check; a
// guard never inspects string keys, only typed presence.
type State struct {
	Vehicle       *transport.VehicleRecord `json:"vehicle,omitempty"`
	Selections    map[string]bool          `json:"selections,omitempty"`
	Costs         *estimate.Breakdown      `json:"costs,omitempty"`
	HourlyRate    float64                  `json:"hourlyRate,omitempty"`
	PaymentOption string                   `json:"paymentOption,omitempty"`
	Customer      *CustomerData            `json:"customer,omitempty"`
}

// HasVehicle reports whether the calculator step has completed.
func (s *State) HasVehicle() bool {
	return s != nil && s.Vehicle != nil
}

// HasCustomer reports whether the customer-info step has completed.
func (s *State) HasCustomer() bool {
	return s != nil && s.Customer != nil
}

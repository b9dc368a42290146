package notification

import (
	"context"

	"garage_portal_backend/internal/events"
	"garage_portal_backend/internal/session"
	"garage_portal_backend/platform/logger"
)

// Module sends the confirmation email for completed estimates.
type Module struct {
	sender Sender
	log    *logger.Logger
}

// NewModule creates the notification module.
func NewModule(sender Sender, log *logger.Logger) *Module {
	return &Module{sender: sender, log: log}
}

// Subscribe registers the module's handlers on the event bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.EstimateConfirmed{}.EventName(), events.HandlerFunc(m.handleEstimateConfirmed))
}

// handleEstimateConfirmed mails the estimate recap to the customer. Email is
// best effort: the wizard already confirmed the estimate, so delivery
// failures are logged and never propagated back.
func (m *Module) handleEstimateConfirmed(ctx context.Context, event events.Event) error {
	confirmed, ok := event.(events.EstimateConfirmed)
	if !ok {
		return nil
	}

	if confirmed.CustomerEmail == "" {
		m.log.Debug("confirmation email skipped, no address",
			"session_id", confirmed.SessionID)
		return nil
	}

	content, err := renderEmailTemplate("confirmation.html", confirmationEmailData{
		CustomerName:     confirmed.CustomerName,
		LicensePlate:     confirmed.LicensePlate,
		VehicleModel:     confirmed.VehicleModel,
		TaskLabels:       confirmed.TaskLabels,
		PaymentOption:    confirmed.PaymentOption,
		AnnualFormatted:  formatCurrencyEUR(confirmed.AnnualInclVAT),
		MonthlyFormatted: formatCurrencyEUR(confirmed.MonthlyInclVAT),
		PaysMonthly:      confirmed.PaymentOption == session.PaymentMonthly,
	})
	if err != nil {
		m.log.Error("confirmation email render failed",
			"session_id", confirmed.SessionID,
			"error", err.Error())
		return nil
	}

	if err := m.sender.Send(ctx, confirmed.CustomerEmail, subjectConfirmation, content); err != nil {
		m.log.Error("confirmation email send failed",
			"session_id", confirmed.SessionID,
			"error", err.Error())
		return nil
	}

	m.log.Info("confirmation email sent",
		"session_id", confirmed.SessionID)
	return nil
}

package notification

import (
	"context"
	"strings"
	"testing"

	"garage_portal_backend/internal/events"
	"garage_portal_backend/platform/logger"
)

type fakeSender struct {
	to      string
	subject string
	content string
	calls   int
}

func (f *fakeSender) Send(_ context.Context, toEmail, subject, htmlContent string) error {
	f.calls++
	f.to = toEmail
	f.subject = subject
	f.content = htmlContent
	return nil
}

func confirmedEvent() events.EstimateConfirmed {
	return events.EstimateConfirmed{
		BaseEvent:      events.NewBaseEvent(),
		SessionID:      "s-1",
		CustomerName:   "J. Jansen",
		CustomerEmail:  "j.jansen@example.com",
		LicensePlate:   "AA11BB",
		VehicleModel:   "320I",
		PaymentOption:  "monthly",
		TaskLabels:     []string{"Olie verversen", "APK-keuring"},
		AnnualInclVAT:  284.35,
		MonthlyInclVAT: 23.70,
	}
}

func TestConfirmationEmailSent(t *testing.T) {
	sender := &fakeSender{}
	m := NewModule(sender, logger.New("test"))

	if err := m.handleEstimateConfirmed(context.Background(), confirmedEvent()); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if sender.calls != 1 {
		t.Fatalf("expected 1 send, got %d", sender.calls)
	}
	if sender.to != "j.jansen@example.com" {
		t.Fatalf("unexpected recipient %q", sender.to)
	}
	if sender.subject != subjectConfirmation {
		t.Fatalf("unexpected subject %q", sender.subject)
	}
	for _, want := range []string{"J. Jansen", "AA11BB", "Olie verversen", "€23.70", "per maand"} {
		if !strings.Contains(sender.content, want) {
			t.Fatalf("expected %q in email body", want)
		}
	}
}

func TestYearlyPayerGetsAnnualFigure(t *testing.T) {
	sender := &fakeSender{}
	m := NewModule(sender, logger.New("test"))

	event := confirmedEvent()
	event.PaymentOption = "yearly"
	if err := m.handleEstimateConfirmed(context.Background(), event); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if !strings.Contains(sender.content, "€284.35") || !strings.Contains(sender.content, "per jaar") {
		t.Fatal("expected annual figure in email body")
	}
}

func TestNoEmailAddressSkipsSend(t *testing.T) {
	sender := &fakeSender{}
	m := NewModule(sender, logger.New("test"))

	event := confirmedEvent()
	event.CustomerEmail = ""
	if err := m.handleEstimateConfirmed(context.Background(), event); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if sender.calls != 0 {
		t.Fatalf("expected no send, got %d", sender.calls)
	}
}

package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const subjectConfirmation = "Bevestiging onderhoudsofferte Bavarian Motors"

type confirmationEmailData struct {
	CustomerName     string
	LicensePlate     string
	VehicleModel     string
	TaskLabels       []string
	PaymentOption    string
	AnnualFormatted  string
	MonthlyFormatted string
	PaysMonthly      bool
}

func renderEmailTemplate(name string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyEUR(amount float64) string {
	return fmt.Sprintf("€%.2f", amount)
}

package estimate

import (
	"math"

	"garage_portal_backend/internal/catalog"
	"garage_portal_backend/internal/vehicle/transport"
)

const (
	vatRate                  = 0.21
	oilCostPerLiter          = 20.0
	sparkPlugCostPerCylinder = 29.0
	monthsPerYear            = 12
)

// Breakdown holds the computed estimate figures. Every field is rounded to
// two decimals at the point of computation; downstream code must not round
// again.
type Breakdown struct {
	AnnualExclVAT  float64 `json:"annualExclVat"`
	AnnualInclVAT  float64 `json:"annualInclVat"`
	MonthlyExclVAT float64 `json:"monthlyExclVat"`
	MonthlyInclVAT float64 `json:"monthlyInclVat"`
}

// Calculator computes cost breakdowns under a pricing profile.
type Calculator struct {
	profile Profile
	catalog *catalog.Catalog
}

// NewCalculator creates a calculator for the given profile and task catalog.
func NewCalculator(profile Profile, cat *catalog.Catalog) *Calculator {
	return &Calculator{profile: profile, catalog: cat}
}

// Profile returns the active pricing profile.
func (c *Calculator) Profile() Profile {
	return c.profile
}

// Calculate computes the cost breakdown for the selected tasks on a vehicle.
// sessionRate is the per-session hourly rate override; it only applies on
// rate-adjustable profiles and is ignored when zero.
//
// The function is pure: same selections, vehicle, and rate always produce the
// same breakdown regardless of map iteration order.
func (c *Calculator) Calculate(selections map[string]bool, vehicle *transport.VehicleRecord, sessionRate float64) Breakdown {
	total := c.baseCharge(sessionRate)

	for _, task := range c.catalog.Tasks() {
		if !selections[task.ID] {
			continue
		}
		total += c.taskCost(task, vehicle)
	}

	annualExcl := round2(total)

	if c.profile.MonthlyFirstVAT {
		// Quote the monthly figure first, then scale back up with VAT on
		// top. Not numerically identical to VAT-then-divide; this ordering
		// is the profile's documented policy.
		monthlyExcl := round2(annualExcl / monthsPerYear)
		return Breakdown{
			AnnualExclVAT:  annualExcl,
			AnnualInclVAT:  round2(monthlyExcl * monthsPerYear * (1 + vatRate)),
			MonthlyExclVAT: monthlyExcl,
			MonthlyInclVAT: round2(monthlyExcl * (1 + vatRate)),
		}
	}

	annualIncl := round2(total * (1 + vatRate))
	return Breakdown{
		AnnualExclVAT:  annualExcl,
		AnnualInclVAT:  annualIncl,
		MonthlyExclVAT: round2(annualExcl / monthsPerYear),
		MonthlyInclVAT: round2(annualIncl / monthsPerYear),
	}
}

func (c *Calculator) baseCharge(sessionRate float64) float64 {
	if c.profile.BaseMode == BaseModeFlat {
		return c.profile.FlatBase
	}
	if c.profile.RateAdjustable && sessionRate > 0 {
		return sessionRate
	}
	return c.profile.HourlyRate
}

func (c *Calculator) taskCost(task catalog.Task, vehicle *transport.VehicleRecord) float64 {
	if task.Dynamic && c.profile.DynamicTaskPricing && vehicle != nil {
		switch task.ID {
		case "oil_change":
			return vehicle.OilCapacity * oilCostPerLiter
		case "spark_plug_replacement":
			return float64(vehicle.Cylinders) * sparkPlugCostPerCylinder
		}
	}
	return task.Cost
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

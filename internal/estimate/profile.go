// Package estimate provides maintenance cost calculation. The workshop runs
// one of several pricing profiles; the profile is an immutable configuration
// value selected at startup and injected into the calculator.
package estimate

import "fmt"

// BaseMode selects how the base charge on every estimate is determined.
type BaseMode string

const (
	// BaseModeHourly charges one fixed hourly rate as the base.
	BaseModeHourly BaseMode = "hourly"
	// BaseModeFlat charges a small flat handling cost as the base.
	BaseModeFlat BaseMode = "flat"
)

// Profile is the pricing policy of a workshop deployment.
type Profile struct {
	Name string
	// BaseMode and the matching amount below.
	BaseMode   BaseMode
	HourlyRate float64
	FlatBase   float64
	// RateAdjustable allows overriding HourlyRate per session.
	RateAdjustable bool
	// AllowedBrands is the lower-cased brand allow-list for vehicle lookup.
	// Empty means every brand is accepted.
	AllowedBrands []string
	// DynamicTaskPricing prices oil changes and spark plugs from vehicle
	// attributes instead of the flat catalog cost.
	DynamicTaskPricing bool
	// MonthlyFirstVAT derives the yearly VAT-inclusive total from the rounded
	// monthly figure (monthly x 12 x 1.21) instead of applying VAT to the
	// yearly total directly. The two orderings round differently.
	MonthlyFirstVAT bool
	// AllowBack enables explicit backward navigation in the wizard.
	AllowBack bool
}

// PremiumProfile is the Bavarian Motors policy: hourly base, brand allow-list,
// vehicle-derived pricing for oil changes and spark plugs, forward-only wizard.
func PremiumProfile() Profile {
	return Profile{
		Name:               "premium",
		BaseMode:           BaseModeHourly,
		HourlyRate:         85,
		AllowedBrands:      []string{"mini", "bmw", "rolls-royce"},
		DynamicTaskPricing: true,
	}
}

// BudgetProfile charges a flat base cost, accepts every brand, and quotes
// the yearly total from the monthly figure.
func BudgetProfile() Profile {
	return Profile{
		Name:            "budget",
		BaseMode:        BaseModeFlat,
		FlatBase:        10,
		MonthlyFirstVAT: true,
		AllowBack:       true,
	}
}

// FlexProfile charges an hourly base that the customer-facing desk can
// override per session.
func FlexProfile() Profile {
	return Profile{
		Name:           "flex",
		BaseMode:       BaseModeHourly,
		HourlyRate:     75,
		RateAdjustable: true,
		AllowBack:      true,
	}
}

// ProfileByName resolves a configured profile name.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case "premium":
		return PremiumProfile(), nil
	case "budget":
		return BudgetProfile(), nil
	case "flex":
		return FlexProfile(), nil
	default:
		return Profile{}, fmt.Errorf("unknown pricing profile %q", name)
	}
}

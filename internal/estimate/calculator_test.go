package estimate

import (
	"testing"

	"garage_portal_backend/internal/catalog"
	"garage_portal_backend/internal/vehicle/transport"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func testVehicle() *transport.VehicleRecord {
	return &transport.VehicleRecord{
		LicensePlate: "AA11BB",
		Brand:        "bmw",
		Model:        "320I",
		Year:         "2019",
		Cylinders:    4,
		OilCapacity:  6.0,
	}
}

func TestCalculatePremiumOilChangeOnly(t *testing.T) {
	calc := NewCalculator(PremiumProfile(), testCatalog(t))

	got := calc.Calculate(map[string]bool{
		"oil_change":             true,
		"spark_plug_replacement": false,
	}, testVehicle(), 0)

	// 85 base + 6.0 liters x 20
	if got.AnnualExclVAT != 205.00 {
		t.Fatalf("expected 205.00 excl VAT, got %v", got.AnnualExclVAT)
	}
	if got.AnnualInclVAT != 248.05 {
		t.Fatalf("expected 248.05 incl VAT, got %v", got.AnnualInclVAT)
	}
}

func TestCalculatePremiumDynamicSparkPlugs(t *testing.T) {
	calc := NewCalculator(PremiumProfile(), testCatalog(t))

	got := calc.Calculate(map[string]bool{"spark_plug_replacement": true}, testVehicle(), 0)

	// 85 base + 4 cylinders x 29
	if got.AnnualExclVAT != 201.00 {
		t.Fatalf("expected 201.00 excl VAT, got %v", got.AnnualExclVAT)
	}
}

func TestCalculateFlatTasksUseCatalogPrices(t *testing.T) {
	calc := NewCalculator(PremiumProfile(), testCatalog(t))

	got := calc.Calculate(map[string]bool{
		"apk":             true, // 60
		"tire_inspection": true, // 25
	}, testVehicle(), 0)

	if got.AnnualExclVAT != 170.00 {
		t.Fatalf("expected 170.00 excl VAT, got %v", got.AnnualExclVAT)
	}
	if got.MonthlyExclVAT != 14.17 {
		t.Fatalf("expected 14.17 monthly excl VAT, got %v", got.MonthlyExclVAT)
	}
	if got.MonthlyInclVAT != 17.14 {
		t.Fatalf("expected 17.14 monthly incl VAT, got %v", got.MonthlyInclVAT)
	}
}

func TestCalculateNoSelectionsIsBaseOnly(t *testing.T) {
	calc := NewCalculator(PremiumProfile(), testCatalog(t))

	got := calc.Calculate(map[string]bool{}, testVehicle(), 0)

	if got.AnnualExclVAT != 85.00 {
		t.Fatalf("expected base-only 85.00, got %v", got.AnnualExclVAT)
	}
	if got.AnnualInclVAT != 102.85 {
		t.Fatalf("expected 102.85 incl VAT, got %v", got.AnnualInclVAT)
	}
}

func TestCalculateSelectThenDeselectRoundTrips(t *testing.T) {
	calc := NewCalculator(PremiumProfile(), testCatalog(t))
	vehicle := testVehicle()

	before := calc.Calculate(map[string]bool{"apk": true}, vehicle, 0)
	withExtra := calc.Calculate(map[string]bool{"apk": true, "brake_inspection": true}, vehicle, 0)
	after := calc.Calculate(map[string]bool{"apk": true, "brake_inspection": false}, vehicle, 0)

	if withExtra.AnnualExclVAT == before.AnnualExclVAT {
		t.Fatal("adding a task must change the total")
	}
	if after != before {
		t.Fatalf("deselecting must restore the exact breakdown: before=%+v after=%+v", before, after)
	}
}

func TestCalculateBudgetProfileFlatBase(t *testing.T) {
	calc := NewCalculator(BudgetProfile(), testCatalog(t))

	got := calc.Calculate(map[string]bool{"apk": true}, testVehicle(), 0)

	// 10 flat base + 60 apk
	if got.AnnualExclVAT != 70.00 {
		t.Fatalf("expected 70.00 excl VAT, got %v", got.AnnualExclVAT)
	}
}

func TestCalculateBudgetDynamicTasksFallBackToFlatCost(t *testing.T) {
	calc := NewCalculator(BudgetProfile(), testCatalog(t))

	got := calc.Calculate(map[string]bool{"oil_change": true}, testVehicle(), 0)

	// Flat catalog cost for oil_change is 0; only the 10 base remains.
	if got.AnnualExclVAT != 10.00 {
		t.Fatalf("expected 10.00 excl VAT, got %v", got.AnnualExclVAT)
	}
}

func TestCalculateBudgetYearlyFromMonthlyOrdering(t *testing.T) {
	calc := NewCalculator(BudgetProfile(), testCatalog(t))

	got := calc.Calculate(map[string]bool{
		"fuel_filter_replacement": true, // 75
		"tire_inspection":         true, // 25
	}, testVehicle(), 0)

	// 10 + 75 + 25 = 110; monthly 9.17; yearly-incl 9.17 x 12 x 1.21.
	if got.AnnualExclVAT != 110.00 {
		t.Fatalf("expected 110.00 excl VAT, got %v", got.AnnualExclVAT)
	}
	if got.MonthlyExclVAT != 9.17 {
		t.Fatalf("expected 9.17 monthly excl VAT, got %v", got.MonthlyExclVAT)
	}
	if got.AnnualInclVAT != 133.15 {
		t.Fatalf("expected 133.15 yearly incl VAT, got %v", got.AnnualInclVAT)
	}
	if got.MonthlyInclVAT != 11.10 {
		t.Fatalf("expected 11.10 monthly incl VAT, got %v", got.MonthlyInclVAT)
	}

	// The documented ordering differs from VAT-then-divide: 110 x 1.21 = 133.10.
	if got.AnnualInclVAT == round2(110.00*1.21) {
		t.Fatal("budget yearly total must come from the monthly figure, not the direct total")
	}
}

func TestCalculateFlexSessionRateOverride(t *testing.T) {
	calc := NewCalculator(FlexProfile(), testCatalog(t))
	vehicle := testVehicle()

	byDefault := calc.Calculate(map[string]bool{}, vehicle, 0)
	if byDefault.AnnualExclVAT != 75.00 {
		t.Fatalf("expected default rate 75.00, got %v", byDefault.AnnualExclVAT)
	}

	overridden := calc.Calculate(map[string]bool{}, vehicle, 95)
	if overridden.AnnualExclVAT != 95.00 {
		t.Fatalf("expected overridden rate 95.00, got %v", overridden.AnnualExclVAT)
	}
}

func TestCalculateSessionRateIgnoredWhenNotAdjustable(t *testing.T) {
	calc := NewCalculator(PremiumProfile(), testCatalog(t))

	got := calc.Calculate(map[string]bool{}, testVehicle(), 95)
	if got.AnnualExclVAT != 85.00 {
		t.Fatalf("premium rate must stay 85.00, got %v", got.AnnualExclVAT)
	}
}

func TestProfileByName(t *testing.T) {
	for _, name := range []string{"premium", "budget", "flex"} {
		p, err := ProfileByName(name)
		if err != nil {
			t.Fatalf("ProfileByName(%q) error: %v", name, err)
		}
		if p.Name != name {
			t.Fatalf("expected profile %q, got %q", name, p.Name)
		}
	}

	if _, err := ProfileByName("bespoke"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"garage_portal_backend/internal/vehicle/transport"
	"garage_portal_backend/platform/apperr"
	"garage_portal_backend/platform/logger"
)

type fakeRegistry struct {
	records   []transport.RegistryRecord
	err       error
	lastPlate string
}

func (f *fakeRegistry) Search(_ context.Context, plate string) ([]transport.RegistryRecord, error) {
	f.lastPlate = plate
	return f.records, f.err
}

var bavarianBrands = []string{"mini", "bmw", "rolls-royce"}

func testLogger() *logger.Logger {
	return logger.New("development")
}

func bmwRecord() transport.RegistryRecord {
	return transport.RegistryRecord{
		Kenteken:             "AA11BB",
		Merk:                 "BMW",
		Handelsbenaming:      "320I",
		DatumEersteToelating: "20190315",
		AantalCilinders:      "4",
		VervaldatumAPK:       "20260801",
	}
}

func TestLookupNormalizesPlateBeforeQuerying(t *testing.T) {
	reg := &fakeRegistry{records: []transport.RegistryRecord{bmwRecord()}}
	svc := New(reg, bavarianBrands, testLogger())

	rec, err := svc.Lookup(context.Background(), " aa-11-bb ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if reg.lastPlate != "AA11BB" {
		t.Fatalf("expected registry query for AA11BB, got %q", reg.lastPlate)
	}
	if rec.LicensePlate != "AA11BB" {
		t.Fatalf("expected stored plate AA11BB, got %q", rec.LicensePlate)
	}
}

func TestLookupDerivesVehicleFields(t *testing.T) {
	reg := &fakeRegistry{records: []transport.RegistryRecord{bmwRecord()}}
	svc := New(reg, bavarianBrands, testLogger())

	rec, err := svc.Lookup(context.Background(), "AA11BB")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.Model != "320I" {
		t.Fatalf("expected model 320I, got %q", rec.Model)
	}
	if rec.Year != "2019" {
		t.Fatalf("expected year 2019, got %q", rec.Year)
	}
	if rec.Cylinders != 4 {
		t.Fatalf("expected 4 cylinders, got %d", rec.Cylinders)
	}
	if rec.OilCapacity != 6.0 {
		t.Fatalf("expected oil capacity 6.0, got %v", rec.OilCapacity)
	}
	if rec.APKExpiration != "20260801" {
		t.Fatalf("expected apk expiration carried over, got %q", rec.APKExpiration)
	}
}

func TestLookupFallsBackOnMissingFields(t *testing.T) {
	reg := &fakeRegistry{records: []transport.RegistryRecord{{
		Kenteken: "XX99YY",
		Merk:     "BMW",
	}}}
	svc := New(reg, bavarianBrands, testLogger())

	rec, err := svc.Lookup(context.Background(), "XX99YY")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.Year != "Onbekend" {
		t.Fatalf("expected fallback year, got %q", rec.Year)
	}
	if rec.Model != "Onbekend model" {
		t.Fatalf("expected fallback model, got %q", rec.Model)
	}
	if rec.Cylinders != 0 || rec.OilCapacity != 0 {
		t.Fatalf("expected zero cylinders/oil, got %d/%v", rec.Cylinders, rec.OilCapacity)
	}
}

func TestLookupRejectsDisallowedBrand(t *testing.T) {
	record := bmwRecord()
	record.Merk = "Toyota"
	reg := &fakeRegistry{records: []transport.RegistryRecord{record}}
	svc := New(reg, bavarianBrands, testLogger())

	_, err := svc.Lookup(context.Background(), "AA11BB")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Message != MsgBrandRefused {
		t.Fatalf("expected brand refusal message, got %v", err)
	}
}

func TestLookupAcceptsAnyBrandWithoutAllowList(t *testing.T) {
	record := bmwRecord()
	record.Merk = "Toyota"
	reg := &fakeRegistry{records: []transport.RegistryRecord{record}}
	svc := New(reg, nil, testLogger())

	rec, err := svc.Lookup(context.Background(), "AA11BB")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.Brand != "toyota" {
		t.Fatalf("expected lower-cased brand, got %q", rec.Brand)
	}
}

func TestLookupBrandCheckIsCaseInsensitive(t *testing.T) {
	record := bmwRecord()
	record.Merk = " Rolls-Royce "
	reg := &fakeRegistry{records: []transport.RegistryRecord{record}}
	svc := New(reg, bavarianBrands, testLogger())

	if _, err := svc.Lookup(context.Background(), "AA11BB"); err != nil {
		t.Fatalf("expected rolls-royce to pass the allow-list, got %v", err)
	}
}

func TestLookupEmptyPlate(t *testing.T) {
	svc := New(&fakeRegistry{}, bavarianBrands, testLogger())

	_, err := svc.Lookup(context.Background(), "  - ")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for empty plate, got %v", err)
	}
}

func TestLookupNoRecords(t *testing.T) {
	reg := &fakeRegistry{records: nil}
	svc := New(reg, bavarianBrands, testLogger())

	_, err := svc.Lookup(context.Background(), "ZZ00ZZ")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLookupRegistryFailure(t *testing.T) {
	reg := &fakeRegistry{err: errors.New("connection refused")}
	svc := New(reg, bavarianBrands, testLogger())

	_, err := svc.Lookup(context.Background(), "AA11BB")
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Message != MsgLookupFailed {
		t.Fatalf("expected user-facing lookup message, got %v", err)
	}
}

func TestLookupTakesFirstRecordOnly(t *testing.T) {
	second := bmwRecord()
	second.Handelsbenaming = "520D"
	reg := &fakeRegistry{records: []transport.RegistryRecord{bmwRecord(), second}}
	svc := New(reg, bavarianBrands, testLogger())

	rec, err := svc.Lookup(context.Background(), "AA11BB")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.Model != "320I" {
		t.Fatalf("expected first record to win, got model %q", rec.Model)
	}
}

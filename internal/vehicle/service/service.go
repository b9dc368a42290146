// Package service implements vehicle lookup against the RDW registry:
// plate normalization, brand policy, and derivation of the fields the
// cost calculator needs.
package service

import (
	"context"
	"strconv"
	"strings"

	"garage_portal_backend/internal/vehicle/transport"
	"garage_portal_backend/platform/apperr"
	"garage_portal_backend/platform/logger"
)

// User-facing messages, kept in Dutch as rendered on the form.
const (
	MsgLookupFailed = "Voertuiggegevens konden niet worden opgehaald. Controleer het kenteken."
	MsgBrandRefused = "Bavarian Motors accepteert alleen voertuigen van de merken BMW, MINI en Rolls-Royce. Onze excuses voor het ongemak."

	unknownYear  = "Onbekend"
	unknownModel = "Onbekend model"
)

// The registry does not publish oil capacity; the workshop estimates it
// from the cylinder count.
const oilLitersPerCylinder = 1.5

// Registry searches the external vehicle registry by normalized plate.
type Registry interface {
	Search(ctx context.Context, plate string) ([]transport.RegistryRecord, error)
}

// Service performs vehicle lookups.
type Service struct {
	registry      Registry
	allowedBrands []string
	log           *logger.Logger
}

// New creates a vehicle lookup service. allowedBrands is the lower-cased
// brand allow-list; empty means every brand is accepted.
func New(registry Registry, allowedBrands []string, log *logger.Logger) *Service {
	return &Service{
		registry:      registry,
		allowedBrands: allowedBrands,
		log:           log,
	}
}

// NormalizePlate strips spaces and dashes and upper-cases the plate,
// the format the registry indexes on.
func NormalizePlate(plate string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(plate)
	return strings.ToUpper(strings.TrimSpace(cleaned))
}

// Lookup resolves a raw license plate to a VehicleRecord.
//
// Any transport failure, upstream error, or empty result set comes back as a
// typed error carrying a user-facing message; nothing is raised past this
// boundary. The registry may return multiple records for one plate; only the
// first is used, as the workshop has always done.
func (s *Service) Lookup(ctx context.Context, plate string) (*transport.VehicleRecord, error) {
	normalized := NormalizePlate(plate)
	if normalized == "" {
		return nil, apperr.Validation(MsgLookupFailed).WithOp("vehicle.Lookup")
	}

	records, err := s.registry.Search(ctx, normalized)
	if err != nil {
		s.log.WithContext(ctx).LookupFailure(normalized, err)
		return nil, apperr.Wrap(apperr.KindUnavailable, MsgLookupFailed, err).WithOp("vehicle.Lookup")
	}
	if len(records) == 0 {
		return nil, apperr.NotFound(MsgLookupFailed).WithOp("vehicle.Lookup")
	}

	raw := records[0]

	brand := strings.ToLower(strings.TrimSpace(raw.Merk))
	if len(s.allowedBrands) > 0 && !contains(s.allowedBrands, brand) {
		return nil, apperr.Validation(MsgBrandRefused).WithOp("vehicle.Lookup")
	}

	cylinders := parseCylinders(raw.AantalCilinders)

	return &transport.VehicleRecord{
		LicensePlate:  normalized,
		Brand:         brand,
		Model:         modelName(raw.Handelsbenaming),
		Year:          registrationYear(raw.DatumEersteToelating),
		Cylinders:     cylinders,
		OilCapacity:   float64(cylinders) * oilLitersPerCylinder,
		APKExpiration: raw.VervaldatumAPK,
	}, nil
}

// registrationYear takes the first four characters of the registration date
// (formatted YYYYMMDD by the registry).
func registrationYear(date string) string {
	if len(date) < 4 {
		return unknownYear
	}
	return date[:4]
}

func modelName(tradeName string) string {
	trimmed := strings.TrimSpace(tradeName)
	if trimmed == "" {
		return unknownModel
	}
	return trimmed
}

func parseCylinders(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

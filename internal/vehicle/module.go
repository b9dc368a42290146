// Package vehicle provides the vehicle lookup bounded context.
// This file defines the public interface exposed to other modules.
package vehicle

import (
	"context"

	"garage_portal_backend/internal/vehicle/client"
	"garage_portal_backend/internal/vehicle/service"
	"garage_portal_backend/internal/vehicle/transport"
	"garage_portal_backend/platform/config"
	"garage_portal_backend/platform/logger"
)

// Lookup defines the public interface for vehicle lookups.
// Other modules should depend on this interface, not the concrete service.
type Lookup interface {
	// Lookup resolves a raw license plate to a normalized vehicle record.
	Lookup(ctx context.Context, plate string) (*transport.VehicleRecord, error)
}

// Module is the vehicle bounded context. It is not HTTP-facing; the wizard
// module calls into it.
type Module struct {
	service *service.Service
}

// NewModule wires the registry client and lookup service.
func NewModule(cfg config.RegistryConfig, allowedBrands []string, log *logger.Logger) *Module {
	registryClient := client.New(cfg, log)
	svc := service.New(registryClient, allowedBrands, log)
	return &Module{service: svc}
}

// Service returns the lookup service.
func (m *Module) Service() *service.Service {
	return m.service
}

var _ Lookup = (*service.Service)(nil)

package repositories

import (
	"context"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
)

// FirmRepositoryFacade defines the read surface the engine needs for tenants.
// Counter mutation happens exclusively inside the invoice repository's finalize
// transaction, never through this interface.
type FirmRepositoryFacade interface {
	// FindFirmByID retrieves a firm by its unique identifier.
	FindFirmByID(ctx context.Context, firmID string) (*domain.Firm, error)
}

// ClientRepositoryFacade defines the read surface for invoice recipients.
type ClientRepositoryFacade interface {
	// FindClientByID retrieves a client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
}

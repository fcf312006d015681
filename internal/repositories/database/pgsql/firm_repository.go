package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obveznik/obveznik_backend/internal/apperrors"
	"github.com/obveznik/obveznik_backend/internal/core/domain"
	portsrepo "github.com/obveznik/obveznik_backend/internal/core/ports/repositories"
	"github.com/obveznik/obveznik_backend/internal/models"
	"github.com/obveznik/obveznik_backend/internal/utils/mapping"
)

type PgxFirmRepository struct {
	BaseRepository
}

// newPgxFirmRepository creates a new repository for firm data.
func newPgxFirmRepository(pool *pgxpool.Pool) portsrepo.FirmRepositoryFacade {
	return &PgxFirmRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FirmRepositoryFacade = (*PgxFirmRepository)(nil)

// FindFirmByID retrieves a firm by its unique identifier.
func (r *PgxFirmRepository) FindFirmByID(ctx context.Context, firmID string) (*domain.Firm, error) {
	query := `
		SELECT firm_id, tax_id, reg_no, name, address, city, country, email,
			domestic_accounts, foreign_accounts,
			number_prefix, number_suffix, counter_standard, counter_proforma, counter_advance,
			is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM firms
		WHERE firm_id = $1;
	`
	var m models.Firm
	err := r.Pool.QueryRow(ctx, query, firmID).Scan(
		&m.FirmID, &m.TaxID, &m.RegNo, &m.Name, &m.Address, &m.City, &m.Country, &m.Email,
		&m.DomesticAccounts, &m.ForeignAccounts,
		&m.NumberPrefix, &m.NumberSuffix, &m.CounterStandard, &m.CounterProforma, &m.CounterAdvance,
		&m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find firm %s: %w", firmID, err)
	}

	firm := mapping.ToDomainFirm(m)
	return &firm, nil
}

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// FindClientByID retrieves a client by its unique identifier.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT client_id, firm_id, tax_id, reg_no, name, address, city, country, email, iban, swift,
			created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE client_id = $1;
	`
	var m models.Client
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(
		&m.ClientID, &m.FirmID, &m.TaxID, &m.RegNo, &m.Name, &m.Address, &m.City, &m.Country, &m.Email, &m.IBAN, &m.SWIFT,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}

	client := mapping.ToDomainClient(m)
	return &client, nil
}

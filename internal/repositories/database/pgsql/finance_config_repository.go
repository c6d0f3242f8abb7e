package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	"github.com/angemarius939/datarw-finance/internal/models"
	"github.com/angemarius939/datarw-finance/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxFinanceConfigRepository struct {
	BaseRepository
}

// newPgxFinanceConfigRepository creates a new repository for org finance config data.
func newPgxFinanceConfigRepository(pool *pgxpool.Pool) portsrepo.FinanceConfigRepository {
	return &PgxFinanceConfigRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FinanceConfigRepository = (*PgxFinanceConfigRepository)(nil)

// FindConfig retrieves the organization's config.
func (r *PgxFinanceConfigRepository) FindConfig(ctx context.Context, organizationID string) (*domain.OrgFinanceConfig, error) {
	query := `
		SELECT organization_id, funding_sources, cost_centers, funding_allocations, director_threshold,
			created_at, created_by, last_updated_at, last_updated_by
		FROM org_finance_configs
		WHERE organization_id = $1;
	`
	var m models.OrgFinanceConfig
	var allocationsJSON []byte
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.FundingSources,
		&m.CostCenters,
		&allocationsJSON,
		&m.DirectorThreshold,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("finance config for organization %s not found", organizationID))
		}
		return nil, fmt.Errorf("failed to find finance config for organization %s: %w", organizationID, err)
	}

	m.FundingAllocations = map[string]decimal.Decimal{}
	if len(allocationsJSON) > 0 {
		if err := json.Unmarshal(allocationsJSON, &m.FundingAllocations); err != nil {
			return nil, fmt.Errorf("failed to decode funding allocations for organization %s: %w", organizationID, err)
		}
	}

	d := mapping.ToDomainOrgFinanceConfig(m)
	return &d, nil
}

// SaveConfig inserts a config row if none exists yet. A concurrent insert for
// the same organization is a no-op; the existing row wins.
func (r *PgxFinanceConfigRepository) SaveConfig(ctx context.Context, config domain.OrgFinanceConfig) error {
	m := mapping.ToModelOrgFinanceConfig(config)

	allocationsJSON, err := json.Marshal(m.FundingAllocations)
	if err != nil {
		return fmt.Errorf("failed to encode funding allocations: %w", err)
	}

	query := `
		INSERT INTO org_finance_configs (organization_id, funding_sources, cost_centers, funding_allocations, director_threshold,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (organization_id) DO NOTHING;
	`
	_, err = r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.FundingSources,
		m.CostCenters,
		allocationsJSON,
		m.DirectorThreshold,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save finance config for organization %s: %w", m.OrganizationID, err)
	}
	return nil
}

// UpdateConfig rewrites the config row wholesale.
func (r *PgxFinanceConfigRepository) UpdateConfig(ctx context.Context, config domain.OrgFinanceConfig) error {
	m := mapping.ToModelOrgFinanceConfig(config)

	allocationsJSON, err := json.Marshal(m.FundingAllocations)
	if err != nil {
		return fmt.Errorf("failed to encode funding allocations: %w", err)
	}

	query := `
		UPDATE org_finance_configs SET
			funding_sources = $2,
			cost_centers = $3,
			funding_allocations = $4,
			director_threshold = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE organization_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.FundingSources,
		m.CostCenters,
		allocationsJSON,
		m.DirectorThreshold,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update finance config for organization %s: %w", m.OrganizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("finance config for organization %s not found", m.OrganizationID))
	}
	return nil
}

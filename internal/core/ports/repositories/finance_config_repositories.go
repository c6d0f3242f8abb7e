package repositories

import (
	"context"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
)

// FinanceConfigRepository persists the per-organization finance vocabulary.
type FinanceConfigRepository interface {
	// FindConfig retrieves the organization's config, or apperrors.ErrNotFound.
	FindConfig(ctx context.Context, organizationID string) (*domain.OrgFinanceConfig, error)

	// SaveConfig inserts a config row if none exists yet. A concurrent insert
	// for the same organization is not an error; the existing row wins.
	SaveConfig(ctx context.Context, config domain.OrgFinanceConfig) error

	// UpdateConfig rewrites the config row wholesale.
	UpdateConfig(ctx context.Context, config domain.OrgFinanceConfig) error
}

package services

import (
	"context"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
	"github.com/angemarius939/datarw-finance/internal/dto"
)

// ConfigSvcFacade manages the per-organization finance vocabulary.
type ConfigSvcFacade interface {
	// GetConfig returns the organization's config, lazily creating it with
	// defaults on first access (the read may trigger a write).
	GetConfig(ctx context.Context, actor domain.Actor) (*domain.OrgFinanceConfig, error)

	// UpdateConfig replaces the provided lists wholesale and returns the
	// updated config.
	UpdateConfig(ctx context.Context, actor domain.Actor, req dto.UpdateFinanceConfigRequest) (*domain.OrgFinanceConfig, error)
}

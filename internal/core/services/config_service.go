package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
	"github.com/shopspring/decimal"
)

// configService manages the per-organization finance vocabulary.
type configService struct {
	BaseService
	configRepo portsrepo.FinanceConfigRepository
}

// NewConfigService creates a new ConfigService.
func NewConfigService(configRepo portsrepo.FinanceConfigRepository) portssvc.ConfigSvcFacade {
	return &configService{
		configRepo: configRepo,
	}
}

// Ensure configService implements the portssvc.ConfigSvcFacade interface
var _ portssvc.ConfigSvcFacade = (*configService)(nil)

// GetConfig returns the organization's config, lazily creating it with
// defaults on first access. The first read therefore triggers a write.
func (s *configService) GetConfig(ctx context.Context, actor domain.Actor) (*domain.OrgFinanceConfig, error) {
	cfg, err := s.configRepo.FindConfig(ctx, actor.OrganizationID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	seeded := domain.OrgFinanceConfig{
		OrganizationID:     actor.OrganizationID,
		FundingSources:     append([]string(nil), domain.DefaultFundingSources...),
		CostCenters:        append([]string(nil), domain.DefaultCostCenters...),
		FundingAllocations: map[string]decimal.Decimal{},
		DirectorThreshold:  domain.DefaultDirectorThreshold,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	// A concurrent first read may insert the same row; the repository treats
	// that as a no-op and the follow-up read returns whichever row won.
	if err := s.configRepo.SaveConfig(ctx, seeded); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Seeded default finance config", slog.String("organization_id", actor.OrganizationID))
	return s.configRepo.FindConfig(ctx, actor.OrganizationID)
}

// UpdateConfig replaces the provided lists wholesale. Values referenced by
// existing expenses are not validated retroactively; historical expenses keep
// their tags.
func (s *configService) UpdateConfig(ctx context.Context, actor domain.Actor, req dto.UpdateFinanceConfigRequest) (*domain.OrgFinanceConfig, error) {
	cfg, err := s.GetConfig(ctx, actor)
	if err != nil {
		return nil, err
	}

	if req.FundingSources != nil {
		cleaned, err := cleanVocabulary(*req.FundingSources, "fundingSources")
		if err != nil {
			return nil, err
		}
		cfg.FundingSources = cleaned
	}
	if req.CostCenters != nil {
		cleaned, err := cleanVocabulary(*req.CostCenters, "costCenters")
		if err != nil {
			return nil, err
		}
		cfg.CostCenters = cleaned
	}
	if req.FundingAllocations != nil {
		for source, ceiling := range *req.FundingAllocations {
			if ceiling.IsNegative() {
				return nil, fmt.Errorf("%w: allocation for %q must not be negative", apperrors.ErrValidation, source)
			}
		}
		cfg.FundingAllocations = *req.FundingAllocations
	}
	if req.DirectorThreshold != nil {
		if req.DirectorThreshold.IsNegative() {
			return nil, fmt.Errorf("%w: directorThreshold must not be negative", apperrors.ErrValidation)
		}
		cfg.DirectorThreshold = *req.DirectorThreshold
	}

	cfg.LastUpdatedAt = time.Now().UTC()
	cfg.LastUpdatedBy = actor.UserID

	if err := s.configRepo.UpdateConfig(ctx, *cfg); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Finance config updated", slog.String("organization_id", actor.OrganizationID))
	return cfg, nil
}

// cleanVocabulary trims entries and rejects empties and duplicates.
func cleanVocabulary(values []string, field string) ([]string, error) {
	cleaned := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, fmt.Errorf("%w: %s must not contain empty values", apperrors.ErrValidation, field)
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: %s contains duplicate value %q", apperrors.ErrValidation, field, v)
		}
		seen[v] = true
		cleaned = append(cleaned, v)
	}
	return cleaned, nil
}

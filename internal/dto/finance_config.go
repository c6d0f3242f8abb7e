package dto

import (
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateFinanceConfigRequest replaces the provided vocabulary lists
// wholesale; nil fields are left untouched. Historical expenses keep their
// tags even if a value is removed from the vocabulary.
type UpdateFinanceConfigRequest struct {
	FundingSources     *[]string                   `json:"fundingSources"`
	CostCenters        *[]string                   `json:"costCenters"`
	FundingAllocations *map[string]decimal.Decimal `json:"fundingAllocations"`
	DirectorThreshold  *decimal.Decimal            `json:"directorThreshold"`
}

// FinanceConfigResponse is the API representation of an organization's
// finance vocabulary.
type FinanceConfigResponse struct {
	OrganizationID     string                     `json:"organizationID"`
	FundingSources     []string                   `json:"fundingSources"`
	CostCenters        []string                   `json:"costCenters"`
	FundingAllocations map[string]decimal.Decimal `json:"fundingAllocations"`
	DirectorThreshold  decimal.Decimal            `json:"directorThreshold"`
}

// ToFinanceConfigResponse converts a domain config to its API representation.
func ToFinanceConfigResponse(c domain.OrgFinanceConfig) FinanceConfigResponse {
	return FinanceConfigResponse{
		OrganizationID:     c.OrganizationID,
		FundingSources:     c.FundingSources,
		CostCenters:        c.CostCenters,
		FundingAllocations: c.FundingAllocations,
		DirectorThreshold:  c.DirectorThreshold,
	}
}

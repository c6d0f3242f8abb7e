package domain

import "github.com/shopspring/decimal"

// OrgFinanceConfig holds the per-organization finance vocabulary used to tag
// and validate expenses. One record per organization, created lazily with
// defaults on first read and never deleted.
type OrgFinanceConfig struct {
	OrganizationID string   `json:"organizationID"`
	FundingSources []string `json:"fundingSources"`
	CostCenters    []string `json:"costCenters"`
	// FundingAllocations maps a funding source to its optional spending
	// ceiling, used by the utilization metric when present.
	FundingAllocations map[string]decimal.Decimal `json:"fundingAllocations"`
	// DirectorThreshold is the amount above which submitted expenses require
	// director sign-off.
	DirectorThreshold decimal.Decimal `json:"directorThreshold"`
	AuditFields
}

// DefaultDirectorThreshold applies when an organization has not configured
// its own threshold.
var DefaultDirectorThreshold = decimal.NewFromInt(100000)

// DefaultFundingSources seeds a new organization's vocabulary.
var DefaultFundingSources = []string{"World Bank", "USAID", "UNICEF", "Government", "Private Donor"}

// DefaultCostCenters seeds a new organization's vocabulary.
var DefaultCostCenters = []string{"Programs", "Operations", "Administration", "M&E"}

// HasFundingSource reports whether the source is part of the vocabulary.
func (c OrgFinanceConfig) HasFundingSource(source string) bool {
	for _, s := range c.FundingSources {
		if s == source {
			return true
		}
	}
	return false
}

// HasCostCenter reports whether the cost center is part of the vocabulary.
func (c OrgFinanceConfig) HasCostCenter(center string) bool {
	for _, cc := range c.CostCenters {
		if cc == center {
			return true
		}
	}
	return false
}

package models

import "github.com/shopspring/decimal"

// OrgFinanceConfig is the database representation of an organization's
// finance vocabulary. FundingAllocations is stored as JSONB.
type OrgFinanceConfig struct {
	OrganizationID     string                     `db:"organization_id"`
	FundingSources     []string                   `db:"funding_sources"`
	CostCenters        []string                   `db:"cost_centers"`
	FundingAllocations map[string]decimal.Decimal `db:"funding_allocations"`
	DirectorThreshold  decimal.Decimal            `db:"director_threshold"`
	AuditFields
}

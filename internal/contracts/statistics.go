package contracts

import (
	"encoding/json"
	"fmt"
)

// Statistics is the aggregate payload of /contracts/statistics.
type Statistics struct {
	TotalContracts             int64                `json:"totalContracts"`
	CountByTypeCode            map[string]TypeCount `json:"countByTypeCode"`
	CountByStatus              map[string]int64     `json:"countByStatus"`
	CountBySource              map[string]int64     `json:"countBySource"`
	TopOrganizations           []OrganizationCount  `json:"topOrganizations,omitempty"`
	CountByAutonomousCommunity []RegionStats        `json:"countByAutonomousCommunity,omitempty"`
	AmountAnalysis             *AmountAnalysis      `json:"amountAnalysis,omitempty"`
	ContractValueDistribution  map[string]int64     `json:"contractValueDistribution,omitempty"`
	MonthlyTrends              []MonthlyTrend       `json:"monthlyTrends,omitempty"`
}

// TypeCount is a per-type counter. The API sends either a bare number or
// {"count": n, "description": "..."}; both decode here.
type TypeCount struct {
	Count       int64  `json:"count"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *TypeCount) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		v, convErr := n.Int64()
		if convErr != nil {
			f, floatErr := n.Float64()
			if floatErr != nil {
				return fmt.Errorf("type count %q: %w", n, convErr)
			}
			v = int64(f)
		}
		*c = TypeCount{Count: v}
		return nil
	}

	type plain TypeCount
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("type count: %w", err)
	}
	*c = TypeCount(p)
	return nil
}

// OrganizationCount is one entry of the top contracting organizations.
type OrganizationCount struct {
	Name          string  `json:"name"`
	ContractCount int64   `json:"contractCount"`
	TotalAmount   float64 `json:"totalAmount"`
}

// RegionStats aggregates contracts for one autonomous community.
type RegionStats struct {
	Name          string  `json:"name"`
	ContractCount int64   `json:"contractCount"`
	TotalAmount   float64 `json:"totalAmount"`
	AverageAmount float64 `json:"averageAmount"`
}

// AmountAnalysis summarizes contract amounts.
type AmountAnalysis struct {
	TotalAmount            float64 `json:"totalAmount"`
	AverageAmount          float64 `json:"averageAmount"`
	MaxAmount              float64 `json:"maxAmount"`
	MinAmount              float64 `json:"minAmount"`
	ContractsWithAmount    int64   `json:"contractsWithAmount"`
	ContractsWithoutAmount int64   `json:"contractsWithoutAmount"`
	AmountCoverage         float64 `json:"amountCoverage"`
}

// MonthlyTrend is the contract count and amount for one month.
type MonthlyTrend struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	ContractCount int64   `json:"contractCount"`
	TotalAmount   float64 `json:"totalAmount"`
}

// Package factor provides the emission factor reference model and the
// ranked resolution logic that selects the single authoritative factor for
// an activity, region, and reporting year.
package factor

import (
	"github.com/shopspring/decimal"
)

// Status is the governance state of a stored emission factor. Only
// approved factors are eligible for resolution.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusArchived        Status = "archived"
)

// EmissionFactor is a coefficient converting an activity quantity into
// CO2-equivalent mass. Stored factors are long-lived reference data,
// versioned through the governance Status and mutated only by an approval
// workflow outside this core.
type EmissionFactor struct {
	ID          string
	ActivityKey string
	Region      string
	Year        int

	// CO2eFactor is required; the split gas factors are optional and only
	// present when the source publishes a gas breakdown.
	CO2eFactor decimal.Decimal
	CO2Factor  *decimal.Decimal
	CH4Factor  *decimal.Decimal
	N2OFactor  *decimal.Decimal

	// ActivityUnit is the unit the factor expects. Quantities must be
	// normalized to this unit before multiplication.
	ActivityUnit string
	// FactorUnit is the display unit, e.g. "kg CO2e/kWh".
	FactorUnit string

	Source   string
	Status   Status
	IsActive bool

	// Synthesized marks factors constructed in memory (supplier override,
	// GWP table fallback, material physical factor) rather than loaded from
	// the governed store. Synthesized factors bypass the approval gate by
	// design and must stay visibly tagged downstream.
	Synthesized bool
}

// Eligible reports whether a stored factor passes the governance gate:
// status approved and not soft-deleted. Enforced at every resolver query.
func (f *EmissionFactor) Eligible() bool {
	return f.Status == StatusApproved && f.IsActive
}

// RegionGlobal is the region value for factors that apply worldwide.
const RegionGlobal = "Global"

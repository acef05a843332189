// Package cbam implements the embedded-emissions calculator for EU Carbon
// Border Adjustment Mechanism declarations: default-value fallback,
// carbon-price deduction, certificate requirement, and quarterly/annual
// aggregation. Structurally parallel to the GHG pipeline - resolve, apply
// formula, report provenance - but independent of it.
package cbam

import (
	"github.com/shopspring/decimal"
)

// Product is a CN-code reference entry carrying the EU default Specific
// Embedded Emissions (SEE) used when an importer has no installation data.
type Product struct {
	CNCode string `json:"cnCode"`
	Name   string `json:"name"`
	Sector string `json:"sector"`

	// Default SEE values in tCO2e per tonne of product.
	DefaultDirectSEE   decimal.Decimal `json:"defaultDirectSEE"`
	DefaultIndirectSEE decimal.Decimal `json:"defaultIndirectSEE"`
}

// Installation is a non-EU production facility. Actual installation data,
// when reported, takes precedence over EU default values.
type Installation struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`

	// Measured SEE values, when the operator reports them.
	DirectSEE   *decimal.Decimal `json:"directSEE,omitempty"`
	IndirectSEE *decimal.Decimal `json:"indirectSEE,omitempty"`
}

// Import is a single declaration line: a quantity of one CN-code product
// from one installation in one reporting quarter.
type Import struct {
	ID      string `json:"id"`
	CNCode  string `json:"cnCode"`
	Country string `json:"country"` // country of origin
	Year    int    `json:"year"`
	Quarter int    `json:"quarter"`

	MassTonnes decimal.Decimal `json:"massTonnes"`

	Installation *Installation `json:"installation,omitempty"`

	// ElectricityMWh lets indirect SEE be derived from actual electricity
	// consumption and the origin country's grid factor when neither the
	// installation nor the CN defaults provide it.
	ElectricityMWh *decimal.Decimal `json:"electricityMWh,omitempty"`

	// Carbon price effectively paid in the origin jurisdiction, per tCO2e,
	// and that jurisdiction's own free-allocation share (0..1).
	ForeignCarbonPrice    *decimal.Decimal `json:"foreignCarbonPrice,omitempty"`
	ForeignFreeAllocShare decimal.Decimal  `json:"foreignFreeAllocShare"`
}

// EmbeddedEmissions is the outcome of the embedded-emissions formula for
// one import, with the SEE values actually applied and their provenance.
type EmbeddedEmissions struct {
	DirectSEE   decimal.Decimal `json:"directSEE"`
	IndirectSEE decimal.Decimal `json:"indirectSEE"`

	DirectTCO2e   decimal.Decimal `json:"directTCO2e"`
	IndirectTCO2e decimal.Decimal `json:"indirectTCO2e"`
	TotalTCO2e    decimal.Decimal `json:"totalTCO2e"`

	// DefaultsApplied is set when any EU default or fallback grid value
	// substituted for actual installation data.
	DefaultsApplied bool `json:"defaultsApplied"`

	Warnings []string `json:"warnings,omitempty"`
}

// Deduction is the outcome of the carbon-price deduction formula.
type Deduction struct {
	EUCoveredTCO2e decimal.Decimal `json:"euCoveredTCO2e"`
	GrossCost      decimal.Decimal `json:"grossCost"`
	DeductedAmount decimal.Decimal `json:"deductedAmount"`
	NetCost        decimal.Decimal `json:"netCost"`
}

// Certificates is the certificate requirement for the definitive phase:
// one certificate per tonne of net emissions. The fractional count serves
// cost estimation; the integer count is the surrender requirement.
type Certificates struct {
	Fractional decimal.Decimal `json:"fractional"`
	Count      int64           `json:"count"`
	CostEUR    decimal.Decimal `json:"costEUR"`
}

// ImportResult is the full per-import calculation consumed by the
// quarterly and annual aggregations and by external export formatters.
type ImportResult struct {
	ImportID string `json:"importID"`
	CNCode   string `json:"cnCode"`
	Sector   string `json:"sector"`
	Country  string `json:"country"`
	Year     int    `json:"year"`
	Quarter  int    `json:"quarter"`

	MassTonnes decimal.Decimal `json:"massTonnes"`

	Embedded     EmbeddedEmissions `json:"embedded"`
	Deduction    Deduction         `json:"deduction"`
	Certificates *Certificates     `json:"certificates,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

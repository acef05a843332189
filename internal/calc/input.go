// Package calc turns a reported activity into an audited CO2e emission
// figure. It sequences unit normalization, factor resolution, and a
// category-specific calculation strategy, and reports full provenance on
// every result.
package calc

import (
	"github.com/shopspring/decimal"
)

// ActivityInput is one emission-causing activity as reported by the
// surrounding application: a fuel purchase, an electricity bill, a flight,
// a waste disposal event, a spend line. Constructed fresh per calculation
// and never mutated.
type ActivityInput struct {
	// ActivityKey identifies the emission-causing action, e.g.
	// "natural_gas_volume" or "electricity_grid".
	ActivityKey string `json:"activity_key"`

	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`

	Scope        int    `json:"scope"`
	CategoryCode string `json:"category_code"` // dotted, e.g. "1.1", "3.6"
	Region       string `json:"region"`        // ISO country code or "Global"
	Year         int    `json:"year"`          // reporting year for factor vintage

	// SupplierEF, when present, overrides factor resolution entirely with a
	// supplier-provided emission factor (GHG hierarchy tier 1).
	SupplierEF     *decimal.Decimal `json:"supplier_ef,omitempty"`
	SupplierEFUnit string           `json:"supplier_ef_unit,omitempty"`

	// Material selects the physical-factor tier of the GHG accuracy
	// hierarchy for purchased-goods categories.
	Material string `json:"material,omitempty"`

	Flight  *FlightDetail  `json:"flight,omitempty"`
	Freight *FreightDetail `json:"freight,omitempty"`
	Leased  *LeasedDetail  `json:"leased,omitempty"`
}

// FlightDetail carries flight-specific inputs for category 3.6.
type FlightDetail struct {
	// CabinClass is one of economy, premium_economy, business, first.
	// Empty defaults to economy.
	CabinClass string `json:"cabin_class,omitempty"`

	// RadiativeForcing toggles the non-CO2 high-altitude climate effect
	// multiplier. Nil applies the DEFRA convention (enabled, 1.9x).
	RadiativeForcing *bool `json:"radiative_forcing,omitempty"`

	// OriginIATA/DestinationIATA let the caller omit the distance; it is
	// then computed as the great-circle distance between the airports.
	OriginIATA      string `json:"origin_iata,omitempty"`
	DestinationIATA string `json:"destination_iata,omitempty"`
}

// FreightDetail carries freight-specific inputs for categories 3.4/3.9.
type FreightDetail struct {
	// Mode selects the default load assumption when no weight is supplied:
	// hgv, van, rail, sea_container, air. Empty is inferred from the
	// activity key where possible.
	Mode string `json:"mode,omitempty"`

	// WeightTonnes, when present, makes tonne-km = distance x weight with
	// high confidence. Absent, a mode-specific default load is assumed.
	WeightTonnes *decimal.Decimal `json:"weight_tonnes,omitempty"`
}

// LeasedDetail carries leased-asset inputs for categories 3.8/3.13/3.14.
// The three calculation paths are selected by data availability, most
// accurate first: tenant pass-through, then area-based, then spend-based.
type LeasedDetail struct {
	// Tenant pass-through: the tenant's own measured totals.
	TenantScope1Kg *decimal.Decimal `json:"tenant_scope1_kg,omitempty"`
	TenantScope2Kg *decimal.Decimal `json:"tenant_scope2_kg,omitempty"`

	// Area-based: floor area x building-type intensity.
	FloorAreaM2  *decimal.Decimal `json:"floor_area_m2,omitempty"`
	BuildingType string           `json:"building_type,omitempty"`
}

package calc

import (
	"github.com/shopspring/decimal"

	"github.com/verdantiq/carboncore/internal/factor"
)

// Result is the output of one calculation: the CO2e figure, the optional
// per-gas breakdown, the upstream (well-to-tank) component, and enough
// provenance to reproduce the number from the result's own fields. Flat
// and immutable; no back-references to mutable state.
type Result struct {
	CalculationID string `json:"calculation_id"`

	CO2eKg decimal.Decimal  `json:"co2e_kg"`
	CO2Kg  *decimal.Decimal `json:"co2_kg,omitempty"`
	CH4Kg  *decimal.Decimal `json:"ch4_kg,omitempty"`
	N2OKg  *decimal.Decimal `json:"n2o_kg,omitempty"`

	// WTTCO2eKg is the upstream component; it feeds GHG Protocol category
	// 3.3 and is never blended into the primary figure.
	WTTCO2eKg *decimal.Decimal `json:"wtt_co2e_kg,omitempty"`

	// Factor provenance.
	FactorID     string          `json:"factor_id"`
	FactorSource string          `json:"factor_source"`
	FactorValue  decimal.Decimal `json:"factor_value"`
	FactorUnit   string          `json:"factor_unit"`

	// Normalization provenance.
	OriginalQuantity   decimal.Decimal `json:"original_quantity"`
	OriginalUnit       string          `json:"original_unit"`
	NormalizedQuantity decimal.Decimal `json:"normalized_quantity"`
	NormalizedUnit     string          `json:"normalized_unit"`
	ConversionApplied  bool            `json:"unit_conversion_applied"`

	// Resolution metadata.
	ResolutionStrategy factor.Strategy   `json:"resolution_strategy"`
	Confidence         factor.Confidence `json:"confidence"`

	// Formula is the human-readable audit trail: original unit, any
	// conversion, the factor applied, and the outcome.
	Formula string `json:"formula"`

	Warnings []string `json:"warnings,omitempty"`
}

// addWarning appends a warning, skipping empty strings.
func (r *Result) addWarning(w string) {
	if w == "" {
		return
	}
	r.Warnings = append(r.Warnings, w)
}

// Flatten serializes the result to a flat key-value map for API responses
// or storage. Decimals are rendered as strings so no precision is lost.
func (r *Result) Flatten() map[string]string {
	m := map[string]string{
		"calculation_id":          r.CalculationID,
		"co2e_kg":                 r.CO2eKg.String(),
		"factor_id":               r.FactorID,
		"factor_source":           r.FactorSource,
		"factor_value":            r.FactorValue.String(),
		"factor_unit":             r.FactorUnit,
		"original_quantity":       r.OriginalQuantity.String(),
		"original_unit":           r.OriginalUnit,
		"normalized_quantity":     r.NormalizedQuantity.String(),
		"normalized_unit":         r.NormalizedUnit,
		"unit_conversion_applied": boolString(r.ConversionApplied),
		"resolution_strategy":     string(r.ResolutionStrategy),
		"confidence":              string(r.Confidence),
		"formula":                 r.Formula,
	}
	if r.CO2Kg != nil {
		m["co2_kg"] = r.CO2Kg.String()
	}
	if r.CH4Kg != nil {
		m["ch4_kg"] = r.CH4Kg.String()
	}
	if r.N2OKg != nil {
		m["n2o_kg"] = r.N2OKg.String()
	}
	if r.WTTCO2eKg != nil {
		m["wtt_co2e_kg"] = r.WTTCO2eKg.String()
	}
	return m
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

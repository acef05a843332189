package calc

import (
	"github.com/shopspring/decimal"

	"github.com/verdantiq/carboncore/internal/factor"
)

// refrigerantSanityThresholdKg flags implausibly large fugitive-emission
// results. Refrigerant charge sizes are typically small; anything above
// 100 tCO2e usually indicates a unit or decimal error in the leaked
// quantity.
var refrigerantSanityThresholdKg = decimal.NewFromInt(100_000)

// refrigerantStrategy covers fugitive refrigerant emissions (1.3). The
// factor IS the Global Warming Potential: co2e = leaked_mass_kg × GWP.
// Refrigerants are synthetic gases reported as pure CO2e, so there is no
// per-gas split and no well-to-tank component.
type refrigerantStrategy struct{}

func (refrigerantStrategy) name() string { return "refrigerant" }

func (refrigerantStrategy) calculate(req request) (*Result, error) {
	res := baseCalculation(req)
	res.Confidence = factor.ConfidenceHigh

	res.CO2Kg = nil
	res.CH4Kg = nil
	res.N2OKg = nil
	res.WTTCO2eKg = nil

	if res.CO2eKg.GreaterThan(refrigerantSanityThresholdKg) {
		res.addWarning("result exceeds 100 tCO2e; refrigerant charges are typically small - verify the leaked quantity and unit")
	}
	return res, nil
}

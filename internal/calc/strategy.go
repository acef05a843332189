package calc

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/verdantiq/carboncore/internal/factor"
	"github.com/verdantiq/carboncore/internal/units"
)

// request bundles everything a strategy needs: the raw activity, the
// quantity normalized to the factor's unit, the resolved factor, and the
// optional well-to-tank factor.
type request struct {
	Activity   ActivityInput
	Normalized units.NormalizedQuantity
	Factor     *factor.EmissionFactor
	WTT        *factor.EmissionFactor

	// Freight pre-derivation flags set by the pipeline.
	freightExplicitWeight bool
	freightAssumedLoad    string // default-load description, empty if none
}

// strategy is one category-family formula. The set is closed: the GHG
// Protocol fixes the category families and they change rarely.
type strategy interface {
	name() string
	calculate(req request) (*Result, error)
}

// strategies dispatches category codes to their formula. Unmapped codes
// fall back to the fuel strategy, the generic multiply-by-factor default.
var strategies = map[string]strategy{
	"1.1":  fuelStrategy{},
	"1.2":  fuelStrategy{},
	"1.3":  refrigerantStrategy{},
	"2":    electricityStrategy{},
	"2.1":  electricityStrategy{},
	"2.2":  electricityStrategy{},
	"3.1":  spendStrategy{},
	"3.2":  spendStrategy{},
	"3.4":  transportStrategy{},
	"3.5":  wasteStrategy{},
	"3.6":  flightStrategy{},
	"3.8":  leasedStrategy{},
	"3.9":  transportStrategy{},
	"3.12": wasteStrategy{},
	"3.13": leasedStrategy{},
	"3.14": leasedStrategy{},
}

// strategyFor returns the strategy for a category code, defaulting to the
// fuel strategy for unmapped codes.
func strategyFor(categoryCode string) strategy {
	if s, ok := strategies[categoryCode]; ok {
		return s
	}
	return fuelStrategy{}
}

// baseCalculation is the shared formula: co2e = quantity x factor, with
// the optional per-gas split and the well-to-tank component computed the
// same way. The formula string it builds is surfaced to end users for
// audit trust and is always reproducible from the result's own fields.
func baseCalculation(req request) *Result {
	qty := req.Normalized.Quantity
	f := req.Factor

	res := &Result{
		CO2eKg:             qty.Mul(f.CO2eFactor),
		FactorID:           f.ID,
		FactorSource:       f.Source,
		FactorValue:        f.CO2eFactor,
		FactorUnit:         f.FactorUnit,
		OriginalQuantity:   req.Normalized.OriginalQuantity,
		OriginalUnit:       req.Normalized.OriginalUnit,
		NormalizedQuantity: qty,
		NormalizedUnit:     req.Normalized.Unit,
		ConversionApplied:  req.Normalized.ConversionApplied,
	}

	if f.CO2Factor != nil {
		v := qty.Mul(*f.CO2Factor)
		res.CO2Kg = &v
	}
	if f.CH4Factor != nil {
		v := qty.Mul(*f.CH4Factor)
		res.CH4Kg = &v
	}
	if f.N2OFactor != nil {
		v := qty.Mul(*f.N2OFactor)
		res.N2OKg = &v
	}

	if req.WTT != nil {
		v := qty.Mul(req.WTT.CO2eFactor)
		res.WTTCO2eKg = &v
	}

	res.Formula = baseFormula(req, res.CO2eKg)
	return res
}

// baseFormula renders the audit formula, including the unit conversion
// when one was applied.
func baseFormula(req request, co2eKg decimal.Decimal) string {
	n := req.Normalized
	formula := fmt.Sprintf("%s %s × %s %s = %s kg CO2e",
		n.Quantity, n.Unit, req.Factor.CO2eFactor, req.Factor.FactorUnit, co2eKg)
	if n.ConversionApplied {
		formula = fmt.Sprintf("%s %s → %s %s; %s",
			n.OriginalQuantity, n.OriginalUnit, n.Quantity, n.Unit, formula)
	}
	return formula
}

package calc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/verdantiq/carboncore/internal/factor"
)

// Cabin class multipliers reflect the seat-area allocation of aircraft
// emissions: a business seat displaces roughly three economy seats.
// Source: DEFRA business travel methodology.
var cabinClassMultipliers = map[string]decimal.Decimal{
	"economy":         decimal.RequireFromString("1.0"),
	"premium_economy": decimal.RequireFromString("1.6"),
	"business":        decimal.RequireFromString("2.9"),
	"first":           decimal.RequireFromString("4.0"),
}

// DefaultRadiativeForcing is the DEFRA-convention multiplier for aviation's
// non-CO2 high-altitude climate effects (contrails, NOx).
var DefaultRadiativeForcing = decimal.RequireFromString("1.9")

// Haul banding thresholds in km. Informational only; the banding never
// changes the formula.
var (
	shortHaulMaxKm  = decimal.NewFromInt(1500)
	mediumHaulMaxKm = decimal.NewFromInt(4000)
)

// flightStrategy covers business travel flights (3.6):
//
//	co2e = distance_km × factor × class_multiplier × RF_multiplier
//
// The well-to-tank component scales with the class multiplier but NOT the
// RF multiplier: radiative forcing is a post-hoc climate-impact adjustment,
// not a physical fuel quantity, so upstream fuel emissions are unaffected.
type flightStrategy struct{}

func (flightStrategy) name() string { return "flight" }

func (flightStrategy) calculate(req request) (*Result, error) {
	class := "economy"
	rfEnabled := true
	if d := req.Activity.Flight; d != nil {
		if d.CabinClass != "" {
			class = strings.ToLower(strings.TrimSpace(d.CabinClass))
		}
		if d.RadiativeForcing != nil {
			rfEnabled = *d.RadiativeForcing
		}
	}

	classMult, ok := cabinClassMultipliers[class]
	if !ok {
		return nil, &CalculationError{
			Op:     "flight",
			Reason: fmt.Sprintf("unknown cabin class %q", class),
		}
	}
	rf := decimal.NewFromInt(1)
	if rfEnabled {
		rf = DefaultRadiativeForcing
	}

	res := baseCalculation(req)
	res.CO2eKg = res.CO2eKg.Mul(classMult).Mul(rf)
	scaleGasSplit(res, classMult.Mul(rf))

	// WTT scales with cabin class only.
	if res.WTTCO2eKg != nil {
		v := res.WTTCO2eKg.Mul(classMult)
		res.WTTCO2eKg = &v
	}

	res.Confidence = factor.ConfidenceHigh
	res.Formula = fmt.Sprintf("%s %s × %s %s × %s (%s) × %s (radiative forcing) = %s kg CO2e",
		req.Normalized.Quantity, req.Normalized.Unit,
		req.Factor.CO2eFactor, req.Factor.FactorUnit,
		classMult, class, rf, res.CO2eKg)

	res.addWarning(fmt.Sprintf("flight classified as %s (%s km)",
		haulBand(req.Normalized.Quantity), req.Normalized.Quantity))
	if !rfEnabled {
		res.addWarning("radiative forcing disabled; non-CO2 high-altitude effects are excluded")
	}
	return res, nil
}

// scaleGasSplit multiplies the optional per-gas breakdown by a factor so
// it stays consistent with the adjusted CO2e figure.
func scaleGasSplit(res *Result, mult decimal.Decimal) {
	if res.CO2Kg != nil {
		v := res.CO2Kg.Mul(mult)
		res.CO2Kg = &v
	}
	if res.CH4Kg != nil {
		v := res.CH4Kg.Mul(mult)
		res.CH4Kg = &v
	}
	if res.N2OKg != nil {
		v := res.N2OKg.Mul(mult)
		res.N2OKg = &v
	}
}

// haulBand classifies a flight distance: short below 1,500 km, medium
// below 4,000 km, long above.
func haulBand(distanceKm decimal.Decimal) string {
	switch {
	case distanceKm.LessThan(shortHaulMaxKm):
		return "short-haul"
	case distanceKm.LessThan(mediumHaulMaxKm):
		return "medium-haul"
	default:
		return "long-haul"
	}
}

package cbam

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrZeroMass rejects imports whose declared mass is zero or negative;
// SEE derivation divides by mass, and a zero-mass declaration line is
// meaningless anyway.
var ErrZeroMass = errors.New("import mass must be positive")

// ErrUnknownCNCode is returned when no installation data exists and the
// CN code has no EU default entry to fall back on.
var ErrUnknownCNCode = errors.New("no EU default values for CN code")

// seePrecision is the decimal precision applied to reported emission
// totals, in tCO2e. Half-up per the reporting convention.
const seePrecision = 3

// Calculator computes embedded emissions, carbon-price deductions, and
// certificate requirements for CBAM declaration lines.
type Calculator struct {
	logger zerolog.Logger

	// EUETSPrice is the EU ETS allowance price in EUR per tCO2e used for
	// gross-cost and certificate-cost estimation.
	EUETSPrice decimal.Decimal
}

// NewCalculator returns a Calculator priced at the given EU ETS allowance
// price in EUR/tCO2e.
func NewCalculator(etsPrice decimal.Decimal, logger zerolog.Logger) *Calculator {
	return &Calculator{
		logger:     logger.With().Str("component", "cbam").Logger(),
		EUETSPrice: etsPrice,
	}
}

// EmbeddedEmissions applies the embedded-emissions formula to one import.
//
// SEE selection runs down the accuracy ladder independently for the
// direct and indirect components:
//
//  1. installation-reported SEE
//  2. EU default values for the CN code
//  3. for indirect only, as a last resort: reported electricity
//     consumption x origin country grid factor, per tonne
//
// The total is (direct SEE + indirect SEE) x mass rounded half-up to 3
// decimal places; per-component totals are rounded the same way for
// reporting.
func (c *Calculator) EmbeddedEmissions(imp Import) (*EmbeddedEmissions, error) {
	if !imp.MassTonnes.IsPositive() {
		return nil, fmt.Errorf("import %s: %w", imp.ID, ErrZeroMass)
	}

	product, hasDefaults := DefaultProduct(imp.CNCode)
	res := &EmbeddedEmissions{}

	inst := imp.Installation
	switch {
	case inst != nil && inst.DirectSEE != nil:
		res.DirectSEE = *inst.DirectSEE
	case hasDefaults:
		res.DirectSEE = product.DefaultDirectSEE
		res.DefaultsApplied = true
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("no installation direct SEE; EU default %s tCO2e/t applied for CN %s", product.DefaultDirectSEE, product.CNCode))
	default:
		return nil, fmt.Errorf("import %s CN %s: %w", imp.ID, imp.CNCode, ErrUnknownCNCode)
	}

	switch {
	case inst != nil && inst.IndirectSEE != nil:
		res.IndirectSEE = *inst.IndirectSEE
	case hasDefaults:
		res.IndirectSEE = product.DefaultIndirectSEE
		res.DefaultsApplied = true
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("no installation indirect SEE; EU default %s tCO2e/t applied for CN %s", product.DefaultIndirectSEE, product.CNCode))
	case imp.ElectricityMWh != nil:
		grid, known := CountryGridFactor(imp.Country)
		res.IndirectSEE = imp.ElectricityMWh.Mul(grid).Div(imp.MassTonnes)
		res.DefaultsApplied = true
		if !known {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("no grid factor for country %q; fallback %s tCO2e/MWh applied", imp.Country, DefaultCountryGridFactor))
		} else {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("indirect SEE derived from electricity consumption and %s grid factor %s tCO2e/MWh", imp.Country, grid))
		}
	default:
		return nil, fmt.Errorf("import %s CN %s: %w", imp.ID, imp.CNCode, ErrUnknownCNCode)
	}

	res.DirectTCO2e = res.DirectSEE.Mul(imp.MassTonnes).Round(seePrecision)
	res.IndirectTCO2e = res.IndirectSEE.Mul(imp.MassTonnes).Round(seePrecision)
	res.TotalTCO2e = res.DirectSEE.Add(res.IndirectSEE).Mul(imp.MassTonnes).Round(seePrecision)
	return res, nil
}

// CarbonPriceDeduction applies the deduction formula: the net CBAM cost
// is the EU-covered emissions priced at the ETS rate, minus the carbon
// price effectively paid in the origin jurisdiction. The deduction can
// never exceed the gross cost, and the net cost never goes negative.
func (c *Calculator) CarbonPriceDeduction(imp Import, totalTCO2e decimal.Decimal) Deduction {
	euFree := EUFreeAllocShare(imp.Year)
	covered := totalTCO2e.Mul(decimal.NewFromInt(1).Sub(euFree))
	gross := covered.Mul(c.EUETSPrice)

	foreignPaid := decimal.Zero
	if imp.ForeignCarbonPrice != nil {
		foreignShare := decimal.NewFromInt(1).Sub(imp.ForeignFreeAllocShare)
		foreignPaid = totalTCO2e.Mul(*imp.ForeignCarbonPrice).Mul(foreignShare)
	}

	deducted := foreignPaid
	if deducted.GreaterThan(gross) {
		deducted = gross
	}
	net := gross.Sub(deducted)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return Deduction{
		EUCoveredTCO2e: covered.Round(seePrecision),
		GrossCost:      gross.Round(2),
		DeductedAmount: deducted.Round(2),
		NetCost:        net.Round(2),
	}
}

// CertificatesRequired converts a net cost back into a certificate
// requirement. Certificates only apply from the definitive phase; during
// the transitional period the method returns nil.
func (c *Calculator) CertificatesRequired(year int, ded Deduction) *Certificates {
	if year < DefinitivePhaseStart {
		return nil
	}
	if c.EUETSPrice.IsZero() {
		return &Certificates{}
	}

	fractional := ded.NetCost.Div(c.EUETSPrice)
	return &Certificates{
		Fractional: fractional.Round(seePrecision),
		Count:      fractional.Round(0).IntPart(),
		CostEUR:    ded.NetCost,
	}
}

// CalculateImport runs the full per-import chain: embedded emissions,
// carbon-price deduction, and certificate requirement.
func (c *Calculator) CalculateImport(imp Import) (*ImportResult, error) {
	embedded, err := c.EmbeddedEmissions(imp)
	if err != nil {
		return nil, err
	}

	deduction := c.CarbonPriceDeduction(imp, embedded.TotalTCO2e)
	certs := c.CertificatesRequired(imp.Year, deduction)

	sector := ""
	if product, ok := DefaultProduct(imp.CNCode); ok {
		sector = product.Sector
	}

	result := &ImportResult{
		ImportID:     imp.ID,
		CNCode:       imp.CNCode,
		Sector:       sector,
		Country:      imp.Country,
		Year:         imp.Year,
		Quarter:      imp.Quarter,
		MassTonnes:   imp.MassTonnes,
		Embedded:     *embedded,
		Deduction:    deduction,
		Certificates: certs,
		Warnings:     embedded.Warnings,
	}

	c.logger.Info().
		Str("importID", imp.ID).
		Str("cnCode", imp.CNCode).
		Str("country", imp.Country).
		Str("totalTCO2e", embedded.TotalTCO2e.String()).
		Str("netCost", deduction.NetCost.String()).
		Bool("defaultsApplied", embedded.DefaultsApplied).
		Msg("calculated CBAM import")

	return result, nil
}

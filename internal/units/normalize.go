package units

import "github.com/shopspring/decimal"

// NormalizedQuantity is the outcome of a unit normalization. It carries
// both sides of the conversion so downstream results can reproduce the
// exact transformation that was applied.
type NormalizedQuantity struct {
	OriginalQuantity  decimal.Decimal
	OriginalUnit      string
	Quantity          decimal.Decimal
	Unit              string
	ConversionFactor  decimal.Decimal
	ConversionApplied bool
}

// ConversionError reports a failed unit normalization. It always carries
// both offending unit strings and a reason so the failure is actionable at
// the API boundary.
type ConversionError struct {
	FromUnit string
	ToUnit   string
	Reason   string
}

func (e *ConversionError) Error() string {
	return "cannot convert " + e.FromUnit + " to " + e.ToUnit + ": " + e.Reason
}

// Normalize converts quantity from inputUnit to targetUnit.
//
// Both units are resolved through the alias table first. Identical resolved
// units return the quantity unchanged with ConversionApplied=false.
// Currencies and counts are non-convertible and must match exactly after
// alias resolution. Everything else converts within its dimension using
// decimal arithmetic; the conversion factor is the ratio of the two units'
// base magnitudes.
func Normalize(quantity decimal.Decimal, inputUnit, targetUnit string) (NormalizedQuantity, error) {
	inCanon, ok := Canonical(inputUnit)
	if !ok {
		return NormalizedQuantity{}, &ConversionError{
			FromUnit: inputUnit,
			ToUnit:   targetUnit,
			Reason:   "unknown unit " + inputUnit,
		}
	}
	outCanon, ok := Canonical(targetUnit)
	if !ok {
		return NormalizedQuantity{}, &ConversionError{
			FromUnit: inputUnit,
			ToUnit:   targetUnit,
			Reason:   "unknown unit " + targetUnit,
		}
	}

	if inCanon == outCanon {
		return NormalizedQuantity{
			OriginalQuantity:  quantity,
			OriginalUnit:      inputUnit,
			Quantity:          quantity,
			Unit:              outCanon,
			ConversionFactor:  decimal.NewFromInt(1),
			ConversionApplied: false,
		}, nil
	}

	in := canonicalUnits[inCanon]
	out := canonicalUnits[outCanon]

	if in.Dimension == DimCurrency || out.Dimension == DimCurrency ||
		in.Dimension == DimCount || out.Dimension == DimCount {
		return NormalizedQuantity{}, &ConversionError{
			FromUnit: inputUnit,
			ToUnit:   targetUnit,
			Reason:   "incompatible units, not convertible",
		}
	}

	if in.Dimension != out.Dimension {
		return NormalizedQuantity{}, &ConversionError{
			FromUnit: inputUnit,
			ToUnit:   targetUnit,
			Reason: "dimension mismatch: " + string(in.Dimension) +
				" cannot convert to " + string(out.Dimension),
		}
	}

	factor := in.ToBase.Div(out.ToBase)
	return NormalizedQuantity{
		OriginalQuantity:  quantity,
		OriginalUnit:      inputUnit,
		Quantity:          quantity.Mul(factor),
		Unit:              outCanon,
		ConversionFactor:  factor,
		ConversionApplied: true,
	}, nil
}

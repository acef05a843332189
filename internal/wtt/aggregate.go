package wtt

import "github.com/shopspring/decimal"

// StoredEmission is the slice of a persisted emission record that the
// period aggregation needs: the originating scope and the upstream
// component computed alongside it. The surrounding application supplies
// these from its own storage.
type StoredEmission struct {
	Scope     int
	WTTCO2eKg decimal.Decimal
}

// PeriodTotals is the upstream-emissions rollup for a reporting period.
// The totals feed GHG Protocol category 3.3 and are never blended into the
// Scope 1/2 totals they originate from.
type PeriodTotals struct {
	FromScope1Kg decimal.Decimal
	FromScope2Kg decimal.Decimal
	TotalKg      decimal.Decimal
}

// AggregateForPeriod sums the well-to-tank component of stored emissions,
// grouped by originating scope. Pure summation: re-running it over the
// same input always yields identical totals.
func AggregateForPeriod(emissions []StoredEmission) PeriodTotals {
	totals := PeriodTotals{
		FromScope1Kg: decimal.Zero,
		FromScope2Kg: decimal.Zero,
		TotalKg:      decimal.Zero,
	}
	for _, e := range emissions {
		switch e.Scope {
		case 1:
			totals.FromScope1Kg = totals.FromScope1Kg.Add(e.WTTCO2eKg)
		case 2:
			totals.FromScope2Kg = totals.FromScope2Kg.Add(e.WTTCO2eKg)
		default:
			// Scope 3 activities do not generate a separate upstream
			// component; skip anything else.
			continue
		}
		totals.TotalKg = totals.TotalKg.Add(e.WTTCO2eKg)
	}
	return totals
}

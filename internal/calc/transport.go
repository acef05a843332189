package calc

import (
	"github.com/shopspring/decimal"

	"github.com/verdantiq/carboncore/internal/factor"
)

// defaultLoadTonnes holds the assumed cargo load per transport mode when
// the caller supplies distance but no weight.
// Source: DEFRA freighting goods methodology, average laden assumptions.
var defaultLoadTonnes = map[string]decimal.Decimal{
	"hgv":           decimal.RequireFromString("10"),
	"van":           decimal.RequireFromString("0.5"),
	"rail":          decimal.RequireFromString("500"),
	"sea_container": decimal.RequireFromString("14"),
	"air":           decimal.RequireFromString("40"),
}

// transportStrategy covers freight and upstream/downstream transport
// (3.4, 3.9): co2e = tonne-km × factor. Tonne-km derivation from distance
// and weight (or a default load) happens in the pipeline before
// normalization; this strategy grades the outcome.
type transportStrategy struct{}

func (transportStrategy) name() string { return "transport" }

func (transportStrategy) calculate(req request) (*Result, error) {
	res := baseCalculation(req)

	switch {
	case req.freightAssumedLoad != "":
		res.Confidence = factor.ConfidenceMedium
		res.addWarning("no shipment weight supplied; assumed " + req.freightAssumedLoad +
			" default load for tonne-km derivation")
	case req.freightExplicitWeight:
		res.Confidence = factor.ConfidenceHigh
	default:
		// Quantity arrived already in tonne-km; the weight assumption is
		// the caller's and cannot be graded here.
		res.Confidence = factor.ConfidenceMedium
	}
	return res, nil
}

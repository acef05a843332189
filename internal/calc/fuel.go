package calc

import (
	"github.com/verdantiq/carboncore/internal/factor"
)

// fuelStrategy covers stationary and mobile fuel combustion (1.1, 1.2).
// Pure base calculation; it also serves as the generic fallback for
// unmapped category codes.
type fuelStrategy struct{}

func (fuelStrategy) name() string { return "fuel" }

func (fuelStrategy) calculate(req request) (*Result, error) {
	res := baseCalculation(req)
	res.Confidence = factor.ConfidenceHigh
	if req.WTT != nil {
		res.addWarning("well-to-tank emissions for this fuel will be reported under upstream category 3.3")
	}
	return res, nil
}

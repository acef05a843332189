package calc

import (
	"fmt"

	"github.com/verdantiq/carboncore/internal/factor"
)

// electricityStrategy covers purchased electricity (2, 2.1, 2.2). Base
// calculation plus context about which grid's factor was applied.
type electricityStrategy struct{}

func (electricityStrategy) name() string { return "electricity" }

func (electricityStrategy) calculate(req request) (*Result, error) {
	res := baseCalculation(req)
	res.Confidence = factor.ConfidenceHigh

	region := req.Factor.Region
	res.addWarning(fmt.Sprintf("grid emission factor for %s applied (%s)", region, req.Factor.Source))
	if region == factor.RegionGlobal {
		res.addWarning("global average grid factor used; a region-specific factor would improve accuracy")
	}
	return res, nil
}

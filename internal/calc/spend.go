package calc

import (
	"strings"

	"github.com/verdantiq/carboncore/internal/factor"
)

// spendStrategy covers spend-based categories (3.1, 3.2) and the flat
// quantity-times-factor path used for supplier-specific overrides.
// Spend-based EEIO is inherently less precise than activity data, so
// confidence is capped at medium.
type spendStrategy struct{}

func (spendStrategy) name() string { return "spend" }

func (spendStrategy) calculate(req request) (*Result, error) {
	res := baseCalculation(req)
	res.Confidence = factor.ConfidenceMedium

	res.addWarning("spend-based estimate; supplier-specific or activity data would improve accuracy")
	if strings.Contains(req.Factor.Source, "EEIO") {
		res.addWarning("factor sourced from a national EEIO database (" + req.Factor.Source +
			"); emission intensities may not transfer cleanly to other geographies")
	}
	return res, nil
}

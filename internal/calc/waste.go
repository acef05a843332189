package calc

import (
	"strings"

	"github.com/verdantiq/carboncore/internal/factor"
)

// wasteStrategy covers waste disposal (3.5, 3.12): co2e = mass_kg × factor.
// Negative results are valid: recycling factors carry an avoided-emissions
// credit for displacing virgin material production, and must never be
// clamped to zero.
type wasteStrategy struct{}

func (wasteStrategy) name() string { return "waste" }

func (wasteStrategy) calculate(req request) (*Result, error) {
	res := baseCalculation(req)
	res.Confidence = factor.ConfidenceHigh

	if res.CO2eKg.IsNegative() {
		res.addWarning("negative result is an avoided-emissions credit: recycling displaces virgin material production")
	}
	if isGenericWasteKey(req.Activity.ActivityKey) {
		res.Confidence = factor.ConfidenceMedium
		res.addWarning("generic mixed-waste factor applied; classifying the waste type would improve accuracy")
	}
	return res, nil
}

func isGenericWasteKey(activityKey string) bool {
	key := strings.ToLower(activityKey)
	return strings.Contains(key, "mixed") || strings.Contains(key, "generic")
}

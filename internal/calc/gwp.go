package calc

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/verdantiq/carboncore/internal/factor"
)

// gwpAR6 holds 100-year Global Warming Potential values for common
// refrigerants and industrial gases, keyed by normalized nomenclature.
// Source: IPCC AR6 WG1, Table 7.SM.7.
var gwpAR6 = map[string]string{
	"R-22":     "1960",
	"R-32":     "771",
	"R-125":    "3740",
	"R-134A":   "1530",
	"R-143A":   "5810",
	"R-152A":   "164",
	"R-404A":   "4728",
	"R-407C":   "1908",
	"R-410A":   "2256",
	"R-507A":   "4775",
	"R-1234YF": "1",
	"R-1234ZE": "1",
	"R-600A":   "3",
	"R-290":    "3",
	"R-717":    "0",
	"R-744":    "1",
	"SF6":      "24300",
	"NF3":      "17400",
	"CH4":      "27",
	"N2O":      "273",
}

// normalizeRefrigerantName canonicalizes refrigerant nomenclature so
// "r134a", "R134a", and "HFC-134a" all resolve to "R-134A".
func normalizeRefrigerantName(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "")
	n = strings.TrimPrefix(n, "HFC-")
	n = strings.TrimPrefix(n, "HFC")
	n = strings.TrimPrefix(n, "REFRIGERANT_")

	switch n {
	case "SF6", "NF3", "CH4", "N2O":
		return n
	}
	n = strings.TrimPrefix(n, "R-")
	n = strings.TrimPrefix(n, "R")
	if n == "" {
		return ""
	}
	return "R-" + n
}

// GWPFactor synthesizes an emission factor from the AR6 GWP table for a
// refrigerant, keyed by normalized nomenclature. Used when no governed
// factor exists for a fugitive-gas activity.
func GWPFactor(refrigerant string) (*factor.EmissionFactor, bool) {
	key := normalizeRefrigerantName(refrigerant)
	raw, ok := gwpAR6[key]
	if !ok {
		return nil, false
	}
	return &factor.EmissionFactor{
		ID:           "gwp:" + key,
		ActivityKey:  "refrigerant_" + strings.ToLower(strings.ReplaceAll(key, "-", "")),
		Region:       factor.RegionGlobal,
		CO2eFactor:   decimal.RequireFromString(raw),
		ActivityUnit: "kg",
		FactorUnit:   "kg CO2e/kg (GWP-100)",
		Source:       "IPCC AR6 GWP-100",
		Status:       factor.StatusApproved,
		IsActive:     true,
		Synthesized:  true,
	}, true
}

package factor

import (
	"strings"

	"github.com/shopspring/decimal"
)

// materialFactors maps material names to cradle-to-gate physical emission
// factors in kg CO2e per kg of material.
//
// Source: DEFRA GHG conversion factors, material use tables (2024 vintage).
var materialFactors = map[string]string{
	"steel":           "1.46",
	"aluminum":        "9.16",
	"aluminium":       "9.16",
	"copper":          "3.83",
	"plastic":         "3.12",
	"plastic_hdpe":    "1.93",
	"plastic_pet":     "2.73",
	"paper":           "0.92",
	"cardboard":       "0.82",
	"glass":           "0.86",
	"cement":          "0.91",
	"concrete":        "0.13",
	"timber":          "0.31",
	"cotton":          "8.30",
	"wool":            "22.90",
	"electronics_avg": "25.00",
}

// MaterialFactor returns a synthesized physical emission factor for a
// material, in kg CO2e per kg. The factor is not backed by the governed
// store and is tagged Synthesized.
func MaterialFactor(material string) (*EmissionFactor, bool) {
	key := strings.ToLower(strings.TrimSpace(material))
	key = strings.ReplaceAll(key, " ", "_")
	raw, ok := materialFactors[key]
	if !ok {
		return nil, false
	}
	return &EmissionFactor{
		ID:           "material:" + key,
		ActivityKey:  "material_" + key,
		Region:       RegionGlobal,
		CO2eFactor:   decimal.RequireFromString(raw),
		ActivityUnit: "kg",
		FactorUnit:   "kg CO2e/kg",
		Source:       "DEFRA material use factors 2024",
		Status:       StatusApproved,
		IsActive:     true,
		Synthesized:  true,
	}, true
}

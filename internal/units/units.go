// Package units provides dimensional unit normalization for activity
// quantities. Every emission factor expects its quantity in a specific unit;
// this package converts arbitrary reported units (liters, gallons, therms,
// tonne-km, ...) to the factor's unit using exact decimal arithmetic.
package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Dimension identifies a physical dimension. Units convert only within
// their own dimension; cross-dimension conversion (e.g. mass to volume)
// is rejected because it would require substance-specific density data
// this system does not model.
type Dimension string

const (
	DimMass        Dimension = "mass"
	DimVolume      Dimension = "volume"
	DimEnergy      Dimension = "energy"
	DimDistance    Dimension = "distance"
	DimPassengerKm Dimension = "passenger_km"
	DimTonneKm     Dimension = "tonne_km"
	DimArea        Dimension = "area"

	// DimCurrency and DimCount are non-convertible: the normalizer requires
	// an exact match after alias resolution. Converting EUR to USD or nights
	// to units is not a physical conversion and belongs to the caller.
	DimCurrency Dimension = "currency"
	DimCount    Dimension = "count"
)

// unitDef describes a canonical unit: its dimension and the factor that
// converts one of it into the dimension's base unit.
type unitDef struct {
	Dimension Dimension
	ToBase    decimal.Decimal
}

func def(dim Dimension, toBase string) unitDef {
	return unitDef{Dimension: dim, ToBase: decimal.RequireFromString(toBase)}
}

// canonicalUnits maps canonical unit names to their definitions.
// Base units: kg (mass), liter (volume), kWh (energy), km (distance),
// m2 (area). Passenger-km and tonne-km are their own base.
var canonicalUnits = map[string]unitDef{
	// Mass (base: kilogram)
	"kilogram": def(DimMass, "1"),
	"gram":     def(DimMass, "0.001"),
	"tonne":    def(DimMass, "1000"),
	"pound":    def(DimMass, "0.45359237"),

	// Volume (base: liter)
	"liter":       def(DimVolume, "1"),
	"milliliter":  def(DimVolume, "0.001"),
	"cubic_meter": def(DimVolume, "1000"),
	"gallon_us":   def(DimVolume, "3.785411784"),
	"gallon_uk":   def(DimVolume, "4.54609"),

	// Energy (base: kilowatt-hour)
	"kilowatt_hour": def(DimEnergy, "1"),
	"megawatt_hour": def(DimEnergy, "1000"),
	"gigajoule":     def(DimEnergy, "277.77777778"),
	"megajoule":     def(DimEnergy, "0.27777777778"),
	"therm":         def(DimEnergy, "29.3071"),
	"btu":           def(DimEnergy, "0.000293071"),

	// Distance (base: kilometer)
	"kilometer": def(DimDistance, "1"),
	"meter":     def(DimDistance, "0.001"),
	"mile":      def(DimDistance, "1.609344"),

	// Transport work
	"passenger_km": def(DimPassengerKm, "1"),
	"tonne_km":     def(DimTonneKm, "1"),

	// Area (base: square meter)
	"square_meter": def(DimArea, "1"),
	"square_foot":  def(DimArea, "0.09290304"),

	// Currencies: pass-through only.
	"usd": def(DimCurrency, "1"),
	"eur": def(DimCurrency, "1"),
	"gbp": def(DimCurrency, "1"),
	"ils": def(DimCurrency, "1"),

	// Counts: pass-through only.
	"night": def(DimCount, "1"),
	"unit":  def(DimCount, "1"),
	"each":  def(DimCount, "1"),
}

// unitAliases maps reported spellings to canonical unit names. Lookup is
// case-insensitive; keys here are lowercase.
var unitAliases = map[string]string{
	"kg":         "kilogram",
	"kilograms":  "kilogram",
	"g":          "gram",
	"grams":      "gram",
	"t":          "tonne",
	"tonnes":     "tonne",
	"ton":        "tonne",
	"metric_ton": "tonne",
	"lb":         "pound",
	"lbs":        "pound",

	"l":               "liter",
	"liters":          "liter",
	"litre":           "liter",
	"litres":          "liter",
	"ml":              "milliliter",
	"m3":              "cubic_meter",
	"cubic_meters":    "cubic_meter",
	"cbm":             "cubic_meter",
	"gal":             "gallon_us",
	"gallon":          "gallon_us",
	"gallons":         "gallon_us",
	"imperial_gallon": "gallon_uk",

	"kwh":    "kilowatt_hour",
	"mwh":    "megawatt_hour",
	"gj":     "gigajoule",
	"mj":     "megajoule",
	"therms": "therm",
	"btus":   "btu",

	"km":         "kilometer",
	"kilometers": "kilometer",
	"m":          "meter",
	"meters":     "meter",
	"mi":         "mile",
	"miles":      "mile",

	"pkm":           "passenger_km",
	"passenger-km":  "passenger_km",
	"passenger_kms": "passenger_km",
	"tkm":           "tonne_km",
	"tonne-km":      "tonne_km",
	"tonne_kms":     "tonne_km",

	"m2":          "square_meter",
	"sqm":         "square_meter",
	"sqft":        "square_foot",
	"square_feet": "square_foot",

	"$":      "usd",
	"dollar": "usd",
	"€":      "eur",
	"euro":   "eur",
	"£":      "gbp",
	"nis":    "ils",

	"nights": "night",
	"units":  "unit",
	"count":  "unit",
	"items":  "each",
}

// Canonical resolves a reported unit token to its canonical name.
// Returns ("", false) for unknown tokens.
func Canonical(unit string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(unit))
	if _, ok := canonicalUnits[key]; ok {
		return key, true
	}
	if canon, ok := unitAliases[key]; ok {
		return canon, true
	}
	return "", false
}

// DimensionOf returns the dimension of a unit after alias resolution.
func DimensionOf(unit string) (Dimension, bool) {
	canon, ok := Canonical(unit)
	if !ok {
		return "", false
	}
	return canonicalUnits[canon].Dimension, true
}
